package room

// Broadcaster is the transport as the room sees it.
type Broadcaster interface {
	// Broadcast pushes to every connection attached to the room.
	Broadcast(roomCode string, action string, data interface{})
	// Send pushes to a single connection.
	Send(connID string, action string, data interface{})
	// Attach starts routing room traffic to and from connID.
	Attach(roomCode string, connID string)
	// Detach stops routing room traffic to and from connID.
	Detach(roomCode string, connID string)
	// CloseRoom tells every attached connection the room is gone and detaches them.
	CloseRoom(roomCode string)
}

// Actions pushed by the server.
const (
	ActionUserList     = "user_list"
	ActionGameInfo     = "game_info"
	ActionPrompt       = "new_black_card"
	ActionHand         = "your_hand"
	ActionTable        = "table_update"
	ActionKicked       = "kicked"
	ActionJoinRejected = "join_rejected"
)
