package ws

import "party-cards/internal/room"

// Dispatcher is the part of the room manager the hub drives.
type Dispatcher interface {
	Join(roomCode, connID string, j room.Join) error
	Dispatch(roomCode, connID string, in room.Intent) error
}
