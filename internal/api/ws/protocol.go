package ws

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"party-cards/internal/room"
)

var ErrUnknownAction = errors.New("unknown action")

// Client actions.
const (
	ActionJoinRoom          = "join_room"
	ActionStartGame         = "start_game"
	ActionPlayCard          = "play_card"
	ActionDrawCard          = "draw_card"
	ActionRevealCard        = "reveal_card"
	ActionPickWinner        = "pick_winner"
	ActionForceFinishVoting = "force_finish_voting"
	ActionUpdateSettings    = "update_settings"
	ActionKickPlayer        = "kick_player"
	ActionAddBot            = "add_bot"
	ActionReturnToLobby     = "return_to_lobby"
	ActionDestroyRoom       = "destroy_room"
)

// Message is the envelope used in both directions.
type Message struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

type JoinRoomData struct {
	Room       string `json:"room"`
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	AccessCode string `json:"accessCode"`
}

type playCardData struct {
	CardText string `json:"cardText"`
}

type cardIndexData struct {
	CardIndex int `json:"cardIndex"`
}

type settingsData struct {
	TargetScore     int   `json:"targetScore"`
	RoundDurationMs int64 `json:"roundDurationMs"`
}

type kickData struct {
	TargetUsername string `json:"targetUsername"`
}

func decodeData(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// decodeIntent maps a room-scoped client action onto a room intent.
func decodeIntent(msg Message) (room.Intent, error) {
	switch msg.Action {
	case ActionStartGame:
		return room.Start{}, nil
	case ActionDrawCard:
		return room.DrawExtraCard{}, nil
	case ActionForceFinishVoting:
		return room.ForceFinishVoting{}, nil
	case ActionAddBot:
		return room.AddBot{}, nil
	case ActionReturnToLobby:
		return room.ReturnToLobby{}, nil
	case ActionDestroyRoom:
		return room.DestroyRoom{}, nil
	case ActionPlayCard:
		var d playCardData
		if err := decodeData(msg.Data, &d); err != nil {
			return nil, err
		}
		return room.SubmitCard{Card: d.CardText}, nil
	case ActionRevealCard:
		var d cardIndexData
		if err := decodeData(msg.Data, &d); err != nil {
			return nil, err
		}
		return room.RevealSubmission{Index: d.CardIndex}, nil
	case ActionPickWinner:
		var d cardIndexData
		if err := decodeData(msg.Data, &d); err != nil {
			return nil, err
		}
		return room.PickWinner{Index: d.CardIndex}, nil
	case ActionUpdateSettings:
		var d settingsData
		if err := decodeData(msg.Data, &d); err != nil {
			return nil, err
		}
		return room.UpdateSettings{TargetScore: d.TargetScore, RoundDurationMs: d.RoundDurationMs}, nil
	case ActionKickPlayer:
		var d kickData
		if err := decodeData(msg.Data, &d); err != nil {
			return nil, err
		}
		return room.KickPlayer{Username: d.TargetUsername}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, msg.Action)
	}
}
