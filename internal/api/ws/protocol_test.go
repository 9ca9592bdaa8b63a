package ws

import (
	"encoding/json"
	"testing"

	"party-cards/internal/room"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeIntent(t *testing.T) {
	testCases := []struct {
		desc string
		msg  string
		want room.Intent
	}{
		{"start", `{"action":"start_game"}`, room.Start{}},
		{"start with null data", `{"action":"start_game","data":null}`, room.Start{}},
		{"play card", `{"action":"play_card","data":{"cardText":"a goat"}}`, room.SubmitCard{Card: "a goat"}},
		{"draw", `{"action":"draw_card"}`, room.DrawExtraCard{}},
		{"reveal", `{"action":"reveal_card","data":{"cardIndex":2}}`, room.RevealSubmission{Index: 2}},
		{"pick", `{"action":"pick_winner","data":{"cardIndex":1}}`, room.PickWinner{Index: 1}},
		{"force finish", `{"action":"force_finish_voting"}`, room.ForceFinishVoting{}},
		{"settings", `{"action":"update_settings","data":{"targetScore":5,"roundDurationMs":30000}}`, room.UpdateSettings{TargetScore: 5, RoundDurationMs: 30000}},
		{"partial settings", `{"action":"update_settings","data":{"targetScore":7}}`, room.UpdateSettings{TargetScore: 7}},
		{"kick", `{"action":"kick_player","data":{"targetUsername":"bob"}}`, room.KickPlayer{Username: "bob"}},
		{"add bot", `{"action":"add_bot"}`, room.AddBot{}},
		{"lobby", `{"action":"return_to_lobby"}`, room.ReturnToLobby{}},
		{"destroy", `{"action":"destroy_room"}`, room.DestroyRoom{}},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			var msg Message
			require.NoError(t, json.Unmarshal([]byte(tc.msg), &msg))
			got, err := decodeIntent(msg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeIntent_Errors(t *testing.T) {
	_, err := decodeIntent(Message{Action: "fly"})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = decodeIntent(Message{Action: ActionPickWinner, Data: json.RawMessage(`{"cardIndex":"one"}`)})
	assert.Error(t, err)
}
