package http

import "party-cards/internal/shared"

// RoomListResponse is returned by GET /api/rooms.
type RoomListResponse struct {
	Rooms []shared.RoomSummary `json:"rooms"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RulesResponse is returned by GET /api/config.
type RulesResponse struct {
	HandSize               int   `json:"handSize"`
	DrawRights             int   `json:"drawRights"`
	MinPlayers             int   `json:"minPlayers"`
	DefaultTargetScore     int   `json:"maxScore"`
	DefaultRoundDurationMs int64 `json:"roundDuration"`
	ResultDelayMs          int64 `json:"resultDelay"`
	HideUnrevealedOwners   bool  `json:"hideUnrevealedOwners"`
}
