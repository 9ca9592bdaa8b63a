package shared

// PlayerView is one roster entry as every client sees it. Hands are never
// part of it, only their size.
type PlayerView struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Avatar       string `json:"avatar"`
	Score        int    `json:"score"`
	HandSize     int    `json:"handSize"`
	DrawRights   int    `json:"drawRights"`
	HasSubmitted bool   `json:"hasPlayed"`
	IsJudge      bool   `json:"isCzar"`
	IsOnline     bool   `json:"isOnline"`
	IsAdmin      bool   `json:"isAdmin"`
	IsBot        bool   `json:"isBot"`
}

// InfoView is the phase/info projection.
type InfoView struct {
	State           string `json:"state"`
	Round           int    `json:"round"`
	TargetScore     int    `json:"maxScore"`
	RoundDurationMs int64  `json:"roundDuration"`
	TimerEnd        *int64 `json:"timerEnd"`
	JudgeID         string `json:"czarId,omitempty"`
	WinnerID        string `json:"winnerId,omitempty"`
}

// GroupView is one submission on the table. Cards holds placeholders until
// the group is revealed.
type GroupView struct {
	Cards    []string `json:"cards"`
	Revealed bool     `json:"revealed"`
	OwnerID  string   `json:"ownerId,omitempty"`
}

type PromptView struct {
	Text string `json:"text"`
	Pick int    `json:"pick"`
}

// RoomSummary is the read-only description served over HTTP.
type RoomSummary struct {
	Code      string   `json:"code"`
	State     string   `json:"state"`
	Round     int      `json:"round"`
	Players   int      `json:"players"`
	Online    int      `json:"online"`
	Bots      int      `json:"bots"`
	Protected bool     `json:"protected"`
	Info      InfoView `json:"info"`
}
