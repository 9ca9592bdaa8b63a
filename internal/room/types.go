package room

import (
	"time"

	"party-cards/internal/cards"
)

type Phase string

const (
	PhaseLobby    Phase = "LOBBY"
	PhasePlaying  Phase = "PLAYING"
	PhaseJudging  Phase = "JUDGING"
	PhaseResult   Phase = "RESULT"
	PhaseGameOver Phase = "GAME_OVER"
)

// Player is a roster entry. It survives disconnects; only a kick or the end
// of the room removes it.
type Player struct {
	ID           string
	Username     string
	Avatar       string
	Score        int
	Hand         []string
	DrawRights   int
	HasSubmitted bool
	Pending      []string
	IsJudge      bool
	IsOnline     bool
	IsBot        bool
}

// CardGroup is one committed submission.
type CardGroup struct {
	Cards    []string
	OwnerID  string
	Revealed bool
}

type Settings struct {
	TargetScore   int
	RoundDuration time.Duration
}

// Intent is anything that can be applied to a room: client actions, timer
// expiries and bot actions all share the same path.
type Intent interface {
	intent()
}

type Join struct {
	Username   string
	Avatar     string
	AccessCode string

	// ack is signalled once the room has handled the join.
	ack chan<- struct{}
}

type Start struct{}

type SubmitCard struct {
	Card string
}

type DrawExtraCard struct{}

type RevealSubmission struct {
	Index int
}

type PickWinner struct {
	Index int
}

type ForceFinishVoting struct{}

// UpdateSettings merges into the current settings; zero fields are left alone.
type UpdateSettings struct {
	TargetScore     int
	RoundDurationMs int64
}

type KickPlayer struct {
	Username string
}

type AddBot struct{}

type ReturnToLobby struct{}

type DestroyRoom struct{}

// Disconnect marks the sender offline.
type Disconnect struct{}

// internal intents, posted by scheduled callbacks. gen is the phase
// generation the callback was scheduled under.
type (
	roundExpired struct{ gen uint64 }
	resultExpired struct{ gen uint64 }
	botPlay       struct {
		gen   uint64
		botID string
	}
	botReveal struct{ gen uint64 }
	botPick   struct{ gen uint64 }
	// summaryRequest answers read-only queries from outside the room goroutine.
	summaryRequest struct{ reply chan<- summaryReply }
	evict          struct{ grace time.Duration }
)

func (Join) intent()              {}
func (Start) intent()             {}
func (SubmitCard) intent()        {}
func (DrawExtraCard) intent()     {}
func (RevealSubmission) intent()  {}
func (PickWinner) intent()        {}
func (ForceFinishVoting) intent() {}
func (UpdateSettings) intent()    {}
func (KickPlayer) intent()        {}
func (AddBot) intent()            {}
func (ReturnToLobby) intent()     {}
func (DestroyRoom) intent()       {}
func (Disconnect) intent()        {}
func (roundExpired) intent()      {}
func (resultExpired) intent()     {}
func (botPlay) intent()           {}
func (botReveal) intent()         {}
func (botPick) intent()           {}
func (summaryRequest) intent()    {}
func (evict) intent()             {}

type envelope struct {
	from   string
	intent Intent
}

// Pool aliases keep the room package readable.
type (
	Prompt = cards.Prompt
	Pool   = cards.Pool
)
