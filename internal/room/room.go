package room

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"party-cards/internal/config"
	"party-cards/internal/deck"
	"party-cards/internal/shared"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomClosed   = errors.New("room closed")
)

const inboxSize = 1024

type Options struct {
	Code    string
	Rules   config.Rules
	Timings config.Timings
	Pool    *Pool
	Out     Broadcaster
	Sched   Scheduler
	Rand    *rand.Rand
	Now     Clock
	Agent   Agent
	Logger  zerolog.Logger
	BotID   func() string
}

// Room is the authoritative state of one room. All fields are owned by the
// goroutine running Run; everything else talks to it through Post.
type Room struct {
	code       string
	accessCode string

	state       Phase
	players     []*Player
	round       int
	prompt      Prompt
	submissions []*CardGroup
	answers     *deck.Deck[string]
	prompts     *deck.Deck[Prompt]

	timerDeadline *time.Time
	timer         Timer
	botTimers     []Timer
	// gen changes on every phase entry; scheduled callbacks carry the value
	// they were created under.
	gen uint64

	judgeIndex int
	judgeID    string
	// judgeCarried is set when a judge was replaced during RESULT; the
	// replacement judges the next round instead of rotating past it.
	judgeCarried bool
	winnerID   string
	settings   Settings
	adminID    string

	rules   config.Rules
	timings config.Timings
	out     Broadcaster
	sched   Scheduler
	rng     *rand.Rand
	now     Clock
	agent   Agent
	log     zerolog.Logger
	botID   func() string

	inbox     chan envelope
	done      chan struct{}
	closed    bool
	onClose   func(*Room)
	idleSince time.Time
}

func New(opts Options) *Room {
	if opts.Sched == nil {
		opts.Sched = RealScheduler()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Agent == nil {
		opts.Agent = NewRandomAgent(opts.Rand)
	}
	if opts.BotID == nil {
		opts.BotID = func() string { return "bot-" + uuid.NewString() }
	}
	r := &Room{
		code:  opts.Code,
		state: PhaseLobby,
		round: 1,
		settings: Settings{
			TargetScore:   opts.Rules.DefaultTargetScore,
			RoundDuration: opts.Rules.DefaultRoundDuration,
		},
		answers: deck.New(opts.Pool.Answers, opts.Rand),
		prompts: deck.New(opts.Pool.Prompts, opts.Rand),
		rules:   opts.Rules,
		timings: opts.Timings,
		out:     opts.Out,
		sched:   opts.Sched,
		rng:     opts.Rand,
		now:     opts.Now,
		agent:   opts.Agent,
		log:     opts.Logger.With().Str("room", opts.Code).Logger(),
		botID:   opts.BotID,
		inbox:   make(chan envelope, inboxSize),
		done:    make(chan struct{}),
	}
	return r
}

func (r *Room) Code() string { return r.code }

// Run processes the inbox until the room is destroyed or ctx ends.
func (r *Room) Run(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			r.stopAllTimers()
			return
		case env := <-r.inbox:
			r.handle(env)
			if r.closed {
				if r.onClose != nil {
					r.onClose(r)
				}
				return
			}
		}
	}
}

// Post queues an intent from connection from. It blocks while the inbox is
// full and fails once the room has stopped.
func (r *Room) Post(from string, in Intent) error {
	select {
	case <-r.done:
		return ErrRoomClosed
	default:
	}
	select {
	case r.inbox <- envelope{from: from, intent: in}:
		return nil
	case <-r.done:
		return ErrRoomClosed
	}
}

func (r *Room) post(in Intent) {
	_ = r.Post("", in)
}

// Join seats connID and waits until the room has handled the request. A
// rejected join still returns nil; the room tells the connection itself.
// ErrRoomClosed means the room stopped before it got to the request.
func (r *Room) Join(ctx context.Context, connID string, j Join) error {
	ack := make(chan struct{}, 1)
	j.ack = ack
	if err := r.Post(connID, j); err != nil {
		return err
	}
	select {
	case <-ack:
		return nil
	case <-r.done:
		select {
		case <-ack:
			return nil
		default:
			return ErrRoomClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (r *Room) Done() <-chan struct{} { return r.done }

// Summary asks the room goroutine for a read-only description.
func (r *Room) Summary(ctx context.Context) (shared.RoomSummary, error) {
	reply := make(chan summaryReply, 1)
	if err := r.Post("", summaryRequest{reply: reply}); err != nil {
		return shared.RoomSummary{}, err
	}
	select {
	case s := <-reply:
		return s.summary, nil
	case <-r.done:
		return shared.RoomSummary{}, ErrRoomClosed
	case <-ctx.Done():
		return shared.RoomSummary{}, ctx.Err()
	}
}

type summaryReply struct {
	summary shared.RoomSummary
}

func (r *Room) handle(env envelope) {
	switch in := env.intent.(type) {
	case Join:
		r.join(env.from, in)
		if in.ack != nil {
			in.ack <- struct{}{}
		}
	case Disconnect:
		r.markOffline(env.from)
	case Start:
		r.start(env.from)
	case SubmitCard:
		r.submitCard(env.from, in.Card)
	case DrawExtraCard:
		r.drawExtraCard(env.from)
	case RevealSubmission:
		r.reveal(env.from, in.Index)
	case PickWinner:
		r.pickWinner(env.from, in.Index)
	case ForceFinishVoting:
		r.forceFinish(env.from)
	case UpdateSettings:
		r.updateSettings(env.from, in)
	case KickPlayer:
		r.kick(env.from, in.Username)
	case AddBot:
		r.addBot(env.from)
	case ReturnToLobby:
		r.returnToLobby(env.from)
	case DestroyRoom:
		r.destroy(env.from)
	case roundExpired:
		r.onRoundExpired(in.gen)
	case resultExpired:
		r.onResultExpired(in.gen)
	case botPlay:
		r.onBotPlay(in)
	case botReveal:
		r.onBotReveal(in.gen)
	case botPick:
		r.onBotPick(in.gen)
	case summaryRequest:
		in.reply <- summaryReply{summary: r.summary()}
	case evict:
		r.onEvict(in.grace)
	default:
		r.log.Warn().Type("intent", in).Msg("unknown intent")
	}
	r.trackIdle()
}

// trackIdle records when the room last lost its final online human.
func (r *Room) trackIdle() {
	if r.hasOnlineHuman() {
		r.idleSince = time.Time{}
		return
	}
	if r.idleSince.IsZero() {
		r.idleSince = r.now()
	}
}

func (r *Room) onEvict(grace time.Duration) {
	if r.closed || r.idleSince.IsZero() {
		return
	}
	if r.now().Sub(r.idleSince) < grace {
		return
	}
	r.log.Info().Dur("idle", r.now().Sub(r.idleSince)).Msg("evicting idle room")
	r.close()
}

func (r *Room) destroy(from string) {
	if !r.isAdmin(from) {
		r.log.Debug().Str("from", from).Msg("destroy_room ignored: not admin")
		return
	}
	r.log.Info().Msg("room destroyed by admin")
	r.close()
}

func (r *Room) close() {
	r.gen++
	r.stopAllTimers()
	r.closed = true
	r.out.CloseRoom(r.code)
}

// enter moves to phase p, invalidating every callback scheduled so far.
func (r *Room) enter(p Phase) {
	r.gen++
	r.stopAllTimers()
	r.log.Debug().Str("from", string(r.state)).Str("to", string(p)).Int("round", r.round).Msg("phase change")
	r.state = p
}

func (r *Room) stopAllTimers() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.timerDeadline = nil
	for _, t := range r.botTimers {
		t.Stop()
	}
	r.botTimers = nil
}

// startTimer arms the single room timer. Only one is ever live.
func (r *Room) startTimer(d time.Duration, expired Intent) {
	if r.timer != nil {
		r.timer.Stop()
	}
	deadline := r.now().Add(d)
	r.timerDeadline = &deadline
	r.timer = r.sched.AfterFunc(d, func() { r.post(expired) })
}

func (r *Room) after(d time.Duration, in Intent) {
	r.botTimers = append(r.botTimers, r.sched.AfterFunc(d, func() { r.post(in) }))
}
