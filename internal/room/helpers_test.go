package room

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	"party-cards/internal/config"
	"party-cards/internal/shared"

	"github.com/rs/zerolog"
)

// --- Scheduler ---

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	live := !t.stopped && !t.fired
	t.stopped = true
	return live
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) pending() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].d < out[j].d })
	return out
}

// fireNext runs the shortest pending timer and applies what it posted.
func (s *fakeScheduler) fireNext(r *Room) bool {
	p := s.pending()
	if len(p) == 0 {
		return false
	}
	p[0].fired = true
	p[0].f()
	drain(r)
	return true
}

// --- Broadcaster ---

type sentMsg struct {
	to     string
	action string
	data   any
}

type recorder struct {
	mu       sync.Mutex
	msgs     []sentMsg
	attached []string
	detached []string
	closed   []string
}

func (b *recorder) Broadcast(roomCode, action string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, sentMsg{to: "room:" + roomCode, action: action, data: data})
}

func (b *recorder) Send(connID, action string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, sentMsg{to: connID, action: action, data: data})
}

func (b *recorder) Attach(roomCode, connID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attached = append(b.attached, connID)
}

func (b *recorder) Detach(roomCode, connID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.detached = append(b.detached, connID)
}

func (b *recorder) CloseRoom(roomCode string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = append(b.closed, roomCode)
}

// last returns the newest payload for action addressed to to.
func (b *recorder) last(to, action string) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.msgs) - 1; i >= 0; i-- {
		if m := b.msgs[i]; m.to == to && m.action == action {
			return m.data, true
		}
	}
	return nil, false
}

func (b *recorder) count(to, action string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, m := range b.msgs {
		if m.to == to && m.action == action {
			n++
		}
	}
	return n
}

func (b *recorder) closedCount(code string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.closed {
		if c == code {
			n++
		}
	}
	return n
}

// --- Room fixture ---

type fixture struct {
	room  *Room
	out   *recorder
	sched *fakeScheduler
	now   time.Time
}

func testPool() *Pool {
	p := &Pool{}
	for i := 1; i <= 8; i++ {
		p.Prompts = append(p.Prompts, Prompt{Text: fmt.Sprintf("Prompt %d ____.", i), Pick: 1})
	}
	for i := 1; i <= 80; i++ {
		p.Answers = append(p.Answers, fmt.Sprintf("answer %02d", i))
	}
	return p
}

func testRules() config.Rules {
	return config.Rules{
		HandSize:             10,
		DrawRights:           3,
		MinPlayers:           3,
		DefaultTargetScore:   10,
		DefaultRoundDuration: 60 * time.Second,
	}
}

func testTimings() config.Timings {
	return config.Timings{
		ResultDelay:    5 * time.Second,
		BotPlayMin:     5 * time.Second,
		BotPlayMax:     20 * time.Second,
		BotRevealDelay: 3 * time.Second,
		BotPickDelay:   4 * time.Second,
	}
}

func newFixture(t *testing.T, mutate ...func(*Options)) *fixture {
	t.Helper()
	f := &fixture{
		out:   &recorder{},
		sched: &fakeScheduler{},
		now:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	bots := 0
	opts := Options{
		Code:    "test",
		Rules:   testRules(),
		Timings: testTimings(),
		Pool:    testPool(),
		Out:     f.out,
		Sched:   f.sched,
		Rand:    rand.New(rand.NewSource(1)),
		Now:     func() time.Time { return f.now },
		Logger:  zerolog.Nop(),
		BotID: func() string {
			bots++
			return fmt.Sprintf("bot-%d", bots)
		},
	}
	for _, m := range mutate {
		m(&opts)
	}
	f.room = New(opts)
	return f
}

// drain applies everything queued in the inbox, as Run would.
func drain(r *Room) {
	for len(r.inbox) > 0 {
		r.handle(<-r.inbox)
	}
}

func (f *fixture) do(from string, in Intent) {
	f.room.handle(envelope{from: from, intent: in})
	drain(f.room)
}

func (f *fixture) join(id, username string) {
	f.do(id, Join{Username: username})
}

// startWith seats the given ids (username = id) and starts the game as the
// first of them.
func (f *fixture) startWith(t *testing.T, ids ...string) {
	t.Helper()
	for _, id := range ids {
		f.join(id, id)
	}
	f.do(ids[0], Start{})
	if f.room.state != PhasePlaying {
		t.Fatalf("game did not start, state %s", f.room.state)
	}
}

func (f *fixture) player(id string) *Player {
	_, p := f.room.playerByID(id)
	return p
}

// submitAll plays the first card of every eligible player.
func (f *fixture) submitAll() {
	for _, p := range append([]*Player(nil), f.room.players...) {
		if f.room.state != PhasePlaying {
			return
		}
		if f.room.canSubmit(p) && !p.IsBot {
			f.do(p.ID, SubmitCard{Card: p.Hand[0]})
		}
	}
}

func (f *fixture) roster() []shared.PlayerView {
	v, _ := f.out.last("room:test", ActionUserList)
	out, _ := v.([]shared.PlayerView)
	return out
}

func (f *fixture) info() shared.InfoView {
	v, _ := f.out.last("room:test", ActionGameInfo)
	out, _ := v.(shared.InfoView)
	return out
}

func (f *fixture) table() []shared.GroupView {
	v, _ := f.out.last("room:test", ActionTable)
	out, _ := v.([]shared.GroupView)
	return out
}

func (f *fixture) hand(id string) []string {
	v, _ := f.out.last(id, ActionHand)
	out, _ := v.([]string)
	return out
}
