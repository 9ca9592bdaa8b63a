package room

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"party-cards/internal/config"
	"party-cards/internal/shared"

	"github.com/rs/zerolog"
)

// Store keeps the live rooms by code.
type Store interface {
	GetRoom(code string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(code string)
	Rooms() []*Room
}

// Manager owns room lifecycles: it creates rooms on first join, routes
// intents to them and evicts idle ones.
type Manager struct {
	store Store
	cfg   config.Config
	pool  *Pool
	out   Broadcaster
	sched Scheduler
	log   zerolog.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewManager(s Store, cfg config.Config, pool *Pool, log zerolog.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		store:  s,
		cfg:    cfg,
		pool:   pool,
		sched:  RealScheduler(),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetBroadcaster wires the transport. The hub and the manager reference each
// other, so one of them is set after construction.
func (m *Manager) SetBroadcaster(out Broadcaster) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.out = out
}

// SetScheduler replaces the timer source for rooms created afterwards.
func (m *Manager) SetScheduler(s Scheduler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sched = s
}

func isDone(r *Room) bool {
	select {
	case <-r.Done():
		return true
	default:
		return false
	}
}

func (m *Manager) getOrCreate(code string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.store.GetRoom(code); ok && !isDone(r) {
		return r
	}
	r := New(Options{
		Code:    code,
		Rules:   m.cfg.Rules,
		Timings: m.cfg.Timings,
		Pool:    m.pool,
		Out:     m.out,
		Sched:   m.sched,
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		Logger:  m.log,
	})
	r.onClose = m.forget
	m.store.SaveRoom(r)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		r.Run(m.ctx)
	}()
	m.log.Info().Str("room", code).Msg("room created")
	return r
}

// forget drops r from the store unless a newer room already took its code.
func (m *Manager) forget(r *Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.store.GetRoom(r.Code()); ok && cur == r {
		m.store.DeleteRoom(r.Code())
	}
	m.log.Info().Str("room", r.Code()).Msg("room closed")
}

// Join seats connID in the room named code, creating the room if needed. It
// returns once the room has handled the request.
func (m *Manager) Join(code, connID string, j Join) error {
	if m.ctx.Err() != nil {
		return ErrRoomClosed
	}
	err := m.getOrCreate(code).Join(m.ctx, connID, j)
	if errors.Is(err, ErrRoomClosed) && m.ctx.Err() == nil {
		// lost a race with eviction; the next room under this code is fresh
		err = m.getOrCreate(code).Join(m.ctx, connID, j)
	}
	if m.ctx.Err() != nil {
		return ErrRoomClosed
	}
	return err
}

// Dispatch routes an intent from connID to an existing room.
func (m *Manager) Dispatch(code, connID string, in Intent) error {
	r, ok := m.Get(code)
	if !ok {
		return ErrRoomNotFound
	}
	return r.Post(connID, in)
}

func (m *Manager) Get(code string) (*Room, bool) {
	r, ok := m.store.GetRoom(code)
	if !ok || isDone(r) {
		return nil, false
	}
	return r, true
}

func (m *Manager) Summary(ctx context.Context, code string) (shared.RoomSummary, error) {
	r, ok := m.Get(code)
	if !ok {
		return shared.RoomSummary{}, ErrRoomNotFound
	}
	return r.Summary(ctx)
}

// Summaries describes every live room, ordered by code.
func (m *Manager) Summaries(ctx context.Context) ([]shared.RoomSummary, error) {
	rooms := m.store.Rooms()
	out := make([]shared.RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		s, err := r.Summary(ctx)
		if errors.Is(err, ErrRoomClosed) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// Sweep asks every room to close itself if it has been without an online
// human for longer than the idle grace.
func (m *Manager) Sweep() {
	for _, r := range m.store.Rooms() {
		_ = r.Post("", evict{grace: m.cfg.RoomIdleGrace})
	}
}

// Run sweeps on an interval until ctx ends.
func (m *Manager) Run(ctx context.Context) {
	t := time.NewTicker(m.cfg.SweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}

// Shutdown stops every room and waits for their goroutines.
func (m *Manager) Shutdown() {
	m.cancel()
	m.wg.Wait()
}
