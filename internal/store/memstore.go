package store

import (
	"sync"

	"party-cards/internal/room"
)

// MemoryStore keeps live rooms in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string]*room.Room{},
	}
}

func (m *MemoryStore) GetRoom(code string) (*room.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

func (m *MemoryStore) SaveRoom(r *room.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.Code()] = r
}

func (m *MemoryStore) DeleteRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
}

func (m *MemoryStore) Rooms() []*room.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*room.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out
}

var _ room.Store = (*MemoryStore)(nil)
