package store

import (
	"testing"

	"party-cards/internal/cards"
	"party-cards/internal/room"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoom(t *testing.T, code string) *room.Room {
	t.Helper()
	pool, err := cards.Default()
	require.NoError(t, err)
	return room.New(room.Options{Code: code, Pool: pool})
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.GetRoom("abc")
	assert.False(t, ok)

	a := newRoom(t, "abc")
	s.SaveRoom(a)
	s.SaveRoom(newRoom(t, "xyz"))

	got, ok := s.GetRoom("abc")
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Len(t, s.Rooms(), 2)

	s.DeleteRoom("abc")
	_, ok = s.GetRoom("abc")
	assert.False(t, ok)
	assert.Len(t, s.Rooms(), 1)

	s.DeleteRoom("missing")
	assert.Len(t, s.Rooms(), 1)
}
