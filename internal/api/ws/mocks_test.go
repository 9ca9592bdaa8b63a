package ws

import (
	"party-cards/internal/room"

	"github.com/stretchr/testify/mock"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Join(roomCode, connID string, j room.Join) error {
	args := m.Called(roomCode, connID, j)
	return args.Error(0)
}

func (m *MockDispatcher) Dispatch(roomCode, connID string, in room.Intent) error {
	args := m.Called(roomCode, connID, in)
	return args.Error(0)
}
