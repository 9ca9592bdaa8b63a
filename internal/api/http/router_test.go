package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "party-cards/docs"
	"party-cards/internal/config"
	"party-cards/internal/room"
	"party-cards/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRoomDirectory struct {
	mock.Mock
}

func (m *MockRoomDirectory) Summaries(ctx context.Context) ([]shared.RoomSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]shared.RoomSummary), args.Error(1)
}

func (m *MockRoomDirectory) Summary(ctx context.Context, code string) (shared.RoomSummary, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(shared.RoomSummary), args.Error(1)
}

func newTestRouter(t *testing.T, rooms RoomDirectory, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ws := func(c *gin.Context) { c.Status(http.StatusTeapot) }
	return NewRouter(rooms, ws, cfg, zerolog.Nop())
}

func serve(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, &MockRoomDirectory{}, config.Default())
	w := serve(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestWSRouteIsMounted(t *testing.T) {
	r := newTestRouter(t, &MockRoomDirectory{}, config.Default())
	assert.Equal(t, http.StatusTeapot, serve(r, http.MethodGet, "/ws", nil).Code)
}

func TestListRooms(t *testing.T) {
	rooms := &MockRoomDirectory{}
	rooms.On("Summaries", mock.Anything).Return([]shared.RoomSummary{
		{Code: "abc", State: "LOBBY", Players: 2, Online: 2, Round: 1},
	}, nil)

	r := newTestRouter(t, rooms, config.Default())
	w := serve(r, http.MethodGet, "/api/rooms", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body RoomListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Rooms, 1)
	assert.Equal(t, "abc", body.Rooms[0].Code)
	assert.Equal(t, 2, body.Rooms[0].Players)
	rooms.AssertExpectations(t)
}

func TestGetRoom(t *testing.T) {
	rooms := &MockRoomDirectory{}
	rooms.On("Summary", mock.Anything, "abc").Return(shared.RoomSummary{Code: "abc", State: "PLAYING", Round: 3}, nil)
	rooms.On("Summary", mock.Anything, "nope").Return(shared.RoomSummary{}, room.ErrRoomNotFound)
	rooms.On("Summary", mock.Anything, "boom").Return(shared.RoomSummary{}, context.DeadlineExceeded)

	r := newTestRouter(t, rooms, config.Default())

	w := serve(r, http.MethodGet, "/api/rooms/abc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var s shared.RoomSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, 3, s.Round)

	w = serve(r, http.MethodGet, "/api/rooms/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"room not found"}`, w.Body.String())

	assert.Equal(t, http.StatusInternalServerError, serve(r, http.MethodGet, "/api/rooms/boom", nil).Code)
}

func TestGetRules(t *testing.T) {
	r := newTestRouter(t, &MockRoomDirectory{}, config.Default())
	w := serve(r, http.MethodGet, "/api/config", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body RulesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 10, body.HandSize)
	assert.Equal(t, 10, body.DefaultTargetScore)
	assert.Equal(t, int64(60000), body.DefaultRoundDurationMs)
}

func TestCORS(t *testing.T) {
	cfg := config.Default()
	cfg.AllowedOrigins = []string{"https://cards.example"}
	r := newTestRouter(t, &MockRoomDirectory{}, cfg)

	w := serve(r, http.MethodGet, "/health", map[string]string{"Origin": "https://cards.example"})
	assert.Equal(t, "https://cards.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "/health", map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSwaggerDocs(t *testing.T) {
	r := newTestRouter(t, &MockRoomDirectory{}, config.Default())

	w := serve(r, http.MethodGet, "/swagger/index.html", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Party Cards API", doc.Info.Title)
	for _, p := range []string{"/health", "/api/config", "/api/rooms", "/api/rooms/{code}"} {
		assert.Contains(t, doc.Paths, p)
	}
}
