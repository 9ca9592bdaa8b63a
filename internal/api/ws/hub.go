package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"party-cards/internal/config"
	"party-cards/internal/room"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Hub owns every websocket connection and routes room traffic. It implements
// room.Broadcaster.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]*Client

	manager Dispatcher
	log     zerolog.Logger
	limit   rate.Limit
	burst   int
	upgrade websocket.Upgrader
}

func NewHub(d Dispatcher, cfg config.Config, log zerolog.Logger) *Hub {
	h := &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
		manager: d,
		log:     log.With().Str("component", "ws").Logger(),
		limit:   rate.Limit(cfg.WSMessageRate),
		burst:   cfg.WSMessageBurst,
	}
	h.upgrade = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(cfg.AllowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || slices.Contains(allowed, "*") {
			return true
		}
		return slices.ContainsFunc(allowed, func(a string) bool { return strings.EqualFold(a, origin) })
	}
}

// HandleWS upgrades the request and serves the connection until it closes.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrade.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}
	client := newClient(uuid.NewString(), conn, h.limit, h.burst)
	h.register(client)
	h.log.Debug().Str("conn", client.id).Str("remote", c.Request.RemoteAddr).Msg("connected")

	go client.writePump()
	h.readPump(client)
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	code := c.room
	if code == "" {
		code = c.joining
	}
	delete(h.clients, c.id)
	if members, ok := h.rooms[code]; ok {
		delete(members, c.id)
		if len(members) == 0 {
			delete(h.rooms, code)
		}
	}
	c.room, c.joining = "", ""
	h.mu.Unlock()

	c.close()
	if code != "" {
		if err := h.manager.Dispatch(code, c.id, room.Disconnect{}); err != nil && !errors.Is(err, room.ErrRoomNotFound) && !errors.Is(err, room.ErrRoomClosed) {
			h.log.Warn().Err(err).Str("conn", c.id).Msg("disconnect not delivered")
		}
	}
	h.log.Debug().Str("conn", c.id).Str("room", code).Msg("disconnected")
}

func (h *Hub) readPump(c *Client) {
	defer h.unregister(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Str("conn", c.id).Msg("read failed")
			}
			return
		}
		if !c.limiter.Allow() {
			h.log.Debug().Str("conn", c.id).Msg("rate limited, message dropped")
			continue
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Debug().Err(err).Str("conn", c.id).Msg("malformed message")
			continue
		}
		h.route(c, msg)
	}
}

func (h *Hub) roomOf(c *Client) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c.room != "" {
		return c.room
	}
	return c.joining
}

func (h *Hub) setJoining(c *Client, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.joining = code
}

func (h *Hub) route(c *Client, msg Message) {
	if msg.Action == ActionJoinRoom {
		h.joinRoom(c, msg)
		return
	}
	code := h.roomOf(c)
	if code == "" {
		h.log.Debug().Str("conn", c.id).Str("action", msg.Action).Msg("action before join ignored")
		return
	}
	in, err := decodeIntent(msg)
	if err != nil {
		h.log.Debug().Err(err).Str("conn", c.id).Msg("action dropped")
		return
	}
	if err := h.manager.Dispatch(code, c.id, in); err != nil {
		h.log.Debug().Err(err).Str("conn", c.id).Str("room", code).Msg("dispatch failed")
	}
}

func (h *Hub) joinRoom(c *Client, msg Message) {
	var d JoinRoomData
	if err := decodeData(msg.Data, &d); err != nil || strings.TrimSpace(d.Room) == "" {
		h.Send(c.id, room.ActionJoinRejected, gin.H{"reason": "room required"})
		return
	}
	code := strings.TrimSpace(d.Room)
	if prev := h.roomOf(c); prev != "" && prev != code {
		_ = h.manager.Dispatch(prev, c.id, room.Disconnect{})
		h.Detach(prev, c.id)
	}
	h.setJoining(c, code)
	err := h.manager.Join(code, c.id, room.Join{Username: d.Username, Avatar: d.Avatar, AccessCode: d.AccessCode})
	if err != nil {
		h.log.Warn().Err(err).Str("conn", c.id).Str("room", code).Msg("join failed")
		h.Send(c.id, room.ActionJoinRejected, gin.H{"reason": err.Error()})
	}
}

func encode(action string, data interface{}) ([]byte, error) {
	return json.Marshal(outbound{Action: action, Data: data})
}

// Broadcast implements room.Broadcaster.
func (h *Hub) Broadcast(roomCode string, action string, data interface{}) {
	payload, err := encode(action, data)
	if err != nil {
		h.log.Error().Err(err).Str("action", action).Msg("encode failed")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.rooms[roomCode] {
		c.enqueue(payload)
	}
}

// Send implements room.Broadcaster.
func (h *Hub) Send(connID string, action string, data interface{}) {
	payload, err := encode(action, data)
	if err != nil {
		h.log.Error().Err(err).Str("action", action).Msg("encode failed")
		return
	}
	h.mu.RLock()
	c, ok := h.clients[connID]
	h.mu.RUnlock()
	if ok {
		c.enqueue(payload)
	}
}

// Attach implements room.Broadcaster.
func (h *Hub) Attach(roomCode string, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	if c.room != "" && c.room != roomCode {
		delete(h.rooms[c.room], connID)
	}
	members, ok := h.rooms[roomCode]
	if !ok {
		members = make(map[string]*Client)
		h.rooms[roomCode] = members
	}
	members[connID] = c
	c.room = roomCode
	c.joining = ""
}

// Detach implements room.Broadcaster.
func (h *Hub) Detach(roomCode string, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[connID]; ok {
		if c.room == roomCode {
			c.room = ""
		}
		if c.joining == roomCode {
			c.joining = ""
		}
	}
	members, ok := h.rooms[roomCode]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.rooms, roomCode)
	}
}

// CloseRoom implements room.Broadcaster.
func (h *Hub) CloseRoom(roomCode string) {
	payload, _ := encode(room.ActionKicked, nil)
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.rooms[roomCode] {
		c.enqueue(payload)
		c.room = ""
	}
	delete(h.rooms, roomCode)
	for _, c := range h.clients {
		if c.joining == roomCode {
			c.joining = ""
		}
	}
}

// Connections reports how many sockets are open.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var _ room.Broadcaster = (*Hub)(nil)
