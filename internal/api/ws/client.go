package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 16 << 10
	sendBuffer     = 256
)

// Client is one websocket connection. Its id is the player identity inside
// whatever room it joins.
type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter

	// room and joining are guarded by Hub.mu. joining is the room a join
	// request is in flight for.
	room    string
	joining string

	closeOnce sync.Once
	done      chan struct{}
}

func newClient(id string, conn *websocket.Conn, limit rate.Limit, burst int) *Client {
	return &Client{
		id:      id,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		limiter: rate.NewLimiter(limit, burst),
		done:    make(chan struct{}),
	}
}

// enqueue never blocks; a client that cannot keep up is dropped.
func (c *Client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		c.close()
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			// flush what is already queued, e.g. a final kicked notice
			for {
				select {
				case data := <-c.send:
					_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
						return
					}
				default:
					_ = c.conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
						time.Now().Add(writeWait))
					return
				}
			}
		}
	}
}
