package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
	maxReadMsg = 4096
)

// WSClient adapts a websocket connection to Subscriber. Writes happen on a
// single goroutine fed by a bounded buffer, so Publish never waits on a socket.
type WSClient struct {
	id     string
	conn   *websocket.Conn
	UserID uint
	Role   string

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func NewWSClient(conn *websocket.Conn, userID uint, role string) *WSClient {
	return &WSClient{
		id:     uuid.NewString(),
		conn:   conn,
		UserID: userID,
		Role:   role,
		send:   make(chan []byte, sendBuffer),
	}
}

func (c *WSClient) ID() string { return c.id }

func (c *WSClient) Send(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrSubscriberClosed
	}
	select {
	case c.send <- msg:
		return nil
	default:
		return ErrSubscriberFull
	}
}

// Close stops the writer; the connection is closed once pending writes drain.
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Serve runs the write loop in the background and the read loop in the
// caller's goroutine, handing each inbound text frame to onMessage. It
// returns when the peer disconnects.
func (c *WSClient) Serve(onMessage func([]byte)) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.writePump()
	}()

	c.conn.SetReadLimit(maxReadMsg)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		if onMessage != nil {
			onMessage(data)
		}
	}

	c.Close()
	<-done
}

func (c *WSClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
