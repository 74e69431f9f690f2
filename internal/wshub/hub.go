package wshub

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"aimlab/internal/hit"

	"github.com/coder/websocket"
)

// Client message types.
const (
	MsgDown   = "down"
	MsgMove   = "move"
	MsgResize = "resize"
	MsgStart  = "start"
	MsgPause  = "pause"
	MsgResume = "resume"
	MsgReset  = "reset"
)

// ClientMessage is the JSON structure received from clients. Pointer
// messages carry the screen position and the surface rectangle it was
// measured against.
type ClientMessage struct {
	Type string   `json:"t"`
	X    float64  `json:"x,omitempty"`
	Y    float64  `json:"y,omitempty"`
	Rect hit.Rect `json:"r"`
}

func (m ClientMessage) Pointer() hit.Pointer {
	return hit.Pointer{X: m.X, Y: m.Y, Rect: m.Rect}
}

type PointMessage struct {
	Position []float64 `json:"p"`
	Color    string    `json:"c,omitempty"`
}

// ServerMessage is the JSON structure sent to clients. Primitive operations
// fill the drawing fields; hud, state and session messages carry Data.
type ServerMessage struct {
	Type     string          `json:"t"`
	ClientID string          `json:"id,omitempty"`
	Layer    string          `json:"l,omitempty"`
	Handle   uint32          `json:"h,omitempty"`
	Kind     string          `json:"k,omitempty"`
	Position []float64       `json:"p,omitempty"`
	Radius   float64         `json:"r,omitempty"`
	Width    float64         `json:"w,omitempty"`
	Height   float64         `json:"ht,omitempty"`
	Color    string          `json:"c,omitempty"`
	Alpha    float64         `json:"a,omitempty"`
	Points   []PointMessage  `json:"pts,omitempty"`
	Min      []float64       `json:"min,omitempty"`
	Max      []float64       `json:"max,omitempty"`
	Data     json.RawMessage `json:"d,omitempty"`
}

// ErrOverflow ends a connection that fell too far behind to be kept in step.
var ErrOverflow = errors.New("send buffer overflow")

// Client represents a single WebSocket connection in the hub.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte

	mu       sync.Mutex
	closed   bool
	lost     chan struct{}
	lostOnce sync.Once
}

func NewClient(id string, conn *websocket.Conn, buffer int) *Client {
	return &Client{ID: id, Conn: conn, Send: make(chan []byte, buffer), lost: make(chan struct{})}
}

// Enqueue hands data to the write pump without blocking. It reports false
// when the buffer is full or the client is gone.
func (c *Client) Enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) SendMessage(msg ServerMessage) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return false
	}
	return c.Enqueue(data)
}

// SendRequired queues a message the client cannot do without. If it does
// not fit the client is marked lost and WritePump hangs up on it.
func (c *Client) SendRequired(msg ServerMessage) bool {
	if c.SendMessage(msg) {
		return true
	}
	c.lostOnce.Do(func() { close(c.lost) })
	return false
}

// Lost is closed once a required message could not be queued.
func (c *Client) Lost() <-chan struct{} { return c.lost }

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// WritePump reads from the Send channel and writes to the WebSocket
// connection. A lost client is closed with StatusPolicyViolation and
// WritePump returns ErrOverflow.
func (c *Client) WritePump(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.lost:
			if c.Conn != nil {
				c.Conn.Close(websocket.StatusPolicyViolation, ErrOverflow.Error())
			}
			return ErrOverflow
		case msg, ok := <-c.Send:
			if !ok {
				return nil
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return err
			}
		}
	}
}

// Hub tracks the connected players.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	h.mu.Unlock()

	if ok {
		c.close()
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to every client. Non-blocking: drops if a
// channel is full.
func (h *Hub) Broadcast(msg ServerMessage) {
	h.BroadcastExcept("", msg)
}

// BroadcastExcept sends a message to all clients except skipID.
func (h *Hub) BroadcastExcept(skipID string, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.clients {
		if id == skipID {
			continue
		}
		c.Enqueue(data)
	}
}
