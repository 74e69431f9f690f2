package wshub

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

// queued drains whatever is buffered for c without blocking.
func queued(c *Client) [][]byte {
	var out [][]byte
	for {
		select {
		case data, ok := <-c.Send:
			if !ok {
				return out
			}
			out = append(out, data)
		default:
			return out
		}
	}
}

func TestHub_Broadcast(t *testing.T) {
	tests := []struct {
		name string
		skip string
		want map[string]int
	}{
		{"everyone", "", map[string]int{"a": 1, "b": 1, "c": 1}},
		{"skips sender", "a", map[string]int{"a": 0, "b": 1, "c": 1}},
		{"unknown skip", "zzz", map[string]int{"a": 1, "b": 1, "c": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHub()
			clients := map[string]*Client{}
			for _, id := range []string{"a", "b", "c"} {
				clients[id] = NewClient(id, nil, 4)
				h.Register(clients[id])
			}

			h.BroadcastExcept(tt.skip, ServerMessage{Type: MsgConfig, Data: json.RawMessage(`{"targetSize":0.5}`)})

			for id, want := range tt.want {
				got := queued(clients[id])
				if len(got) != want {
					t.Errorf("client %s got %d messages, want %d", id, len(got), want)
					continue
				}
				if want == 0 {
					continue
				}
				var msg ServerMessage
				if err := json.Unmarshal(got[0], &msg); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if msg.Type != MsgConfig || string(msg.Data) != `{"targetSize":0.5}` {
					t.Errorf("client %s got %+v", id, msg)
				}
			}
		})
	}
}

func TestHub_RegisterReplacesSameID(t *testing.T) {
	h := NewHub()
	old := NewClient("a", nil, 4)
	h.Register(old)
	h.Register(NewClient("a", nil, 4))

	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
	h.Broadcast(ServerMessage{Type: MsgState})
	if n := len(queued(old)); n != 0 {
		t.Errorf("replaced client got %d messages, want 0", n)
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := NewHub()
	c := NewClient("a", nil, 4)
	h.Register(c)
	h.Unregister("a")
	h.Unregister("a")
	h.Unregister("never-registered")

	if _, ok := <-c.Send; ok {
		t.Error("Send should be closed after Unregister")
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
	if c.Enqueue([]byte("late")) {
		t.Error("Enqueue after Unregister should report false")
	}
}

func TestClient_EnqueueFullBuffer(t *testing.T) {
	c := NewClient("a", nil, 1)
	if !c.Enqueue([]byte("first")) {
		t.Fatal("first Enqueue should fit")
	}
	if c.SendMessage(ServerMessage{Type: MsgState}) {
		t.Error("SendMessage into a full buffer should report false")
	}
	got := queued(c)
	if len(got) != 1 || string(got[0]) != "first" {
		t.Errorf("queued = %q, want only the first message", got)
	}
}

func TestClient_SendRequired(t *testing.T) {
	c := NewClient("a", nil, 1)
	if !c.SendRequired(ServerMessage{Type: MsgAdd}) {
		t.Fatal("first SendRequired should fit")
	}
	if c.SendRequired(ServerMessage{Type: MsgRemove}) {
		t.Error("SendRequired into a full buffer should report false")
	}
	c.SendRequired(ServerMessage{Type: MsgRemove})

	select {
	case <-c.Lost():
	default:
		t.Error("Lost() should be closed after a required message was refused")
	}
}

func TestClient_WritePumpHangsUpWhenLost(t *testing.T) {
	c := NewClient("a", nil, 1)
	c.SendRequired(ServerMessage{Type: MsgAdd})
	c.SendRequired(ServerMessage{Type: MsgAdd})
	<-c.Send

	if err := c.WritePump(context.Background()); !errors.Is(err, ErrOverflow) {
		t.Errorf("WritePump() error = %v, want ErrOverflow", err)
	}
}

func TestClientMessage_Pointer(t *testing.T) {
	var m ClientMessage
	if err := json.Unmarshal([]byte(`{"t":"down","x":110,"y":70,"r":{"left":10,"top":20,"width":800,"height":600}}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	local := m.Pointer().Local()
	if m.Type != MsgDown || local.X != 100 || local.Y != 50 {
		t.Errorf("type %q local %+v, want down at {100 50}", m.Type, local)
	}
}
