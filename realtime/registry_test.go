package realtime

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	events   []Event
	writeErr error
	closed   bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.events = append(f.events, v.(Event))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func TestRegisterAndRemoveLifecycle(t *testing.T) {
	reg := NewRegistry()
	conn := &fakeConn{}

	reg.Register("jane@example.com", conn)
	assert.Equal(t, 1, reg.Count("jane@example.com"))

	reg.Remove("jane@example.com", conn)
	assert.Zero(t, reg.Count("jane@example.com"))
}

func TestPublishFansOutToAllUserConnections(t *testing.T) {
	reg := NewRegistry()
	first := &fakeConn{}
	second := &fakeConn{}
	other := &fakeConn{}

	reg.Register("jane@example.com", first)
	reg.Register("jane@example.com", second)
	reg.Register("bob@example.com", other)

	ev := Event{Type: "order.placed", OrderID: "ORD-1", Status: "Placed"}
	reg.Publish("jane@example.com", ev)

	require.Len(t, first.events, 1)
	require.Len(t, second.events, 1)
	assert.Equal(t, ev, first.events[0])
	assert.Empty(t, other.events)
}

func TestPublishToUnknownUserIsNoop(t *testing.T) {
	reg := NewRegistry()
	reg.Publish("nobody@example.com", Event{Type: "order.placed"})
}

func TestFailedWriteDropsConnection(t *testing.T) {
	reg := NewRegistry()
	broken := &fakeConn{writeErr: errors.New("peer gone")}
	healthy := &fakeConn{}

	reg.Register("jane@example.com", broken)
	reg.Register("jane@example.com", healthy)

	reg.Publish("jane@example.com", Event{Type: "order.cancelled", OrderID: "ORD-2"})

	assert.True(t, broken.closed)
	assert.Equal(t, 1, reg.Count("jane@example.com"))
	assert.Len(t, healthy.events, 1)
}
