package websocket

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient is a test double capturing sent messages
type fakeClient struct {
	id     string
	userID string
	mu     sync.Mutex
	sent   [][]byte
	closed bool
}

func (c *fakeClient) ID() string     { return c.id }
func (c *fakeClient) UserID() string { return c.userID }

func (c *fakeClient) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	c.sent = append(c.sent, data)
	return nil
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) sentCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestHub_RegisterAndCount(t *testing.T) {
	hub := NewHub()
	c1 := &fakeClient{id: "c1", userID: "u1"}
	c2 := &fakeClient{id: "c2", userID: "u1"}
	c3 := &fakeClient{id: "c3", userID: "u2"}

	hub.Register(c1)
	hub.Register(c2)
	hub.Register(c3)

	assert.Equal(t, 2, hub.ClientCount("u1"))
	assert.Equal(t, 1, hub.ClientCount("u2"))
	assert.Equal(t, 3, hub.TotalClientCount())

	hub.Unregister(c2)
	assert.Equal(t, 1, hub.ClientCount("u1"))

	hub.Unregister(c3)
	assert.Equal(t, 0, hub.ClientCount("u2"))
}

func TestHub_BroadcastIsolatedPerUser(t *testing.T) {
	hub := NewHub()
	mine := &fakeClient{id: "c1", userID: "u1"}
	other := &fakeClient{id: "c2", userID: "u2"}
	hub.Register(mine)
	hub.Register(other)

	hub.Broadcast("u1", TransactionCreated(map[string]string{"id": "t1"}))

	waitFor(t, func() bool { return mine.sentCount() == 1 })
	assert.Equal(t, 0, other.sentCount())

	var event Event
	require.NoError(t, json.Unmarshal(mine.sent[0], &event))
	assert.Equal(t, "transaction.created", event.Type)
	assert.Equal(t, EntityTypeTransaction, event.Entity)
}

func TestHub_BroadcastNoClients(t *testing.T) {
	hub := NewHub()
	// Must not panic or block
	hub.Broadcast("nobody", BudgetUpdated(nil))
}

func TestHub_PublishImplementsEventPublisher(t *testing.T) {
	var pub EventPublisher = NewHub()
	pub.Publish("u1", GoalFunded(nil))
}

func TestNoOpPublisher(t *testing.T) {
	var pub EventPublisher = &NoOpPublisher{}
	pub.Publish("u1", TransactionDeleted(nil))
}
