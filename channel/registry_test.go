package channel

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mtx        sync.Mutex
	messages   [][]byte
	failWrites bool
	closed     bool
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.failWrites {
		return errors.New("connection reset")
	}
	c.messages = append(c.messages, data)
	return nil
}

func (c *fakeConn) SetWriteDeadline(t time.Time) error {
	return nil
}

func (c *fakeConn) Close() error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) received() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return len(c.messages)
}

func TestSendNotificationFansOutToAllConnections(t *testing.T) {
	registry := NewRegistry()
	first := &fakeConn{}
	second := &fakeConn{}

	registry.Register(42, first)
	registry.Register(42, second)

	err := registry.SendNotification(42, Payload{Id: 7, Type: "appointment", Title: "Reminder"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.received())
	assert.Equal(t, 1, second.received())

	var payload Payload
	require.NoError(t, json.Unmarshal(first.messages[0], &payload))
	assert.Equal(t, int64(7), payload.Id)
	assert.Equal(t, "appointment", payload.Type)
}

func TestSendNotificationIsolatesFailingConnection(t *testing.T) {
	registry := NewRegistry()
	broken := &fakeConn{failWrites: true}
	healthy := &fakeConn{}

	registry.Register(42, broken)
	registry.Register(42, healthy)

	err := registry.SendNotification(42, Payload{Id: 1, Type: "payment"})
	require.NoError(t, err)

	assert.Equal(t, 1, healthy.received())
	assert.True(t, broken.closed)
	assert.Equal(t, 1, registry.Connections(42))
}

func TestSendNotificationWithoutSubscribers(t *testing.T) {
	registry := NewRegistry()

	err := registry.SendNotification(99, Payload{Id: 1, Type: "reminder"})

	require.NoError(t, err)
}

func TestSendNotificationDoesNotCrossAccounts(t *testing.T) {
	registry := NewRegistry()
	mine := &fakeConn{}
	theirs := &fakeConn{}

	registry.Register(1, mine)
	registry.Register(2, theirs)

	require.NoError(t, registry.SendNotification(1, Payload{Id: 5, Type: "lab_result"}))

	assert.Equal(t, 1, mine.received())
	assert.Equal(t, 0, theirs.received())
}

func TestUnregisterAbsentConnectionIsNoop(t *testing.T) {
	registry := NewRegistry()
	conn := &fakeConn{}

	registry.Unregister(1, conn)

	registry.Register(1, conn)
	registry.Unregister(1, conn)
	registry.Unregister(1, conn)

	assert.Equal(t, 0, registry.Connections(1))
}

// bareConn has no locking of its own: the registry must serialize
// writes to a connection, since the websocket transport forbids
// concurrent writers.
type bareConn struct {
	writes int
}

func (c *bareConn) WriteMessage(messageType int, data []byte) error {
	c.writes++
	return nil
}

func (c *bareConn) SetWriteDeadline(t time.Time) error {
	return nil
}

func (c *bareConn) Close() error {
	return nil
}

func TestConcurrentSendsSerializePerConnection(t *testing.T) {
	registry := NewRegistry()
	conn := &bareConn{}
	registry.Register(1, conn)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				registry.SendNotification(1, Payload{Id: int64(j), Type: "reminder"})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 200, conn.writes)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	registry := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(accountId int64) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				conn := &fakeConn{}
				registry.Register(accountId, conn)
				registry.SendNotification(accountId, Payload{Id: int64(j), Type: "reminder"})
				registry.Unregister(accountId, conn)
			}
		}(int64(i % 4))
	}
	wg.Wait()

	for i := int64(0); i < 4; i++ {
		assert.Equal(t, 0, registry.Connections(i))
	}
}

func TestCloseTearsDownEverything(t *testing.T) {
	registry := NewRegistry()
	first := &fakeConn{}
	second := &fakeConn{}

	registry.Register(1, first)
	registry.Register(2, second)

	registry.Close()

	assert.True(t, first.closed)
	assert.True(t, second.closed)
	assert.Equal(t, 0, registry.Connections(1))
	assert.Equal(t, 0, registry.Connections(2))
}
