package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoState возвращает каждое сообщение родителю как есть
type echoState struct{}

func (echoState) HandleMessage(a *Actor, msg Message) { a.SendParent(msg.Bytes) }
func (echoState) Update(*Actor)                       {}

// tickState по первому сообщению запрашивает Update и шлет родителю метку
type tickState struct{}

func (tickState) HandleMessage(a *Actor, _ Message) { a.RequestUpdate(5 * time.Millisecond) }
func (tickState) Update(a *Actor)                   { a.SendParent([]byte{0xAA}) }

// collectState складывает входящие сообщения в канал
type collectState struct {
	received chan Message
}

func (c *collectState) HandleMessage(_ *Actor, msg Message) { c.received <- msg }
func (c *collectState) Update(*Actor)                       {}

func receiveOne(t *testing.T, ch chan Message) Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("сообщение не пришло за отведенное время")
		return Message{}
	}
}

func TestSendOrdering(t *testing.T) {
	pool := NewPool(nil)
	defer pool.Shutdown()

	received := make(chan Message, 16)
	root := pool.Spawn(&collectState{received: received})
	child := pool.SpawnWithParent(root, echoState{})

	payloads := [][]byte{{1}, {2}, {3}, {4}}
	for _, p := range payloads {
		pool.Send(root, child, p)
	}

	// Между упорядоченной парой акторов сообщения приходят в порядке
	// отправки
	for i, want := range payloads {
		msg := receiveOne(t, received)
		require.Equal(t, want, msg.Bytes, "сообщение %d", i)
		assert.Equal(t, child, msg.Sender)
	}
}

func TestRequestUpdate(t *testing.T) {
	pool := NewPool(nil)
	defer pool.Shutdown()

	received := make(chan Message, 1)
	root := pool.Spawn(&collectState{received: received})
	child := pool.SpawnWithParent(root, tickState{})

	pool.Send(root, child, []byte{0})

	msg := receiveOne(t, received)
	assert.Equal(t, []byte{0xAA}, msg.Bytes)
}

func TestSendToUnknownActor(t *testing.T) {
	pool := NewPool(nil)
	defer pool.Shutdown()

	// Сообщение неизвестному адресату молча отбрасывается
	pool.Send(0, 999, []byte{1})
}

func TestParallelism(t *testing.T) {
	assert.Greater(t, Parallelism(), 0)
}
