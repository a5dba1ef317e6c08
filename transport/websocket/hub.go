package websocket

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-relay/internal/entity"
)

var (
	ErrUnknownConnection = errors.New("participant is not connected")
	ErrSlowConsumer      = errors.New("send buffer is full")
)

// Hub routes events to connected participants. Send never blocks: a connection that
// cannot keep up is closed and goes through the regular disconnect path.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*connection
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*connection),
	}
}

func (that *Hub) Send(participantID string, event entity.Event) error {
	that.mu.RLock()
	conn, ok := that.connections[participantID]
	that.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownConnection, participantID)
	}

	data, err := encodeEvent(event)
	if err != nil {
		return err
	}

	if !conn.enqueue(data) {
		conn.close()
		return fmt.Errorf("%w: %s", ErrSlowConsumer, participantID)
	}

	return nil
}

func (that *Hub) register(conn *connection) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.connections[conn.id] = conn
}

func (that *Hub) unregister(conn *connection) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.connections[conn.id] == conn {
		delete(that.connections, conn.id)
	}
}

// closeAll closes every live connection, used on shutdown.
func (that *Hub) closeAll() {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, conn := range that.connections {
		conn.close()
	}
}

func (that *Hub) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.connections)
}
