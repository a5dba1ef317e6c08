package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type connection struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(id string, conn *websocket.Conn, buffer int) *connection {
	return &connection{
		id:   id,
		conn: conn,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

func (that *connection) enqueue(data []byte) bool {
	select {
	case <-that.done:
		// dropped frames to a closing connection are not a slow consumer
		return true
	default:
	}

	select {
	case that.send <- data:
		return true
	default:
		return false
	}
}

// close stops the write pump, which closes the socket and unblocks the reader.
func (that *connection) close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

// writePump is the only writer of the socket.
func (that *connection) writePump(logger *slog.Logger, conf Config) {
	log := logger.With("method", "writePump", "participant_id", that.id)

	ticker := time.NewTicker(conf.pingPeriod())
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case <-that.done:
			_ = that.conn.SetWriteDeadline(time.Now().Add(conf.WriteWait))
			_ = that.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case data := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(conf.WriteWait))
			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug("failed to write message", "error", err)
				that.close()
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(conf.WriteWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug("failed to write ping", "error", err)
				that.close()
				return
			}
		}
	}
}
