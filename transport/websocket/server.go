package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-relay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-relay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-relay/internal/metrics"
)

const (
	shutdownTimeout = 5 * time.Second

	defaultSendBuffer     = 64
	defaultWriteWait      = 10 * time.Second
	defaultPongWait       = 60 * time.Second
	defaultMaxMessageSize = 4096
)

type uGame interface {
	FindMatch(ctx context.Context, participantID string) error
	MakeMove(ctx context.Context, participantID string, intent entity.MoveIntent) (entity.MoveOutcome, error)
	CancelSearch(ctx context.Context, participantID string) error
	LeaveMatch(ctx context.Context, participantID string) error
	Disconnect(ctx context.Context, participantID string)
}

type Config struct {
	SendBuffer     int
	WriteWait      time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
	AllowedOrigins []string
}

func (that Config) withDefaults() Config {
	if that.SendBuffer <= 0 {
		that.SendBuffer = defaultSendBuffer
	}

	if that.WriteWait <= 0 {
		that.WriteWait = defaultWriteWait
	}

	if that.PongWait <= 0 {
		that.PongWait = defaultPongWait
	}

	if that.MaxMessageSize <= 0 {
		that.MaxMessageSize = defaultMaxMessageSize
	}

	return that
}

// pings go out a bit before the peer is considered dead.
func (that Config) pingPeriod() time.Duration {
	return that.PongWait * 9 / 10
}

type handler func(ctx context.Context, conn *connection, message *Message) error

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	hub      *Hub
	metrics  *metrics.Metrics
	conf     Config
	upgrader websocket.Upgrader

	handlers map[string]handler
}

func New(logger *slog.Logger, uGame uGame, hub *Hub, m *metrics.Metrics, conf Config) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		uGame:   uGame,
		hub:     hub,
		metrics: m,
		conf:    conf.withDefaults(),

		handlers: make(map[string]handler),
	}

	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     server.checkOrigin,
	}

	server.handlers[entity.ActionFindMatch] = server.handleFindMatch
	server.handlers[entity.ActionMakeMove] = server.handleMakeMove
	server.handlers[entity.ActionCancelSearch] = server.handleCancelSearch
	server.handlers[entity.ActionLeaveMatch] = server.handleLeaveMatch

	return server
}

// Handler exposes the upgrade endpoint. ctx bounds every connection it accepts.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and blocks until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// hijacked connections are not tracked by http.Server
	that.hub.closeAll()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

func (that *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(that.conf.AllowedOrigins) == 0 {
		return true
	}

	return slices.Contains(that.conf.AllowedOrigins, "*") || slices.Contains(that.conf.AllowedOrigins, origin)
}

// upgradeToWebSocket - upgrades the connection and serves it until the peer goes away.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	wsConn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		// the upgrader has already replied with an HTTP error
		log.Warn("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(uuid.NewString(), wsConn, that.conf.SendBuffer)
	that.hub.register(conn)
	that.metrics.ConnectionOpened()

	go conn.writePump(that.logger, that.conf)

	log.Info("WebSocket connection established", "participant_id", conn.id)

	if err = that.hub.Send(conn.id, entity.Event{
		Action:  entity.ActionConnected,
		Payload: entity.ConnectedPayload{ParticipantID: conn.id},
	}); err != nil {
		log.Error("failed to send identity", "participant_id", conn.id, "error", err)
	}

	that.handleMessages(ctx, conn)
}

// handleMessages - processes messages from the client until the socket fails.
func (that *Server) handleMessages(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "handleMessages", "participant_id", conn.id)

	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from panic", "panic", r)
		}

		that.hub.unregister(conn)
		conn.close()
		that.uGame.Disconnect(context.WithoutCancel(ctx), conn.id)
		that.metrics.ConnectionClosed()

		log.Info("WebSocket connection closed")
	}()

	conn.conn.SetReadLimit(that.conf.MaxMessageSize)
	_ = conn.conn.SetReadDeadline(time.Now().Add(that.conf.PongWait))
	conn.conn.SetPongHandler(func(string) error {
		return conn.conn.SetReadDeadline(time.Now().Add(that.conf.PongWait))
	})

	for {
		_, data, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				log.Warn("error reading message", "error", err)
			}
			return
		}

		that.dispatch(ctx, conn, data)
	}
}

func (that *Server) dispatch(ctx context.Context, conn *connection, data []byte) {
	log := that.logger.With("method", "dispatch", "participant_id", conn.id)

	message, err := decodeMessage(data)
	if err != nil {
		that.reject(conn, entity.ActionError, err)
		return
	}

	handle, ok := that.handlers[message.Action]
	if !ok {
		that.reject(conn, entity.ActionError, fmt.Errorf("%w: unknown action %q", apperror.ErrBadRequest, message.Action))
		return
	}

	defer that.metrics.ObserveIntent(message.Action, time.Now())

	if err = handle(ctx, conn, message); err != nil {
		log.Debug("intent rejected", "action", message.Action, "error", err)
		that.reject(conn, rejectionAction(message.Action), err)
	}
}
