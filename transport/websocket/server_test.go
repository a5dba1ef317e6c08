package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-relay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-relay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-relay/internal/service"
	"github.com/rocketscienceinc/tictactoe-relay/internal/usecase"
)

const readTimeout = 2 * time.Second

type frame struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

type testClient struct {
	t    *testing.T
	conn *websocket.Conn
	id   string
}

func newTestServer(t *testing.T, conf Config) string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	hub := NewHub()
	registry := service.NewSessionRegistry()
	manager := usecase.NewGameManager(logger, service.NewMatchmakingQueue(registry), registry, service.NewNoopMirror(), hub, nil, usecase.Options{})

	server := New(logger, manager, hub, nil, conf)
	ts := httptest.NewServer(server.Handler(ctx))
	t.Cleanup(ts.Close)

	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *testClient {
	t.Helper()

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	c := &testClient{t: t, conn: conn}

	var connected entity.ConnectedPayload
	c.expect(entity.ActionConnected, &connected)
	require.NotEmpty(t, connected.ParticipantID)
	c.id = connected.ParticipantID

	return c
}

func (that *testClient) send(action string, payload any) {
	that.t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(that.t, err)
	require.NoError(that.t, that.conn.WriteJSON(Message{Action: action, Payload: raw}))
}

func (that *testClient) sendRaw(data string) {
	that.t.Helper()

	require.NoError(that.t, that.conn.WriteMessage(websocket.TextMessage, []byte(data)))
}

// expect reads frames until one with the given action arrives and decodes its payload into out.
func (that *testClient) expect(action string, out any) {
	that.t.Helper()

	require.NoError(that.t, that.conn.SetReadDeadline(time.Now().Add(readTimeout)))

	for {
		var f frame
		require.NoError(that.t, that.conn.ReadJSON(&f), "waiting for %s", action)

		if f.Action != action {
			continue
		}

		if out != nil {
			require.NoError(that.t, json.Unmarshal(f.Payload, out))
		}

		return
	}
}

func cell(i int) *int {
	return &i
}

func TestServer_Connect(t *testing.T) {
	// Given: a running server
	url := newTestServer(t, Config{})

	// When: two clients connect
	a := dial(t, url)
	b := dial(t, url)

	// Then: each gets a distinct identity
	assert.NotEqual(t, a.id, b.id)
}

func TestServer_PlayMatch(t *testing.T) {
	// Given: two connected clients
	url := newTestServer(t, Config{})
	a := dial(t, url)
	b := dial(t, url)

	// When: both search
	a.send(entity.ActionFindMatch, nil)

	var searching entity.SearchingPayload
	a.expect(entity.ActionSearching, &searching)
	assert.Equal(t, 1, searching.Position)

	b.send(entity.ActionFindMatch, nil)

	// Then: they are matched, first come plays X
	var foundA, foundB entity.MatchFoundPayload
	a.expect(entity.ActionMatchFound, &foundA)
	b.expect(entity.ActionMatchFound, &foundB)

	assert.Equal(t, entity.SymbolX, foundA.Symbol)
	assert.Equal(t, entity.SymbolO, foundB.Symbol)
	assert.Equal(t, b.id, foundA.OpponentID)
	assert.Equal(t, a.id, foundB.OpponentID)
	require.Equal(t, foundA.SessionID, foundB.SessionID)

	room := foundA.SessionID

	// When: X wins on the diagonal, O uses the index alias
	moves := []struct {
		client *testClient
		move   MakeMovePayload
	}{
		{a, MakeMovePayload{CellIndex: cell(0), Symbol: entity.SymbolX, Room: room}},
		{b, MakeMovePayload{Index: cell(1), Symbol: entity.SymbolO, Room: room}},
		{a, MakeMovePayload{CellIndex: cell(4), Room: room}},
		{b, MakeMovePayload{Index: cell(2)}},
		{a, MakeMovePayload{CellIndex: cell(8)}},
	}

	for i, m := range moves {
		m.client.send(entity.ActionMakeMove, m.move)

		for _, c := range []*testClient{a, b} {
			var made entity.MoveMadePayload
			c.expect(entity.ActionMoveMade, &made)
			assert.Equal(t, i+1, made.MoveNumber)
		}
	}

	// Then: both see X win
	for _, c := range []*testClient{a, b} {
		var ended entity.MatchEndedPayload
		c.expect(entity.ActionMatchEnded, &ended)
		assert.Equal(t, entity.MatchEndedPayload{SessionID: room, Result: entity.OutcomeWin, Winner: entity.SymbolX}, ended)
	}
}

func TestServer_Rejections(t *testing.T) {
	t.Run("Off-turn move is rejected to the sender only", func(t *testing.T) {
		// Given: a matched pair
		url := newTestServer(t, Config{})
		a := dial(t, url)
		b := dial(t, url)
		a.send(entity.ActionFindMatch, nil)
		a.expect(entity.ActionSearching, nil)
		b.send(entity.ActionFindMatch, nil)
		a.expect(entity.ActionMatchFound, nil)
		b.expect(entity.ActionMatchFound, nil)

		// When: O moves first
		b.send(entity.ActionMakeMove, MakeMovePayload{CellIndex: cell(0)})

		// Then: O gets not_your_turn
		var rejected entity.RejectedPayload
		b.expect(entity.ActionMoveRejected, &rejected)
		assert.Equal(t, apperror.ReasonNotYourTurn, rejected.Reason)

		// And X can still play
		a.send(entity.ActionMakeMove, MakeMovePayload{CellIndex: cell(0)})
		a.expect(entity.ActionMoveMade, nil)
	})

	t.Run("Move without a session", func(t *testing.T) {
		// Given: a lone client
		url := newTestServer(t, Config{})
		a := dial(t, url)

		// When: it moves
		a.send(entity.ActionMakeMove, MakeMovePayload{CellIndex: cell(0)})

		// Then: no_active_session is returned
		var rejected entity.RejectedPayload
		a.expect(entity.ActionMoveRejected, &rejected)
		assert.Equal(t, apperror.ReasonNoActiveSession, rejected.Reason)
	})

	t.Run("Duplicate search", func(t *testing.T) {
		// Given: a waiting client
		url := newTestServer(t, Config{})
		a := dial(t, url)
		a.send(entity.ActionFindMatch, nil)
		a.expect(entity.ActionSearching, nil)

		// When: it searches again
		a.send(entity.ActionFindMatch, nil)

		// Then: already_queued is returned
		var rejected entity.RejectedPayload
		a.expect(entity.ActionMatchRejected, &rejected)
		assert.Equal(t, apperror.ReasonAlreadyQueued, rejected.Reason)
	})

	t.Run("Malformed frames and unknown actions", func(t *testing.T) {
		// Given: a connected client
		url := newTestServer(t, Config{})
		a := dial(t, url)

		// When: it sends garbage, then an unknown action, then a move without a cell
		a.sendRaw("{not json")
		var garbage entity.RejectedPayload
		a.expect(entity.ActionError, &garbage)

		a.send("teleport", nil)
		var unknown entity.RejectedPayload
		a.expect(entity.ActionError, &unknown)

		a.send(entity.ActionMakeMove, map[string]any{"symbol": "X"})
		var noCell entity.RejectedPayload
		a.expect(entity.ActionMoveRejected, &noCell)

		// Then: every one is a bad request and the connection survives
		assert.Equal(t, apperror.ReasonBadRequest, garbage.Reason)
		assert.Equal(t, apperror.ReasonBadRequest, unknown.Reason)
		assert.Equal(t, apperror.ReasonBadRequest, noCell.Reason)

		a.send(entity.ActionFindMatch, nil)
		a.expect(entity.ActionSearching, nil)
	})
}

func TestServer_Lifecycle(t *testing.T) {
	t.Run("Disconnect tells the opponent", func(t *testing.T) {
		// Given: a matched pair
		url := newTestServer(t, Config{})
		a := dial(t, url)
		b := dial(t, url)
		a.send(entity.ActionFindMatch, nil)
		a.expect(entity.ActionSearching, nil)
		b.send(entity.ActionFindMatch, nil)

		var found entity.MatchFoundPayload
		b.expect(entity.ActionMatchFound, &found)

		// When: X drops the connection
		require.NoError(t, a.conn.Close())

		// Then: O gets opponentLeft for that session
		var left entity.SessionClosedPayload
		b.expect(entity.ActionOpponentLeft, &left)
		assert.Equal(t, found.SessionID, left.SessionID)
	})

	t.Run("Leave and cancel", func(t *testing.T) {
		// Given: a matched pair and a waiting third client
		url := newTestServer(t, Config{})
		a := dial(t, url)
		b := dial(t, url)
		c := dial(t, url)
		a.send(entity.ActionFindMatch, nil)
		a.expect(entity.ActionSearching, nil)
		b.send(entity.ActionFindMatch, nil)
		b.expect(entity.ActionMatchFound, nil)
		c.send(entity.ActionFindMatch, nil)
		c.expect(entity.ActionSearching, nil)

		// When: X leaves and the third client cancels
		a.send(entity.ActionLeaveMatch, nil)
		c.send(entity.ActionCancelSearch, nil)

		// Then: O is told and the search is cancelled
		b.expect(entity.ActionOpponentLeft, nil)
		c.expect(entity.ActionSearchCancelled, nil)

		// And a second cancel is rejected
		c.send(entity.ActionCancelSearch, nil)
		var rejected entity.RejectedPayload
		c.expect(entity.ActionError, &rejected)
		assert.Equal(t, apperror.ReasonNotQueued, rejected.Reason)
	})
}

func TestServer_CheckOrigin(t *testing.T) {
	// Given: a server that only trusts one origin
	url := newTestServer(t, Config{AllowedOrigins: []string{"https://play.example.com"}})

	// When: a foreign origin connects
	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)

	// Then: the handshake is refused
	require.Error(t, err)
	require.NotNil(t, resp)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// And the trusted origin is accepted
	header = http.Header{"Origin": []string{"https://play.example.com"}}
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	_ = resp.Body.Close()
	_ = conn.Close()
}

func TestHub_Send(t *testing.T) {
	t.Run("Unknown participant", func(t *testing.T) {
		// Given: an empty hub
		hub := NewHub()

		// When: an event is sent
		err := hub.Send("nobody", entity.Event{Action: entity.ActionSearching})

		// Then: ErrUnknownConnection is returned
		require.ErrorIs(t, err, ErrUnknownConnection)
	})

	t.Run("Slow consumer is closed", func(t *testing.T) {
		// Given: a connection with a one-frame buffer nobody drains
		hub := NewHub()
		conn := newConnection("p1", nil, 1)
		hub.register(conn)

		// When: two events are sent
		first := hub.Send("p1", entity.Event{Action: entity.ActionSearching})
		second := hub.Send("p1", entity.Event{Action: entity.ActionSearching})

		// Then: the second overflows and the connection is closed
		require.NoError(t, first)
		require.ErrorIs(t, second, ErrSlowConsumer)

		select {
		case <-conn.done:
		default:
			t.Fatal("connection was not closed")
		}
	})
}

func TestMakeMovePayload_Intent(t *testing.T) {
	t.Run("CellIndex wins over index", func(t *testing.T) {
		payload := MakeMovePayload{CellIndex: cell(3), Index: cell(5), Symbol: entity.SymbolO, Room: "s-1"}

		intent, err := payload.intent()

		require.NoError(t, err)
		assert.Equal(t, entity.MoveIntent{Cell: 3, Symbol: entity.SymbolO, SessionID: "s-1"}, intent)
	})

	t.Run("Unknown symbol", func(t *testing.T) {
		payload := MakeMovePayload{CellIndex: cell(3), Symbol: "Z"}

		_, err := payload.intent()

		require.ErrorIs(t, err, apperror.ErrBadRequest)
	})
}
