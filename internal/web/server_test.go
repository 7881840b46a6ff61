package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/novacana/internal/game"
	novanet "github.com/peterkuimelis/novacana/internal/net"
)

func newTestServer(t *testing.T) (*novanet.Session, *httptest.Server) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	session := novanet.NewSession(novanet.SessionConfig{
		Engine: game.NewEngine(game.EngineConfig{Seed: 5, Strict: true}),
		Logger: logger,
	})
	t.Cleanup(session.Close)
	ts := httptest.NewServer(NewServer(session, "Alice", logger).Handler())
	t.Cleanup(ts.Close)
	return session, ts
}

func TestHandleCards(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/cards")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var cards []CardInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cards))
	assert.Len(t, cards, len(game.DefaultCatalog().Cards()))

	total := 0
	for _, c := range cards {
		total += c.Copies
		if c.Name == "Cosmic Denial" {
			assert.Equal(t, "cosmic_denial", c.Effect)
			assert.True(t, c.ChainBound)
		}
	}
	assert.Equal(t, game.DefaultCatalog().PoolSize(), total)
}

func TestHandleState(t *testing.T) {
	session, ts := newTestServer(t)

	get := func() novanet.ServerMessage {
		resp, err := http.Get(ts.URL + "/api/state")
		require.NoError(t, err)
		defer resp.Body.Close()
		var msg novanet.ServerMessage
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
		return msg
	}

	msg := get()
	require.NotNil(t, msg.State)
	assert.Equal(t, game.PhaseSetup, msg.State.Phase)

	session.StartLocal("Alice")
	msg = get()
	assert.Equal(t, session.GameID(), msg.GameID)
	assert.Equal(t, game.PhaseAction, msg.State.Phase)
}

func TestJoinStartsNetworkGame(t *testing.T) {
	session, ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	seat, err := novanet.Join(ctx, strings.TrimPrefix(ts.URL, "http://"), "Bob", zaptest.NewLogger(t))
	require.NoError(t, err)
	defer seat.Close()

	mirror := seat.Mirror()
	require.Eventually(t, func() bool {
		return mirror.State().Phase == game.PhaseAction
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, novanet.ModeNetwork, session.Mode())
	assert.Equal(t, "Alice", mirror.State().Player(1).Name)
	assert.Equal(t, "Bob", mirror.State().Player(2).Name)
	assert.Equal(t, session.GameID(), mirror.GameID())

	// Not the joiner's turn: silently ignored.
	require.NoError(t, seat.Submit(ctx, game.AdvanceIntent(1)))

	host := session.Snapshot().Player(1)
	require.Len(t, host.Hand, 6)
	_, ok := session.Submit(ctx, game.DiscardIntent(1, host.Hand[0].ID))
	require.True(t, ok)
	_, ok = session.Submit(ctx, game.AdvanceIntent(1))
	require.True(t, ok)
	require.Eventually(t, func() bool {
		return mirror.State().Turn == 2
	}, 5*time.Second, 10*time.Millisecond)

	// Six cards in hand, so advancing opens the discard gate for player 2,
	// whatever player the frame claimed to be.
	require.NoError(t, seat.Submit(ctx, game.AdvanceIntent(1)))
	require.Eventually(t, func() bool {
		return mirror.State().DiscardMode
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 2, session.Snapshot().Active)
}

func TestWebSocketRequiresJoin(t *testing.T) {
	session, ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	require.NoError(t, wsjson.Write(ctx, conn, novanet.ClientMessage{Type: novanet.TypeIntent}))
	_, _, err = conn.Read(ctx)
	require.Error(t, err)
	assert.Equal(t, websocket.StatusPolicyViolation, websocket.CloseStatus(err))
	assert.Equal(t, novanet.ModeIdle, session.Mode())
}
