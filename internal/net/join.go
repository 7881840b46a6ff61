package net

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/peterkuimelis/novacana/internal/game"
)

// JoinerPlayer is the seat a remote joiner always plays.
const JoinerPlayer = 2

// snapshotReadLimit bounds a single state_update frame.
const snapshotReadLimit = 4 << 20

// RemoteSeat is the joiner's side of a network game: it mirrors the host's
// snapshots and sends intents as player 2.
type RemoteSeat struct {
	conn    *websocket.Conn
	mirror  *Mirror
	logger  *zap.Logger
	updates chan ServerMessage

	mu  sync.Mutex
	err error
}

// Join dials the host at addr (host:port or a ws:// URL), announces name and
// starts mirroring.
func Join(ctx context.Context, addr, name string, logger *zap.Logger) (*RemoteSeat, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	url := addr
	if !strings.HasPrefix(url, "ws://") && !strings.HasPrefix(url, "wss://") {
		url = "ws://" + addr + "/ws"
	}

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	conn.SetReadLimit(snapshotReadLimit)

	if err := wsjson.Write(ctx, conn, ClientMessage{Type: TypeJoin, Name: name}); err != nil {
		conn.CloseNow()
		return nil, fmt.Errorf("send join: %w", err)
	}

	r := &RemoteSeat{
		conn:    conn,
		mirror:  NewMirror(),
		logger:  logger,
		updates: make(chan ServerMessage, 16),
	}
	go r.readLoop(ctx)
	return r, nil
}

func (r *RemoteSeat) readLoop(ctx context.Context) {
	defer close(r.updates)
	for {
		var msg ServerMessage
		if err := wsjson.Read(ctx, r.conn, &msg); err != nil {
			r.mu.Lock()
			r.err = err
			r.mu.Unlock()
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				r.logger.Debug("host connection ended", zap.Error(err))
			}
			return
		}
		r.mirror.Apply(msg)
		select {
		case r.updates <- msg:
		default:
			select {
			case <-r.updates:
			default:
			}
			r.updates <- msg
		}
	}
}

// Submit sends an intent. The host decides silently whether to accept it;
// acceptance shows up as the next snapshot.
func (r *RemoteSeat) Submit(ctx context.Context, in game.Intent) error {
	in.Player = JoinerPlayer
	return wsjson.Write(ctx, r.conn, ClientMessage{Type: TypeIntent, Intent: &in})
}

func (r *RemoteSeat) Updates() <-chan ServerMessage {
	return r.updates
}

// Mirror returns the local copy of the host state.
func (r *RemoteSeat) Mirror() *Mirror {
	return r.mirror
}

// Err returns the error that ended the read loop, if any.
func (r *RemoteSeat) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *RemoteSeat) Close() error {
	return r.conn.Close(websocket.StatusNormalClosure, "leaving")
}
