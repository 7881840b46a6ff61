package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	novanet "github.com/peterkuimelis/novacana/internal/net"
)

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Subtype    string `json:"subtype,omitempty"`
	Class      int    `json:"class,omitempty"`
	Text       string `json:"text"`
	Copies     int    `json:"copies"`
	Effect     string `json:"effect"`
	ChainBound bool   `json:"chainBound"`
}

// Server is the host's HTTP surface: catalog and state endpoints plus the
// websocket the joiner plays through.
type Server struct {
	session  *novanet.Session
	hostName string
	logger   *zap.Logger
	mux      *http.ServeMux
}

// NewServer creates a server over a session. hostName names player 1 when a
// joiner starts a network game.
func NewServer(session *novanet.Session, hostName string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		session:  session,
		hostName: hostName,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/state", s.handleState)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	defs := s.session.Engine().Catalog().Cards()
	cards := make([]CardInfo, 0, len(defs))
	for _, d := range defs {
		cards = append(cards, CardInfo{
			Name:       d.Name,
			Category:   d.Category.String(),
			Subtype:    d.Subtype,
			Class:      d.Class,
			Text:       d.Text,
			Copies:     d.Copies,
			Effect:     d.Effect.String(),
			ChainBound: d.Category.ChainBound(),
		})
	}
	writeJSON(w, cards)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, novanet.StateUpdate(s.session.GameID(), s.session.Snapshot()))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode response", http.StatusInternalServerError)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var join novanet.ClientMessage
	if err := wsjson.Read(ctx, conn, &join); err != nil || join.Type != novanet.TypeJoin {
		conn.Close(websocket.StatusPolicyViolation, "expected join message")
		return
	}
	log := s.logger.With(zap.String("peer", r.RemoteAddr), zap.String("name", join.Name))

	if s.session.Mode() == novanet.ModeIdle || s.session.Snapshot().Over() {
		if _, err := s.session.StartNetwork(s.hostName, join.Name); err != nil {
			wsjson.Write(ctx, conn, novanet.ServerMessage{Type: novanet.TypeError, Error: err.Error()})
			conn.Close(websocket.StatusPolicyViolation, "game unavailable")
			return
		}
		log.Info("opponent joined")
	} else {
		log.Info("peer reconnected to running game")
	}

	updates, unsubscribe := s.session.Subscribe()
	defer unsubscribe()

	// Session snapshots → websocket
	go func() {
		defer cancel()
		for msg := range updates {
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				log.Debug("websocket write", zap.Error(err))
				return
			}
		}
	}()

	// Websocket intents → session, always as the joiner
	for {
		var msg novanet.ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				log.Debug("websocket read", zap.Error(err))
			}
			return
		}
		if msg.Type != novanet.TypeIntent || msg.Intent == nil {
			continue
		}
		in := *msg.Intent
		in.Player = novanet.JoinerPlayer
		if _, ok := s.session.Submit(ctx, in); !ok {
			log.Debug("joiner intent rejected", zap.String("kind", string(in.Kind)))
		}
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
