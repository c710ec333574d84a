package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/peterkuimelis/sengoku/internal/config"
	"github.com/peterkuimelis/sengoku/internal/log"
)

//go:embed static
var staticFiles embed.FS

// Server is the sengoku web UI server. Each websocket connection plays
// its own single-player battle.
type Server struct {
	cfg    *config.Config
	data   *config.Data
	logger *zap.Logger
	mux    *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(cfg *config.Config, data *config.Data, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		data:   data,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cardInfos(s.data.Cards))
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(deckInfos(s.data.Decks, s.data.Cards))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	ctrl := NewSocketController(wsConn)

	// First message picks the decks
	_, startData, err := wsConn.Read(ctx)
	if err != nil {
		s.logger.Debug("websocket closed before start", zap.Error(err))
		return
	}
	var start ClientMessage
	if err := json.Unmarshal(startData, &start); err != nil || start.Type != "start" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected start message")
		return
	}

	if err := s.playBattle(ctx, ctrl, start); err != nil {
		if errors.Is(err, ErrClientQuit) {
			wsConn.Close(websocket.StatusNormalClosure, "player left")
			return
		}
		s.logger.Info("battle aborted", zap.Error(err))
		_ = ctrl.SendError(ctx, err.Error())
		wsConn.Close(websocket.StatusInternalError, "battle aborted")
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "battle ended")
}

// playBattle runs one battle configured by start and reports its end.
func (s *Server) playBattle(ctx context.Context, ctrl *SocketController, start ClientMessage) error {
	cfg := *s.cfg
	if start.PlayerDeck != "" {
		cfg.Player.Deck = start.PlayerDeck
	}
	if start.EnemyDeck != "" {
		cfg.Enemy.Deck = start.EnemyDeck
	}
	if start.Policy != "" {
		cfg.Enemy.Policy = start.Policy
	}
	if start.Seed != 0 {
		cfg.Battle.Seed = start.Seed
	}

	b, err := cfg.NewBattle(s.data, log.NewZapLogger(s.logger), s.logger)
	if err != nil {
		return err
	}
	result, err := b.Run(ctx, ctrl)
	if err != nil {
		return err
	}
	s.logger.Info("battle finished",
		zap.String("battle_id", b.ID),
		zap.Stringer("result", result),
		zap.Int("turn", b.Turn),
	)
	return ctrl.SendBattleOver(ctx, b.Snapshot())
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
