package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/saeidalz13/battleship-solo/internal/scoreboard"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

const (
	scoreboardSaveTimeout time.Duration = time.Second * 10
	shutdownTimeout       time.Duration = time.Second * 10
)

var defaultPort string = "8000"

type Server struct {
	port           string
	stage          string
	sessionManager *mc.BattleshipSessionManager
	gameManager    *mb.BattleshipGameManager
	scoreboard     *scoreboard.Scoreboard
	httpServer     *http.Server
}

type Option func(*Server) error

func NewServer(
	sessionManager *mc.BattleshipSessionManager,
	gameManager *mb.BattleshipGameManager,
	sb *scoreboard.Scoreboard,
	optFuncs ...Option,
) (*Server, error) {
	server := Server{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		scoreboard:     sb,
		stage:          StageDev,
	}

	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			return nil, err
		}
	}
	if server.port == "" {
		server.port = defaultPort
	}

	server.httpServer = &http.Server{
		Addr:              "0.0.0.0:" + server.port,
		Handler:           server.Routes(http.NewServeMux()),
		ReadHeaderTimeout: time.Second * 5,
	}
	return &server, nil
}

func WithPort(port string) Option {
	return func(s *Server) error {
		if port == "" {
			return errors.New("port must not be empty")
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

func (s *Server) Port() string {
	return s.port
}

func (s *Server) Routes(mux *http.ServeMux) *http.ServeMux {
	mux.Handle("GET /battleship", NewRequestProcessor(s.sessionManager, s.gameManager, s.scoreboard))
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /stats", s.handleStats)
	return mux
}

type respHealth struct {
	Status      string `json:"status"`
	Stage       string `json:"stage"`
	ActiveGames int    `json:"active_games"`
	OpenConns   int    `json:"open_connections"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, respHealth{
		Status:      "ok",
		Stage:       s.stage,
		ActiveGames: s.gameManager.Len(),
		OpenConns:   s.sessionManager.Len(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.scoreboard.Read())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write http response", "err", err)
	}
}

// Run serves until ctx is done, then closes every websocket and drains the
// http server.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "port", s.port, "stage", s.stage)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err

	case <-ctx.Done():
		log.Info("shutting down")
		s.sessionManager.CloseAll()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func logScoreboardErr(gameUuid string, err error) {
	log.Error("failed to persist scoreboard", "game", gameUuid, "err", err)
}
