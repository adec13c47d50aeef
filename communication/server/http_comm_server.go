package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tictactoe/communication"
	"tictactoe/game"
	"tictactoe/searcher"
	"tictactoe/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// AgentServer answers find-move requests with a fresh minimax search per
// request, so concurrent requests share nothing.
type AgentServer struct {
	defaultDepth int
	maxDepth     int
	router       chi.Router
	upgrader     websocket.Upgrader
}

func NewAgentServer(defaultDepth, maxDepth int) *AgentServer {
	if maxDepth < 1 {
		panic("agent server needs a max depth of at least 1")
	}
	s := &AgentServer{
		defaultDepth: utils.Clamp(defaultDepth, 1, maxDepth),
		maxDepth:     maxDepth,
		upgrader:     websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/findmove", s.handleFindMove)
	r.Get("/ws", s.handleStream)

	s.router = r
	return s
}

func (s *AgentServer) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *AgentServer) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("agent server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	select {
	case err, ok := <-serverErrCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info().Msgf("agent server shutting down: %v", ctx.Err())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return server.Close()
	}
	return nil
}

func (s *AgentServer) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var req communication.FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, communication.ErrorResponse{Error: "bad request: " + err.Error()})
		return
	}

	resp, status, err := s.findMove(req)
	if err != nil {
		writeJSON(w, status, communication.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, status, resp)
}

// handleStream answers every message on the socket with one find-move reply.
func (s *AgentServer) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("stream closed")
			}
			return
		}

		var reply any
		var req communication.FindMoveRequest
		if err := json.Unmarshal(message, &req); err != nil {
			reply = communication.ErrorResponse{Error: "bad request: " + err.Error()}
		} else if resp, _, err := s.findMove(req); err != nil {
			reply = communication.ErrorResponse{Error: err.Error()}
		} else {
			reply = resp
		}

		if err := conn.WriteJSON(reply); err != nil {
			log.Debug().Err(err).Msg("failed to write stream reply")
			return
		}
	}
}

func (s *AgentServer) findMove(req communication.FindMoveRequest) (communication.FindMoveResponse, int, error) {
	board, err := req.ParseBoard()
	if err != nil {
		return communication.FindMoveResponse{}, http.StatusBadRequest, err
	}

	depth := req.Depth
	if depth == 0 {
		depth = s.defaultDepth
	}
	depth = utils.Clamp(depth, 1, s.maxDepth)

	minimax := searcher.NewMinimax(board, depth,
		searcher.WithGame[game.Board, game.Move](game.Rules{}),
		searcher.WithMetrics[game.Board, game.Move](),
	)
	result, err := minimax.Search()
	if errors.Is(err, searcher.ErrNoLegalMoves) {
		return communication.FindMoveResponse{}, http.StatusUnprocessableEntity, err
	}
	if err != nil {
		return communication.FindMoveResponse{}, http.StatusInternalServerError, err
	}

	log.Debug().Msgf("found %v for %s at depth %d in %s", result.Move, board.Turn(), depth, result.Metric.Duration)
	return communication.NewFindMoveResponse(result), http.StatusOK, nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("handled request")
		}()
		next.ServeHTTP(ww, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
