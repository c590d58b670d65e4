// Package server serves the quiz page and hands every websocket connection
// its own quiz.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/jbpratt/wardrobe/internal/player"
	"github.com/jbpratt/wardrobe/internal/wardrobe"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:embed static/index.html
var indexHTML []byte

type Config struct {
	// QuizSize is the number of questions per session.
	QuizSize int
	// ImagesDir is served under /images/ when set.
	ImagesDir      string
	AllowedOrigins []string
}

type Server struct {
	logger  *zap.SugaredLogger
	catalog *wardrobe.Catalog
	cfg     Config
}

func New(logger *zap.SugaredLogger, catalog *wardrobe.Catalog, cfg Config) *Server {
	if cfg.QuizSize < 1 {
		cfg.QuizSize = 10
	}
	return &Server{logger: logger, catalog: catalog, cfg: cfg}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.requestLogger, middleware.Recoverer)

	if len(s.cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/ws", s.handleWS)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/", s.handleIndex)
		r.Get("/healthz", s.handleHealth)

		if s.cfg.ImagesDir != "" {
			r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(s.cfg.ImagesDir))))
		}
	})

	return r
}

// ListenAndServe runs until ctx is canceled and then shuts the server down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s.logger.Infow("listening", "addr", addr, "items", len(s.catalog.Items))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		s.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"items":    len(s.catalog.Items),
		"kinds":    len(s.catalog.Kinds),
		"colors":   len(s.catalog.Colors),
		"quizSize": s.cfg.QuizSize,
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originHosts(s.cfg.AllowedOrigins),
	})
	if err != nil {
		s.logger.Infow("failed to accept websocket", "err", err)
		return
	}

	logger := s.logger.With("player", uuid.NewString())

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	quiz, err := wardrobe.NewQuiz(logger, rng, s.catalog, s.cfg.QuizSize)
	if err != nil && !errors.Is(err, wardrobe.ErrEmptyPool) {
		logger.Errorw("failed to create quiz", "err", err)
		_ = conn.Close(websocket.StatusInternalError, "failed to create quiz")
		return
	}

	if err = player.New(logger, conn, quiz).Run(r.Context()); err != nil {
		logger.Infow("player stopped", "err", err)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Debugw("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// originHosts turns allowed origins into the host patterns the websocket
// origin check expects.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, origin := range origins {
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			hosts = append(hosts, origin)
			continue
		}
		hosts = append(hosts, u.Host)
	}
	return hosts
}
