// Package health は死活監視と準備状態確認を HTTP で提供します。
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

const readinessTimeout = 2 * time.Second

// Pinger はサービスがリクエストに応答するために必要な依存先を確認します。
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter はヘルスチェック用のルートを返します。/healthz はプロセスの起動を、
// /readyz はさらにデータベースへの疎通を確認します。
func NewRouter(db Pinger, log logrus.FieldLogger) *chi.Mux {
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), readinessTimeout)
		defer cancel()

		if db == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": "database not configured"})
			return
		}
		if err := db.Ping(ctx); err != nil {
			log.WithError(err).Warn("readiness check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// Server はヘルスチェック用のルートを提供します。
type Server struct {
	httpServer *http.Server
	log        logrus.FieldLogger
}

// NewServer は addr で待ち受ける Server を生成します。
func NewServer(addr string, db Pinger, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(db, log),
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// Run は ctx がキャンセルされるまで処理し、その後シャットダウンします。
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("health server listening")
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve health: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown health: %w", err)
	}
	return nil
}
