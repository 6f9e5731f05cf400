package metrics

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the HTTP surface: /metrics (prometheus) and /status
// (JSON snapshot of the run).
func (m *Metrics) Handler() http.Handler {
	r := chi.NewRouter()

	r.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
		state, processed := m.snapshot()

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(map[string]any{
			"session_state": state.String(),
			"processed":     processed,
		})
		if err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	})

	return r
}

// Serve runs the metrics server until ctx is cancelled. Errors stop only
// the server, never the batch.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) {
	srv := &http.Server{Addr: addr, Handler: m.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Warn("metrics server stopped", "err", err)
	}
}
