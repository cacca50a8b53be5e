package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Server is the operational HTTP listener: /metrics, /healthz, /readyz.
type Server struct {
	addr   string
	server *http.Server
}

func NewServer(addr string, reg *prometheus.Registry, health *HealthChecker) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", health.LivenessHandler)
	mux.HandleFunc("/readyz", health.ReadinessHandler)

	return &Server{
		addr: addr,
		server: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully. It blocks,
// so callers run it in its own goroutine.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutCtx); err != nil {
			slog.Error("Web server shutdown failed",
				slog.String("type", "error"),
				slog.Any("error", err))
		}
	}()

	slog.Info("Web server listening",
		slog.String("type", "sys"),
		slog.String("addr", s.addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
