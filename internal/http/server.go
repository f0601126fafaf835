package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jaekwang-park/doit-client/internal/middleware"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(port string, logger *slog.Logger, cfg RouterConfig) *Server {
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	router := NewRouter(cfg)

	// Apply middleware chain: request ID -> recovery -> logging -> router
	chain := middleware.RequestID()(
		middleware.Recovery(logger)(
			middleware.Logging(logger)(router),
		),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", port),
			Handler:           chain,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      writeTimeout(cfg.UpstreamTimeout),
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// writeTimeout leaves room for a proxied call to use its full upstream
// timeout before the server cuts the response.
func writeTimeout(upstream time.Duration) time.Duration {
	if upstream <= 0 {
		return 0
	}
	return upstream + 10*time.Second
}

// Handler returns the full middleware chain, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
