package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaekwang-park/doit-client/internal/api"
	"github.com/jaekwang-park/doit-client/internal/app"
	"github.com/jaekwang-park/doit-client/internal/config"
	"github.com/jaekwang-park/doit-client/internal/gate"
	doithttp "github.com/jaekwang-park/doit-client/internal/http"
)

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.Web.Port,
		"api_url", cfg.APIURL,
		"web_root", cfg.Web.Root,
		"gate_policy", cfg.GatePolicy,
		"log_level", cfg.LogLevel,
	)

	upstream, err := url.Parse(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API URL: %w", err)
	}

	// The probe client never holds a jar: each page load forwards the
	// browser's own cookies through the request context.
	client, err := api.New(cfg.APIURL,
		api.WithLogger(logger),
		api.WithTimeout(cfg.ParseRequestTimeout()),
	)
	if err != nil {
		return err
	}

	navigation, g, err := app.NewNavigation(client, cfg.ParseGatePolicy(), logger)
	if err != nil {
		return err
	}
	if g.Policy() == gate.FailOpen {
		logger.Warn("session gate is fail-open: pages load when the backend cannot be asked")
	}

	srv := doithttp.NewServer(cfg.Web.Port, logger, doithttp.RouterConfig{
		Upstream:        upstream,
		UpstreamTimeout: cfg.ParseRequestTimeout(),
		WebRoot:         cfg.Web.Root,
		Navigation:      navigation,
		Logger:          logger,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	logger.Info("server starting", "port", cfg.Web.Port)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
