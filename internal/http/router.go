package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"

	"github.com/jaekwang-park/doit-client/internal/http/handler"
	"github.com/jaekwang-park/doit-client/internal/middleware"
	"github.com/jaekwang-park/doit-client/internal/nav"
)

// APIPrefix is where the web client reaches the backend through the gateway.
const APIPrefix = "/api"

type RouterConfig struct {
	// Upstream is the backend base URL, e.g. http://localhost:8080/api.
	Upstream *url.URL
	// UpstreamTimeout bounds the wait for backend response headers; zero
	// disables it.
	UpstreamTimeout time.Duration
	// WebRoot is the directory holding the built web client.
	WebRoot string
	// Navigation holds the page routes and the guards every page load runs.
	Navigation *nav.Router
	Logger     *slog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Health check stays outside the gate and the proxy.
	r.Handle("/health", handler.NewHealthHandler(cfg.Upstream.String()))

	proxy := handler.NewAPIProxy(cfg.Upstream, cfg.UpstreamTimeout, cfg.Logger)
	r.PathPrefix(APIPrefix + "/").Handler(http.StripPrefix(APIPrefix, proxy))

	// Every page load, registered route or SPA fallback, runs through the
	// gate; assets are let through by the gate itself.
	static := handler.NewStaticHandler(cfg.WebRoot)
	r.PathPrefix("/").Handler(middleware.NavigationGate(cfg.Navigation, cfg.Logger)(static))

	return r
}
