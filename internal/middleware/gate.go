package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path"

	"github.com/jaekwang-park/doit-client/internal/api"
	"github.com/jaekwang-park/doit-client/internal/http/handler"
	"github.com/jaekwang-park/doit-client/internal/nav"
)

// NavigationGate runs page loads through the router's guards with the
// browser's own cookies. A navigation that ends somewhere else is answered
// with 303 See Other. Every extension-less path counts as a page load, known
// route or not; asset paths pass through.
func NavigationGate(router *nav.Router, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			if path.Ext(r.URL.Path) != "" {
				next.ServeHTTP(w, r)
				return
			}

			requested := nav.CleanPath(r.URL.Path)
			ctx := api.ContextWithCookies(r.Context(), r.Cookies())
			loc, err := router.Resolve(ctx, r.URL.Path)
			switch {
			case errors.Is(err, context.Canceled):
				return
			case errors.Is(err, nav.ErrNoRoute) && loc.Path == requested:
				// Unknown page the guards let through; the web client
				// renders its own not-found view.
				next.ServeHTTP(w, r)
				return
			case err != nil:
				logger.Error("navigation failed",
					"request_id", GetRequestID(r),
					"path", r.URL.Path,
					"error", err,
				)
				handler.WriteError(w, http.StatusInternalServerError, "NAVIGATION_FAILED", "navigation could not be resolved")
				return
			}

			if loc.Path != requested {
				w.Header().Set("Cache-Control", "no-store")
				http.Redirect(w, r, loc.Path, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
