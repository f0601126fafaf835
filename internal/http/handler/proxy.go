package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"
)

// NewAPIProxy forwards requests to the backend rooted at target. The caller
// strips the gateway's own prefix first, so /api/notes arrives as /notes
// and leaves as <target>/notes. Cookies and bodies pass through untouched.
func NewAPIProxy(target *url.URL, timeout time.Duration, logger *slog.Logger) http.Handler {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = timeout

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		Transport: transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			if errors.Is(err, context.Canceled) {
				return
			}
			logger.Error("upstream request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"upstream", target.Host,
				"error", err,
			)
			if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
				WriteError(w, http.StatusGatewayTimeout, CodeGatewayTimeout, "backend did not answer in time")
				return
			}
			WriteError(w, http.StatusBadGateway, CodeBadGateway, "backend unavailable")
		},
	}
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
