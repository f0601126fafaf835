package api

import (
	"context"
	"net/http"
)

type contextKey string

const cookiesKey contextKey = "cookies"

// ContextWithCookies attaches cookies that credentialed operations forward
// in addition to the jar's. The web gateway uses it to probe the backend
// with the browser's own session cookie.
func ContextWithCookies(ctx context.Context, cookies []*http.Cookie) context.Context {
	return context.WithValue(ctx, cookiesKey, cookies)
}

func cookiesFromContext(ctx context.Context) []*http.Cookie {
	v, _ := ctx.Value(cookiesKey).([]*http.Cookie)
	return v
}
