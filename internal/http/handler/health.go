package handler

import "net/http"

// HealthHandler reports that the gateway is up. It does not probe the
// backend, so a load balancer never drains the gateway for a backend outage.
type HealthHandler struct {
	upstream string
}

func NewHealthHandler(upstream string) *HealthHandler {
	return &HealthHandler{upstream: upstream}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w, http.MethodGet)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"upstream": h.upstream,
	})
}
