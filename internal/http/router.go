// Package httpapi assembles the public router. It is a thin layer: handlers
// delegate to domain services so transport concerns stay isolated here.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"remedia/internal/gate/handler"
	"remedia/internal/platform/middleware"
	"remedia/pkg/platform/httputil"
)

// NewRouter wires all public endpoints plus health and metrics.
func NewRouter(h *handler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h.Register(r)
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
