package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eidreader/internal/platform/metrics"
	"eidreader/internal/platform/middleware"
	"eidreader/pkg/platform/httputil"
	"eidreader/pkg/platform/middleware/metadata"
	"eidreader/pkg/platform/middleware/requestid"
	"eidreader/pkg/platform/middleware/requesttime"
)

// Module mounts its endpoints on the shared router.
type Module interface {
	Register(r chi.Router)
}

// HealthChecker reports failing dependencies keyed by name.
type HealthChecker interface {
	Health(ctx context.Context) map[string]error
}

// RouterConfig carries what the shared middleware chain needs.
type RouterConfig struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Health   HealthChecker
}

type healthResponse struct {
	Status  string            `json:"status"`
	Failing map[string]string `json:"failing,omitempty"`
}

// NewRouter wires the middleware chain, operational endpoints and every module.
// Transport stays thin: modules delegate to their services.
func NewRouter(cfg RouterConfig, modules ...Module) http.Handler {
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.AccessLog(cfg.Logger, cfg.Metrics))
	r.Use(middleware.Recover(cfg.Logger))

	r.Get("/health", healthHandler(cfg.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// healthHandler answers 200 when every checked dependency is healthy and 503
// with the failing ones otherwise.
func healthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker == nil {
			httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
			return
		}
		failing := checker.Health(r.Context())
		if len(failing) == 0 {
			httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
			return
		}
		resp := healthResponse{Status: "degraded", Failing: make(map[string]string, len(failing))}
		for name, err := range failing {
			resp.Failing[name] = err.Error()
		}
		httputil.WriteJSON(w, http.StatusServiceUnavailable, resp)
	}
}
