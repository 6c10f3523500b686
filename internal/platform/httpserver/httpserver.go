package httpserver

import (
	"net/http"
	"time"

	"eidreader/internal/platform/config"
)

// headerTimeout bounds how long a client may take to send request headers.
// Body reads are covered by cfg.ReadTimeout.
const headerTimeout = 5 * time.Second

// New builds the drop-target server from cfg. Timeouts that are unset fall back
// to the http.Server zero values.
func New(cfg config.Server, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: min(headerTimeout, positiveOr(cfg.ReadTimeout, headerTimeout)),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

func positiveOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
