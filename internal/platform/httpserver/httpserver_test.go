package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"eidreader/internal/platform/config"
)

func TestNew(t *testing.T) {
	handler := http.NotFoundHandler()

	t.Run("timeouts come from config", func(t *testing.T) {
		srv := New(config.Server{
			Addr:         ":9999",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 45 * time.Second,
			IdleTimeout:  2 * time.Minute,
		}, handler)

		assert.Equal(t, ":9999", srv.Addr)
		assert.Equal(t, 30*time.Second, srv.ReadTimeout)
		assert.Equal(t, 45*time.Second, srv.WriteTimeout)
		assert.Equal(t, 2*time.Minute, srv.IdleTimeout)
		assert.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)
	})

	t.Run("header timeout never exceeds a short read timeout", func(t *testing.T) {
		srv := New(config.Server{ReadTimeout: 2 * time.Second}, handler)

		assert.Equal(t, 2*time.Second, srv.ReadHeaderTimeout)
	})

	t.Run("unset read timeout keeps the header bound", func(t *testing.T) {
		srv := New(config.Server{}, handler)

		assert.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)
		assert.Zero(t, srv.ReadTimeout)
	})
}
