package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eidreader/pkg/requestcontext"
)

func serve(t *testing.T, inbound string) (ctxID string, w *httptest.ResponseRecorder) {
	t.Helper()
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctxID = requestcontext.RequestID(r.Context())
	})
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	if inbound != "" {
		r.Header.Set(Header, inbound)
	}
	w = httptest.NewRecorder()
	Middleware(next).ServeHTTP(w, r)
	return ctxID, w
}

func TestMiddleware(t *testing.T) {
	t.Run("generates a uuid when absent", func(t *testing.T) {
		id, w := serve(t, "")
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, w.Header().Get(Header))
	})

	t.Run("reuses inbound id", func(t *testing.T) {
		id, w := serve(t, "drop-42")
		assert.Equal(t, "drop-42", id)
		assert.Equal(t, "drop-42", w.Header().Get(Header))
	})

	t.Run("replaces oversized inbound id", func(t *testing.T) {
		id, _ := serve(t, strings.Repeat("a", maxInboundLength+1))
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})
}
