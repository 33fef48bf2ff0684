package kit_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ShopAPI/pkg/kit"
)

func TestRequestID_Generated(t *testing.T) {
	var seen string
	h := kit.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chimw.GetReqID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(kit.RequestIDHeader))
}

func TestRequestID_PropagatesIncoming(t *testing.T) {
	var seen string
	h := kit.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chimw.GetReqID(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(kit.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(kit.RequestIDHeader))
}

func TestRequestID_RejectsOversized(t *testing.T) {
	h := kit.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(kit.RequestIDHeader, strings.Repeat("a", 500))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	_, err := uuid.Parse(w.Header().Get(kit.RequestIDHeader))
	assert.NoError(t, err)
}

func TestWriteError_BodyHasOnlyError(t *testing.T) {
	h := kit.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", nil)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Product not found"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(kit.RequestIDHeader))
}

func TestMetricsAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{name: "no token configured", token: "", header: "Bearer x", want: http.StatusForbidden},
		{name: "missing header", token: "s3cret", want: http.StatusForbidden},
		{name: "wrong scheme", token: "s3cret", header: "Basic s3cret", want: http.StatusForbidden},
		{name: "wrong token", token: "s3cret", header: "Bearer nope", want: http.StatusForbidden},
		{name: "ok", token: "s3cret", header: "Bearer s3cret", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			kit.MetricsAuth(tt.token)(ok).ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRecoverer_WritesJSONError(t *testing.T) {
	h := kit.Recoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"server error"}`, w.Body.String())
}

func TestRecoverer_ReraisesAbort(t *testing.T) {
	h := kit.Recoverer(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
