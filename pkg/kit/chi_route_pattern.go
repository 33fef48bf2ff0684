package kit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ChiRoutePatternOrPath labels metrics by route pattern so /products/1 and
// /products/2 share a series. Unmatched requests fall back to a fixed label.
func ChiRoutePatternOrPath(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	if rp := rctx.RoutePattern(); rp != "" {
		return rp
	}
	return "unmatched"
}
