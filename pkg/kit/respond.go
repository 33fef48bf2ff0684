package kit

import (
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// WriteError writes {"error": msg}. The request id is carried in the
// X-Request-Id header rather than in the body.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string, details any) {
	if w.Header().Get(RequestIDHeader) == "" {
		if reqID := chimw.GetReqID(r.Context()); reqID != "" {
			w.Header().Set(RequestIDHeader, reqID)
		}
	}
	WriteJSON(w, status, ErrorResponse{
		Error:   msg,
		Details: details,
	})
}
