package kit

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

var (
	ErrBadJSON      = errors.New("invalid json body")
	ErrBodyTooLarge = errors.New("request body too large")
)

// DecodeFields reads a JSON object body without binding it to a struct, so
// handlers can tell an absent field from one that is present but null or of
// the wrong type. An empty body decodes to an empty set of fields.
func DecodeFields(w http.ResponseWriter, r *http.Request) (Fields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)

	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Fields{}, nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ErrBodyTooLarge
		}
		return nil, ErrBadJSON
	}
	if raw == nil {
		// top-level null
		return nil, ErrBadJSON
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, ErrBadJSON
	}

	return Fields(raw), nil
}

// WriteDecodeError maps a DecodeFields error to its response.
func WriteDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		WriteError(w, r, http.StatusRequestEntityTooLarge, "Request body too large", nil)
		return
	}
	WriteError(w, r, http.StatusBadRequest, "Invalid JSON body", nil)
}
