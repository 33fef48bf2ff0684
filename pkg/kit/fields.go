package kit

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"unicode"
)

// ValidationError reports a single rejected request field. Its message is
// sent to the client verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// Fields holds the raw members of a decoded JSON object.
type Fields map[string]json.RawMessage

func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// value decodes one member. Numbers come back as json.Number so integer
// checks are exact.
func (f Fields) value(key string) (any, bool) {
	raw, ok := f[key]
	if !ok {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

// Text returns the member trimmed of surrounding white space and byte order
// marks. It fails unless the member is a JSON string with something left.
func (f Fields) Text(key, msg string) (string, error) {
	v, _ := f.value(key)
	s, ok := v.(string)
	if !ok {
		return "", Invalid(key, msg)
	}
	s = strings.TrimFunc(s, isTrimmable)
	if s == "" {
		return "", Invalid(key, msg)
	}
	return s, nil
}

// Number fails unless the member is a finite JSON number.
func (f Fields) Number(key, msg string) (float64, error) {
	v, _ := f.value(key)
	n, ok := v.(json.Number)
	if !ok {
		return 0, Invalid(key, msg)
	}
	x, err := n.Float64()
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, Invalid(key, msg)
	}
	return x, nil
}

// Integer accepts any JSON number with an integral value that fits in an
// int64, so 5 and 5.0 both pass.
func (f Fields) Integer(key, msg string) (int64, error) {
	v, _ := f.value(key)
	n, ok := v.(json.Number)
	if !ok {
		return 0, Invalid(key, msg)
	}
	if i, err := n.Int64(); err == nil {
		return i, nil
	}

	x, err := n.Float64()
	if err != nil || x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
		return 0, Invalid(key, msg)
	}
	return int64(x), nil
}

// isTrimmable matches Unicode white space and the byte order mark, which
// strings.TrimSpace leaves in place.
func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
