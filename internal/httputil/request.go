package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"conversa/internal/config"
)

// ErrBodyTooLarge is returned by ParseJSON when the body exceeds the cap
var ErrBodyTooLarge = errors.New("request body too large")

// ParseJSON decodes JSON from the request body into dest.
// The body is capped at config.MaxRequestBodyBytes.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodyBytes)

	// Unknown fields are accepted; clients send extra UI state alongside the payload
	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit)
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
