package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"disasterAlert/pkg/e"
	"disasterAlert/pkg/validator"
)

const maxBodyBytes = 1 << 20

// BindJSON decodes exactly one JSON object from the request body into target and
// validates it. Unknown fields and trailing data are rejected. Every failure wraps
// e.ErrInvalidInput.
func BindJSON(w http.ResponseWriter, r *http.Request, target any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("invalid JSON: %v: %w", err, e.ErrInvalidInput)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid JSON: trailing data: %w", e.ErrInvalidInput)
	}

	if err := validator.ValidateStruct(target); err != nil {
		return fmt.Errorf("%v: %w", err, e.ErrInvalidInput)
	}
	return nil
}
