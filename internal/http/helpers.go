package http

import (
	"errors"
	"net/http"
	"strings"

	"fintrack/internal/core"
)

var errMalformedRequest = errors.New("malformed request")

// sanitizeInput removes control characters (other than tab, newline and
// carriage return) and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

// statusForError is the single mapping from domain errors to HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, core.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errMalformedRequest),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidCategory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	NotFoundError("not found").Write(w)
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	MethodNotAllowedError("").Write(w)
}
