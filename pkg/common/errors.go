package common

import (
	"errors"
	"net/http"
	"strings"
)

// Error taxonomy shared by every handler. Repos return these (wrapped),
// handlers map them onto status codes with WriteErr.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
)

type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Issues, "; ")
}

func NewValidationError(issues ...string) *ValidationError {
	return &ValidationError{Issues: issues}
}

type validationMsg struct {
	Message string   `json:"message"`
	Issues  []string `json:"issues"`
}

// Maps an error onto the response. The fallback message is what the
// client sees on a 500; the underlying cause is never leaked.
func WriteErr(w http.ResponseWriter, err error, fallback string) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		w.WriteHeader(http.StatusBadRequest)
		WriteRespJSON(w, validationMsg{Message: "validation failed", Issues: ve.Issues})
	case errors.Is(err, ErrNotFound):
		WriteMsg(w, fallback, http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		WriteMsg(w, fallback, http.StatusForbidden)
	case errors.Is(err, ErrConflict):
		WriteMsg(w, fallback, http.StatusConflict)
	default:
		WriteMsg(w, fallback, http.StatusInternalServerError)
	}
}
