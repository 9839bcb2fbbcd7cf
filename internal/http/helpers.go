package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"tally/internal/core"
)

type errorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain error kinds to HTTP status codes. The error text
// is already user-presentable; the UI relays it as-is.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrValidation), errors.Is(err, core.ErrUnknownCategory):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrDuplicate), errors.Is(err, core.ErrInUse):
		status = http.StatusConflict
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
