package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"cardledger/internal/core"
	"cardledger/internal/log"
	"cardledger/internal/middleware/trace"
	"cardledger/internal/services"
)

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// writeJSON encodes v with the same settings as the report sink, so API
// answers and report files are byte-compatible.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		RequestID: trace.GetRequestID(r.Context()),
	})
}

// writeServiceError maps domain errors to status codes. Anything unknown is
// logged and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidDateFormat), errors.Is(err, core.ErrInvalidLimit):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnknownReport):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			log.FieldPath, r.URL.Path,
			log.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
