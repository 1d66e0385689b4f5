package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/jrsteele09/station-portal/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// errorResponse is the body written for every failed request, page routes included
type errorResponse struct {
	Message string `json:"message"`
}

// AppHandler is a handler that reports failure by returning an error
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// handle adapts an AppHandler, converting its error into a JSON error response
func (s *Server) handle(h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			writeError(w, r, err)
		}
	}
}

// writeError writes {"message": ...} with the status carried by err, or 500
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Request failed")
	} else {
		log.Debug().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("Request rejected")
	}
	writeJSON(w, status, errorResponse{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
