package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/mesh-intelligence/corkboard/pkg/resource"
)

// errorBody is the single-message error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// validationBody carries the complete field error set of a failed
// validation.
type validationBody struct {
	Error   string            `json:"error"`
	Details resource.ErrorSet `json:"details"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorBody{Error: msg})
}

// writeValidationFailure renders a validation error as 400 with its full
// field error set; anything else is a 500, logged.
func (s *Server) writeValidationFailure(w http.ResponseWriter, err error) {
	if errs, ok := resource.AsValidationError(err); ok {
		s.writeJSON(w, http.StatusBadRequest, validationBody{
			Error:   "Validation failed",
			Details: errs,
		})
		return
	}
	s.logger.Error("unexpected validation failure", "error", err)
	s.writeError(w, http.StatusInternalServerError, "Internal error")
}
