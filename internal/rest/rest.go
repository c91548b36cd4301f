package rest

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

const (
	CodeInvalidDateRange = "INVALID_DATE_RANGE"
	CodeValidation       = "VALIDATION_ERROR"
	CodeProjectNotFound  = "PROJECT_NOT_FOUND"
	CodeInternal         = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Code    string `json:"code,omitempty"`
}

// WriteJSON encodes body with the given status. Headers must not have been written yet.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, status int, response ErrorResponse) {
	WriteJSON(w, status, response)
}
