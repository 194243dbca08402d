// EchoRoom - Real-Time Chat Backend
// Copyright 2026 EchoRoom Contributors
// SPDX-License-Identifier: MIT
// https://github.com/amuhanad881-gif/echoroom1

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/amuhanad881-gif/echoroom1/internal/logging"
	"github.com/amuhanad881-gif/echoroom1/internal/models"
	"github.com/amuhanad881-gif/echoroom1/internal/validation"
)

// Error codes returned in the response envelope.
const (
	codeBadRequest   = "bad_request"
	codeValidation   = "validation_failed"
	codeUnauthorized = "unauthorized"
	codeNotFound     = "not_found"
	codeDuplicate    = "duplicate"
	codeInternal     = "internal_error"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondErrorDetails(w, status, code, message, nil)
}

func respondErrorDetails(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("failed to encode error response")
	}
}

// decodeBody unmarshals and validates a request body. A false return
// means the error response has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, codeBadRequest, "invalid JSON body")
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		respondErrorDetails(w, http.StatusBadRequest, codeValidation, "validation failed", verr.Details())
		return false
	}
	return true
}
