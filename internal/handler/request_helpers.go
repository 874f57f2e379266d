package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tacticbot/tacticbot/internal/domain"
	"github.com/tacticbot/tacticbot/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// It logs the operation and returns a standardized error response to the client.
//
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req SellUnitRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Sell unit"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	// Decode JSON body
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return err
	}

	// Log the decoded request at debug level
	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	// Validate the request struct
	if err := GetValidator().ValidateStruct(req); err != nil {
		validationErrs := FormatValidationError(err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: validationErrs,
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetQueryParam retrieves and validates a required query parameter from the request.
// If the parameter is missing or empty, it writes an error response and returns false.
//
// If ok is false, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	playerID, ok := GetQueryParam(r, w, "player_id")
//	if !ok {
//	    return
//	}
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	log := logger.FromContext(r.Context())
	value := r.URL.Query().Get(paramName)
	if value == "" {
		log.Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		http.Error(w, fmt.Sprintf(ErrMsgMissingQueryParam, paramName), http.StatusBadRequest)
		return "", false
	}
	return value, true
}

// GetOptionalQueryParam retrieves an optional query parameter from the request.
// Unlike GetQueryParam, this does not write an error response if the parameter is missing.
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// parseLimit parses a limit query parameter, bounding it to a sane range.
func parseLimit(raw string) (int, error) {
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if limit < 1 || limit > 100 {
		return 0, fmt.Errorf("limit out of range: %d", limit)
	}
	return limit, nil
}

// parseRow converts a request row name into a domain row.
func parseRow(name string) (domain.Row, bool) {
	switch strings.ToLower(name) {
	case "front":
		return domain.RowFront, true
	case "back":
		return domain.RowBack, true
	}
	return domain.RowUnassigned, false
}

// rowName converts a domain row back into its request name.
func rowName(row domain.Row) string {
	switch row {
	case domain.RowFront:
		return "front"
	case domain.RowBack:
		return "back"
	}
	return "unassigned"
}
