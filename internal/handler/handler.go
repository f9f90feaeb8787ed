package handler

import (
	"encoding/json"
	"net/http"

	"floralshop/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already sent, so an encoding failure cannot change the response.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Int("status", status).Msg(message)
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps an error returned by a service to a response.
// Domain errors keep their code and message; anything else becomes a generic 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	de, ok := model.AsDomainError(err)
	if !ok {
		logger.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Error:   model.ErrCodeInternalError,
			Message: "internal server error",
		})
		return
	}
	writeError(w, statusFor(de.Kind), de.Code, de.Message, logger)
}

func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation:
		return http.StatusBadRequest
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindAuth:
		return http.StatusUnauthorized
	case model.KindForbidden:
		return http.StatusForbidden
	case model.KindStock:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads the request body into v, writing a 400 when it is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}
