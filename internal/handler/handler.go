package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"catalog-api/internal/middleware"
	"catalog-api/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// MessageResponse is the body for write operations that report only success.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{
		Error:         message,
		CorrelationID: middleware.GetRequestID(r.Context()),
	})
}

// writeDomainError maps service errors onto the three HTTP error classes:
// validation and bad references to 400, missing rows to 404, everything
// else to a generic 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		logger.Warn().Err(err).Msg("request validation failed")
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:         "Validation failed",
			Details:       vErr.Fields,
			CorrelationID: middleware.GetRequestID(r.Context()),
		})
		return
	}

	var dErr *model.DomainError
	if errors.As(err, &dErr) {
		switch dErr.Code {
		case model.ErrCodeCategoryNotFound, model.ErrCodeProductNotFound, model.ErrCodeTagNotFound:
			writeError(w, r, http.StatusNotFound, dErr.Message, logger)
			return
		case model.ErrCodeInvalidReference:
			writeError(w, r, http.StatusBadRequest, dErr.Message, logger)
			return
		}
	}

	writeError(w, r, http.StatusInternalServerError, "Internal Server Error", logger)
}

// parseID extracts and parses the {id} route parameter.
func parseID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
