package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	respond "github.com/familylane/memory-lane/internal/api/respond"
	"github.com/familylane/memory-lane/internal/model"
	"github.com/familylane/memory-lane/internal/timeline"
)

// writeServiceError maps domain errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case model.IsValidationError(err), errors.Is(err, timeline.ErrInvalidGranularity):
		respond.WriteBadRequest(w, err.Error())
	case model.IsNotFound(err):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		respond.WriteConflict(w, err.Error())
	default:
		log.Error().Stack().Err(err).Msg("request failed")
		respond.WriteInternalError(w, "internal error")
	}
}
