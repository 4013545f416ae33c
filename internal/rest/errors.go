package rest

import (
	"errors"
	"net/http"

	"github.com/dfryer1193/qrstore/api"
	"github.com/dfryer1193/qrstore/gallery/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// errorStatus maps domain errors to a status code and client-facing message
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNoFile):
		return http.StatusBadRequest, "No file provided"
	case errors.Is(err, domain.ErrEmptyFilename):
		return http.StatusBadRequest, "No file selected"
	case errors.Is(err, domain.ErrInvalidFileType):
		return http.StatusBadRequest, "Invalid file type"
	case errors.Is(err, domain.ErrInvalidFilename):
		return http.StatusBadRequest, "Invalid filename"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "File too large"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "File not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func writeError(c *gin.Context, err error) {
	status, msg := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	}
	_ = c.Error(err)
	c.JSON(status, api.ErrorResponse{Error: msg})
}
