package middleware

import (
	"net/http"

	"github.com/dfryer1193/qrstore/api"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func HandlePanics() gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		log.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString(RequestIDKey)).
			Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
	}
}
