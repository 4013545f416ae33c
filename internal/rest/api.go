package rest

import (
	"github.com/dfryer1193/qrstore/internal/middleware"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with the middleware stack and every route
func NewRouter(images *ImageHandler, static *StaticHandler) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))
	router.Use(middleware.NoCache())

	NewApi(router, images, static)
	return router
}

func NewApi(router *gin.Engine, images *ImageHandler, static *StaticHandler) {
	router.POST("/upload", images.Upload)
	router.GET("/qr-images", images.List)
	router.DELETE("/delete-image/:filename", images.Delete)

	router.GET("/", static.Index)
	router.HEAD("/", static.Index)
	// Everything else is resolved against the content root
	router.NoRoute(static.Serve)
}
