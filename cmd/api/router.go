package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/shared/middleware"
	"bookshelf-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupDraftRoutes(v1, c)
		setupBookRoutes(v1, c)
	}

	return router
}

// ========================================
// DRAFT ROUTES
// ========================================
func setupDraftRoutes(v1 *gin.RouterGroup, c *container.Container) {
	drafts := v1.Group("/drafts")
	{
		drafts.POST("", c.LibraryHandler.SaveDraft)
		drafts.GET("/:code", c.LibraryHandler.LoadDraft)
		drafts.GET("/:code/state", c.LibraryHandler.State)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.POST("", c.LibraryHandler.Publish)
		books.GET("", c.LibraryHandler.List)
		books.GET("/:id", c.LibraryHandler.Get)
		books.DELETE("/:id", c.LibraryHandler.Unpublish)

		// Reader
		books.GET("/:id/pages", c.ReaderHandler.Page)
		books.GET("/:id/epub", c.ReaderHandler.ExportEPUB)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		storeStatus := "ok"
		if err := appCtx.HealthCheck(ctx); err != nil {
			storeStatus = "error: " + err.Error()
			health["status"] = "degraded"
		}

		health["services"] = gin.H{
			"store": gin.H{
				"driver": appCtx.Config.Store.Driver,
				"status": storeStatus,
			},
		}

		statusCode := http.StatusOK
		if storeStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
