package router

import (
	"cartAffinity/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetWebhookRoutes(api *echo.Group, handler *rest.OrderWebhookHandler) {
	webhooks := api.Group("/webhooks")
	webhooks.POST("/orders", handler.HandleOrderCreated)
}

func SetTrackingRoutes(api *echo.Group, handler *rest.TrackingHandler) {
	api.POST("/track", handler.Track)
	api.GET("/track/counts", handler.Counts)
}

func SetAffinityRoutes(api *echo.Group, handler *rest.AffinityHandler) {
	api.GET("/similar/:productId", handler.Similar)
	api.GET("/associations/:productId", handler.Associations)
}

func SetJobRoutes(api *echo.Group, handler *rest.JobsHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	jobs := api.Group("/admin/jobs", authRequired, adminOnly)
	jobs.POST("/similarity", handler.RecomputeSimilarity)
}
