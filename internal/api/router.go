package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "go-sales-stats/docs"
	"go-sales-stats/internal/api/handler"
	"go-sales-stats/pkg/router"
)

func RegisterRoutes(r *router.Router, h *handler.Handler) {
	r.GET("/api/v1/operations", h.ListOperations)
	r.POST("/api/v1/reports", h.CreateReport)
	r.GET("/api/v1/products/stats", h.ProductStats)
	r.GET("/swagger/*", httpSwagger.WrapHandler)
}
