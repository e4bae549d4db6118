package v1

import (
	"portal/handlers/admin"
	"portal/handlers/applications"
	"portal/handlers/auth"
	"portal/handlers/quiz"
	"portal/middleware"

	"github.com/gin-gonic/gin"
)

// Register the endpoints for the v1 API
func Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(600, 100) // 600 requests per minute per IP, burst 100
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)
	RegisterSupportRoutes(v1)
	auth.RegisterRoutes(v1)
	quiz.RegisterRoutes(v1)
	applications.RegisterRoutes(v1)
	admin.RegisterRoutes(v1)

	// Register metrics endpoint
	RegisterMetricsRoutes(v1)
}
