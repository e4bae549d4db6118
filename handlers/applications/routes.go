package applications

import (
	"portal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to staff and gang applications
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	applications := r.Group("/applications")
	applications.Use(middleware.AuthMiddleware())
	{
		applications.POST("/", SubmitApplication)
		applications.GET("/me", GetMyApplications)

		// Review surface, admins only
		applications.GET("/all", middleware.AdminMiddleware(), ListApplications)
		applications.POST("/:id/review", middleware.AdminMiddleware(), ReviewApplication)
	}
}
