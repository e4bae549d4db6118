package admin

import (
	"portal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all administrative routes
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		// User management
		admin.GET("/users", GetUsers)
		admin.GET("/users/:id/attempts", GetUserAttempts)
		admin.PUT("/users/:id/block", BlockUser)
		admin.DELETE("/users/:id", DeleteUser)
		admin.POST("/users/:id/override", OverrideQuizStatus)

		// Question bank management
		admin.GET("/questions", GetQuestions)
		admin.POST("/questions", CreateQuestion)
		admin.PUT("/questions/:id", UpdateQuestion)
		admin.DELETE("/questions/:id", DeleteQuestion)

		// Side channel maintenance and reporting
		admin.POST("/sync-roles", SyncRoles)
		admin.GET("/attempts/export", ExportAttemptsExcel)
		admin.GET("/attempts/live", LiveAttempts)
	}
}
