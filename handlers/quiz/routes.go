package quiz

import (
	"portal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to the allowlist quiz
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	submitRateLimiter := middleware.NewRateLimiter(5, 3) // 5 submissions per minute per user, burst 3

	quiz := r.Group("/quiz")
	quiz.Use(middleware.AuthMiddleware())
	{
		quiz.GET("/questions", GetQuestions)
		quiz.GET("/eligibility", GetEligibility)
		quiz.GET("/attempts", GetMyAttempts)
		quiz.POST("/submit", middleware.UserRateLimiterMiddleware(submitRateLimiter), SubmitQuiz)
	}
}
