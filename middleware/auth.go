package middleware

import (
	"errors"
	"net/http"
	"strings"

	"portal/database"
	"portal/models"
	"portal/utils"
	"portal/utils/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "user"
)

const (
	ErrNoTokenProvided = "No token provided"
	ErrInvalidToken    = "Invalid or expired token"
	ErrUserNotFound    = "User not found"
	ErrAccountBlocked  = "Your account has been blocked"
	ErrAdminOnly       = "Administrator access required"
)

// tokenFromRequest reads the session token from the auth cookie or the
// Authorization header
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// AuthMiddleware validates the session token and loads the user into the
// request context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrNoTokenProvided})
			return
		}

		userID, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken})
			return
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUserNotFound})
			return
		}

		if user.Blocked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": ErrAccountBlocked})
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// AdminMiddleware requires an authenticated administrator. It must run after
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromRequest(c)
		if err != nil {
			return
		}
		if !user.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": ErrAdminOnly})
			return
		}
		c.Next()
	}
}

// GetUserFromRequest returns the authenticated user stored in the context.
// On failure the error response has already been written.
func GetUserFromRequest(c *gin.Context) (models.User, error) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		response.Error(c, http.StatusUnauthorized, ErrNoTokenProvided)
		c.Abort()
		return models.User{}, errors.New("no authenticated user in context")
	}

	user, ok := value.(models.User)
	if !ok {
		response.Error(c, http.StatusInternalServerError, ErrUserNotFound)
		c.Abort()
		return models.User{}, errors.New("unexpected user type in context")
	}
	return user, nil
}
