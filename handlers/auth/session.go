package auth

import (
	"net/http"

	"portal/middleware"

	"github.com/gin-gonic/gin"
)

// CheckAuth returns the authenticated user's profile
// @Summary Check authentication
// @Description Return the profile of the currently authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 401 {object} map[string]string
// @Router /auth/check [get]
// @Security Bearer
func CheckAuth(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		UserID:        user.ID,
		DiscordID:     user.DiscordID,
		Username:      user.Username,
		Avatar:        user.Avatar,
		Status:        user.Status,
		Admin:         user.Admin,
		LastConnected: user.LastConnected,
	})
}

// Logout clears the session cookie
// @Summary Logout
// @Description Clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": ErrLogoutSuccess})
}
