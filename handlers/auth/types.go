package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrStateMismatch       = "OAuth state mismatch"
	ErrCodeExchangeFailed  = "Failed to exchange authorization code"
	ErrProfileFetchFailed  = "Failed to fetch Discord profile"
	ErrUserUpsertFailed    = "Failed to create or update user"
	ErrTokenGenerateFailed = "Failed to generate token"
	ErrAccountBlocked      = "Your account has been blocked"
	ErrLogoutSuccess       = "Successfully logged out"
)

// discordProfile is the subset of the Discord /users/@me payload we keep
type discordProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// AuthResponse model for authentication check responses
type AuthResponse struct {
	UserID        string     `json:"user_id"`
	DiscordID     string     `json:"discord_id"`
	Username      string     `json:"username"`
	Avatar        string     `json:"avatar"`
	Status        string     `json:"status"`
	Admin         bool       `json:"admin"`
	LastConnected *time.Time `json:"last_connected"`
}

// setCookieToken sets the authentication token as a secure HTTP-only cookie
func setCookieToken(c *gin.Context, token string) {
	maxAge := 30 * 24 * time.Hour

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		"auth_token",          // name
		token,                 // value
		int(maxAge.Seconds()), // max age in seconds
		"/",                   // path
		"",                    // domain
		true,                  // secure (HTTPS only)
		true,                  // httpOnly (not accessible via JavaScript)
	)
}
