package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Error sends a standardized error response
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// Success sends a standardized success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}

// NotEligible sends a quiz eligibility rejection with a machine-readable
// reason and, for cooldowns, the remaining wait in milliseconds
func NotEligible(c *gin.Context, status int, reason string, remaining time.Duration) {
	body := gin.H{"allowed": false, "reason": reason}
	if remaining > 0 {
		body["remaining_cooldown_ms"] = remaining.Milliseconds()
	}
	c.JSON(status, body)
}
