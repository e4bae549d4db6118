package admin

import (
	"net/http"

	"portal/config"
	"portal/database"
	"portal/models"
	"portal/services"
	"portal/utils/response"

	"github.com/gin-gonic/gin"
)

// OverrideQuizStatus force-passes or force-fails a user, bypassing
// eligibility and scoring
// @Summary Override a user's quiz status
// @Description Force-pass or force-fail a user; records a synthetic attempt and triggers the role side channel
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body OverrideRequest true "Direction"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,403,404,500 {object} map[string]string
// @Router /admin/users/{id}/override [post]
// @Security Bearer
func OverrideQuizStatus(c *gin.Context) {
	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}
	if req.Direction != "pass" && req.Direction != "fail" {
		response.Error(c, http.StatusBadRequest, ErrInvalidDirection)
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	pass := req.Direction == "pass"
	attempt, err := services.ForceOutcome(&user, pass, config.DefaultQuizConfig.BankSize)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedOverride)
		return
	}

	// Side channel, best effort either way
	discord := services.NewDiscordService()
	var roleChanged bool
	var roleReason string
	if pass {
		roleChanged, roleReason = discord.GrantAllowlistRole(user.DiscordID)
	} else {
		roleChanged, roleReason = discord.RevokeAllowlistRole(user.DiscordID)
	}

	c.JSON(http.StatusOK, gin.H{
		"attempt":      attempt,
		"status":       user.Status,
		"role_changed": roleChanged,
		"role_reason":  roleReason,
	})
}

// SyncRoles re-grants the allowlist role to every passed user
// @Summary Sync allowlist roles
// @Description Idempotent bulk re-grant of the allowlist role for all passed users
// @Tags Admin
// @Produce json
// @Success 200 {object} services.SyncResult
// @Failure 401,403,500 {object} map[string]string
// @Router /admin/sync-roles [post]
// @Security Bearer
func SyncRoles(c *gin.Context) {
	result, err := services.NewDiscordService().SyncPassedUsers()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedSync)
		return
	}

	c.JSON(http.StatusOK, result)
}
