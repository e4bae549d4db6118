package admin

import (
	"net/http"

	"portal/database"
	"portal/models"
	"portal/services"
	"portal/utils/response"

	"github.com/gin-gonic/gin"
)

// GetUsers retrieves all portal users
// @Summary Get all users
// @Description Get all registered users with their quiz status
// @Tags Admin
// @Produce json
// @Success 200 {array} models.User
// @Failure 401,403,500 {object} map[string]string
// @Router /admin/users [get]
// @Security Bearer
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchUsers)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUserAttempts retrieves the attempt log for one user
// @Summary Get a user's attempts
// @Description Get the full quiz attempt log for the given user, most recent first
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} models.Attempt
// @Failure 401,403,404,500 {object} map[string]string
// @Router /admin/users/{id}/attempts [get]
// @Security Bearer
func GetUserAttempts(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	attempts, err := services.ListAttempts(user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchAttempt)
		return
	}

	c.JSON(http.StatusOK, attempts)
}

// BlockUser blocks or unblocks a user account
// @Summary Block or unblock a user
// @Description Toggle the blocked flag for a user; blocked users cannot authenticate
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body BlockUserRequest true "Blocked flag"
// @Success 200 {object} models.User
// @Failure 400,401,403,404,500 {object} map[string]string
// @Router /admin/users/{id}/block [put]
// @Security Bearer
func BlockUser(c *gin.Context) {
	var req BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	user.Blocked = req.Blocked
	if err := database.DB.Save(&user).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedUpdateUser)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user account. Accounts are never deleted
// automatically; this is the single explicit admin path.
// @Summary Delete a user
// @Description Delete a user account and its attempt log
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 401,403,404,500 {object} map[string]string
// @Router /admin/users/{id} [delete]
// @Security Bearer
func DeleteUser(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	if err := database.DB.Where("user_id = ?", user.ID).Delete(&models.Attempt{}).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteUser)
		return
	}
	if err := database.DB.Delete(&user).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteUser)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
