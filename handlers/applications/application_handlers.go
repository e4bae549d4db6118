package applications

import (
	"encoding/json"
	"net/http"
	"time"

	"portal/database"
	"portal/middleware"
	"portal/models"
	"portal/utils/response"

	"github.com/gin-gonic/gin"
)

// SubmitApplication submits a staff or gang application for the current user
// @Summary Submit an application
// @Description Submit a staff or gang application; one pending application per type at a time
// @Tags Applications
// @Accept json
// @Produce json
// @Param request body SubmitApplicationRequest true "Application type and form payload"
// @Success 201 {object} models.Application
// @Failure 400,401,409,500 {object} map[string]string
// @Router /applications/ [post]
// @Security Bearer
func SubmitApplication(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if req.Type != models.ApplicationStaff && req.Type != models.ApplicationGang {
		response.Error(c, http.StatusBadRequest, ErrInvalidType)
		return
	}

	// One pending application per type per user
	var pending int64
	database.DB.Model(&models.Application{}).
		Where("user_id = ? AND type = ? AND status = ?", user.ID, req.Type, models.ApplicationPending).
		Count(&pending)
	if pending > 0 {
		response.Error(c, http.StatusConflict, ErrAlreadyPending)
		return
	}

	payload, err := json.Marshal(req.Payload)
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	application := models.Application{
		UserID:      user.ID,
		Type:        req.Type,
		Payload:     payload,
		Status:      models.ApplicationPending,
		SubmittedAt: time.Now(),
	}
	if err := database.DB.Create(&application).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedCreate)
		return
	}

	c.JSON(http.StatusCreated, application)
}

// GetMyApplications returns the current user's applications
// @Summary Get own applications
// @Description Get all applications submitted by the authenticated user
// @Tags Applications
// @Produce json
// @Success 200 {array} models.Application
// @Failure 401,500 {object} map[string]string
// @Router /applications/me [get]
// @Security Bearer
func GetMyApplications(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var apps []models.Application
	if err := database.DB.Where("user_id = ?", user.ID).
		Order("submitted_at DESC").Find(&apps).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetch)
		return
	}

	c.JSON(http.StatusOK, apps)
}

// ListApplications returns all applications, optionally filtered by type and status
// @Summary List applications
// @Description List all applications for review, optionally filtered by type and status
// @Tags Applications
// @Produce json
// @Param type query string false "staff or gang"
// @Param status query string false "pending, accepted or rejected"
// @Success 200 {array} models.Application
// @Failure 401,403,500 {object} map[string]string
// @Router /applications/all [get]
// @Security Bearer
func ListApplications(c *gin.Context) {
	query := database.DB.Preload("User").Order("submitted_at DESC")
	if appType := c.Query("type"); appType != "" {
		query = query.Where("type = ?", appType)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var apps []models.Application
	if err := query.Find(&apps).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetch)
		return
	}

	c.JSON(http.StatusOK, apps)
}

// ReviewApplication records an admin decision on a pending application
// @Summary Review an application
// @Description Accept or reject a pending application; reviewed applications are immutable
// @Tags Applications
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param request body ReviewApplicationRequest true "Decision"
// @Success 200 {object} models.Application
// @Failure 400,401,403,404,409,500 {object} map[string]string
// @Router /applications/{id}/review [post]
// @Security Bearer
func ReviewApplication(c *gin.Context) {
	admin, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}
	if req.Decision != models.ApplicationAccepted && req.Decision != models.ApplicationRejected {
		response.Error(c, http.StatusBadRequest, ErrInvalidDecision)
		return
	}

	var application models.Application
	if err := database.DB.First(&application, "id = ?", c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrApplicationNotFound)
		return
	}

	if application.Status != models.ApplicationPending {
		response.Error(c, http.StatusConflict, ErrAlreadyReviewed)
		return
	}

	now := time.Now()
	application.Status = req.Decision
	application.ReviewedAt = &now
	application.ReviewerID = &admin.ID
	if err := database.DB.Save(&application).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedReview)
		return
	}

	c.JSON(http.StatusOK, application)
}
