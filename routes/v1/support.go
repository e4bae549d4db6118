package v1

import (
	"net/http"

	"portal/services"

	"github.com/gin-gonic/gin"
)

type SupportRequest struct {
	Name    string `json:"name" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// @Summary Submit a support request
// @Description Forwards a support request to the staff Discord channel
// @Tags Support
// @Accept json
// @Produce json
// @Param request body SupportRequest true "Support request details"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /support [post]
func submitSupportRequest(c *gin.Context) {
	var request SupportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format: " + err.Error(),
		})
		return
	}

	discord := services.NewDiscordService()
	if err := discord.SendSupportMessage(request.Name, request.Subject, request.Message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to forward support request: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Support request submitted successfully",
	})
}

func RegisterSupportRoutes(r *gin.RouterGroup) {
	r.POST("/support", submitSupportRequest)
}
