package admin

import (
	"net/http"
	"strconv"

	"portal/database"
	"portal/models"
	"portal/services"
	"portal/utils/response"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// GetQuestions retrieves the full question bank including correct answers
// @Summary Get all questions
// @Description Get the full question bank including correct option indices
// @Tags Admin
// @Produce json
// @Success 200 {array} models.Question
// @Failure 401,403,500 {object} map[string]string
// @Router /admin/questions [get]
// @Security Bearer
func GetQuestions(c *gin.Context) {
	var questions []models.Question
	if err := database.DB.Order("position ASC").Find(&questions).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchBank)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// CreateQuestion adds a question to the bank
// @Summary Create a question
// @Description Add a question to the quiz bank
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body QuestionRequest true "Question"
// @Success 201 {object} models.Question
// @Failure 400,401,403,500 {object} map[string]string
// @Router /admin/questions [post]
// @Security Bearer
func CreateQuestion(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	question := models.Question{
		Position:      req.Position,
		Text:          req.Text,
		Options:       datatypes.NewJSONSlice(req.Options),
		CorrectOption: *req.CorrectOption,
	}
	if question.Position == 0 {
		// Append to the end of the bank by default
		var maxPosition int
		database.DB.Model(&models.Question{}).Select("COALESCE(MAX(position), 0)").Scan(&maxPosition)
		question.Position = maxPosition + 1
	}

	if !question.Valid() {
		response.Error(c, http.StatusBadRequest, ErrInvalidQuestion)
		return
	}

	if err := database.DB.Create(&question).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedCreateQ)
		return
	}

	services.InvalidateQuestionCache(c.Request.Context())
	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion edits an existing question
// @Summary Update a question
// @Description Update an existing quiz question
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param request body QuestionRequest true "Question"
// @Success 200 {object} models.Question
// @Failure 400,401,403,404,500 {object} map[string]string
// @Router /admin/questions/{id} [put]
// @Security Bearer
func UpdateQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var question models.Question
	if err := database.DB.First(&question, "id = ?", id).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrQuestionNotFound)
		return
	}

	question.Text = req.Text
	question.Options = datatypes.NewJSONSlice(req.Options)
	question.CorrectOption = *req.CorrectOption
	if req.Position != 0 {
		question.Position = req.Position
	}

	if !question.Valid() {
		response.Error(c, http.StatusBadRequest, ErrInvalidQuestion)
		return
	}

	if err := database.DB.Save(&question).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedUpdateQ)
		return
	}

	services.InvalidateQuestionCache(c.Request.Context())
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion removes a question from the bank
// @Summary Delete a question
// @Description Remove a question from the quiz bank
// @Tags Admin
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} map[string]string
// @Failure 400,401,403,404,500 {object} map[string]string
// @Router /admin/questions/{id} [delete]
// @Security Bearer
func DeleteQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var question models.Question
	if err := database.DB.First(&question, "id = ?", id).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrQuestionNotFound)
		return
	}

	if err := database.DB.Delete(&question).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteQ)
		return
	}

	services.InvalidateQuestionCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}
