package quiz

import (
	"errors"
	"net/http"
	"time"

	"portal/config"
	"portal/metrics"
	"portal/middleware"
	"portal/models"
	"portal/services"
	"portal/utils"
	"portal/utils/response"

	"github.com/gin-gonic/gin"
)

// GetQuestions serves the question bank without correct answers
// @Summary Get quiz questions
// @Description Get the allowlist quiz questions in order, without the correct option indices
// @Tags Quiz
// @Produce json
// @Success 200 {array} PublicQuestion
// @Failure 401,500 {object} map[string]string
// @Router /quiz/questions [get]
// @Security Bearer
func GetQuestions(c *gin.Context) {
	bank, err := services.GetQuestionBank(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrBankUnavailable)
		return
	}

	c.JSON(http.StatusOK, sanitizeQuestions(bank))
}

// GetEligibility reports whether the user may attempt the quiz right now
// @Summary Check quiz eligibility
// @Description Report whether the authenticated user may attempt the quiz, with the remaining cooldown when not
// @Tags Quiz
// @Produce json
// @Success 200 {object} EligibilityResponse
// @Failure 401 {object} map[string]string
// @Router /quiz/eligibility [get]
// @Security Bearer
func GetEligibility(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	result := services.CheckEligibility(user, time.Now())
	c.JSON(http.StatusOK, EligibilityResponse{
		Allowed:             result.Allowed,
		Reason:              result.Reason,
		RemainingCooldownMs: result.RemainingCooldown.Milliseconds(),
	})
}

// SubmitQuiz scores a quiz submission and records the attempt
// @Summary Submit quiz answers
// @Description Score the submitted answers, record the attempt and trigger the allowlist role grant on a pass
// @Tags Quiz
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Answer indices, one per question, null for unanswered"
// @Success 200 {object} SubmitResponse
// @Failure 400,401,403,409,429,500 {object} map[string]string
// @Router /quiz/submit [post]
// @Security Bearer
func SubmitQuiz(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.QuizRejections.WithLabelValues("invalid-request").Inc()
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	// Serialize submissions per identity: two concurrent submissions must
	// not both observe an eligible account
	ctx := c.Request.Context()
	if !services.AcquireSubmitLock(ctx, user.ID) {
		metrics.QuizRejections.WithLabelValues("locked").Inc()
		response.Error(c, http.StatusTooManyRequests, ErrSubmissionInProgress)
		return
	}
	defer services.ReleaseSubmitLock(ctx, user.ID)

	eligibility := services.CheckEligibility(user, time.Now())
	if !eligibility.Allowed {
		metrics.QuizRejections.WithLabelValues(eligibility.Reason).Inc()
		response.NotEligible(c, http.StatusForbidden, eligibility.Reason, eligibility.RemainingCooldown)
		return
	}

	bank, err := services.GetQuestionBank(ctx)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrBankUnavailable)
		return
	}

	if len(req.Answers) != len(bank) {
		metrics.QuizRejections.WithLabelValues("answer-count").Inc()
		response.Error(c, http.StatusBadRequest, ErrWrongAnswerCount)
		return
	}

	// Null entries become the sentinel so they can never match option 0
	answers := make([]int, len(req.Answers))
	for i, answer := range req.Answers {
		answers[i] = config.UnansweredSentinel
		if answer != nil {
			answers[i] = *answer
		}
	}
	answers = utils.NormalizeAnswers(answers, bank)

	valid, score := utils.ScoreSubmission(answers, bank)
	if !valid {
		response.Error(c, http.StatusBadRequest, ErrWrongAnswerCount)
		return
	}
	passed := utils.Passed(score)

	if _, err := services.RecordAttempt(&user, answers, score, len(bank), passed, models.OriginUser); err != nil {
		if errors.Is(err, services.ErrStatusConflict) {
			response.Error(c, http.StatusConflict, ErrSubmissionInProgress)
			return
		}
		response.Error(c, http.StatusInternalServerError, ErrInconsistentState)
		return
	}

	// Side channel is best effort: a failed grant never fails the submission
	roleAssigned := false
	if passed {
		roleAssigned, _ = services.NewDiscordService().NotifyPassed(user.DiscordID)
	}

	c.JSON(http.StatusOK, SubmitResponse{
		Score:        score,
		Total:        len(bank),
		Passed:       passed,
		RoleAssigned: roleAssigned,
	})
}

// GetMyAttempts returns the authenticated user's attempt history
// @Summary Get own attempts
// @Description Get the authenticated user's quiz attempt history, most recent first
// @Tags Quiz
// @Produce json
// @Success 200 {array} models.Attempt
// @Failure 401,500 {object} map[string]string
// @Router /quiz/attempts [get]
// @Security Bearer
func GetMyAttempts(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	attempts, err := services.ListAttempts(user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch attempts")
		return
	}

	c.JSON(http.StatusOK, attempts)
}
