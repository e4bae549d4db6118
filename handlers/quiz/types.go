package quiz

import "portal/models"

// Constants for error messages
const (
	ErrInvalidRequest       = "Invalid request data"
	ErrWrongAnswerCount     = "Submission must carry exactly one answer per question"
	ErrBankUnavailable      = "Question bank is unavailable"
	ErrSubmissionInProgress = "A submission is already in progress"
	ErrInconsistentState    = "Attempt could not be recorded consistently"
)

// PublicQuestion is a question as served to quiz takers, without the
// correct option index
type PublicQuestion struct {
	ID       int      `json:"id"`
	Position int      `json:"position"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
}

// SubmitRequest model for quiz submissions. Null entries mean "unanswered"
// and are normalized to the sentinel before scoring.
type SubmitRequest struct {
	Answers []*int `json:"answers" binding:"required"`
}

// SubmitResponse model for quiz submission results
type SubmitResponse struct {
	Score        int  `json:"score"`
	Total        int  `json:"total"`
	Passed       bool `json:"passed"`
	RoleAssigned bool `json:"role_assigned"`
}

// EligibilityResponse model for eligibility checks
type EligibilityResponse struct {
	Allowed             bool   `json:"allowed"`
	Reason              string `json:"reason,omitempty"`
	RemainingCooldownMs int64  `json:"remaining_cooldown_ms,omitempty"`
}

// sanitizeQuestions strips correct option indices from the bank
func sanitizeQuestions(bank []models.Question) []PublicQuestion {
	public := make([]PublicQuestion, 0, len(bank))
	for _, question := range bank {
		public = append(public, PublicQuestion{
			ID:       question.ID,
			Position: question.Position,
			Text:     question.Text,
			Options:  question.Options,
		})
	}
	return public
}
