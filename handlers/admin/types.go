package admin

// Constants for error messages
const (
	ErrInvalidRequest     = "Invalid request data"
	ErrUserNotFound       = "User not found"
	ErrQuestionNotFound   = "Question not found"
	ErrFailedFetchUsers   = "Failed to fetch users"
	ErrFailedUpdateUser   = "Failed to update user"
	ErrFailedDeleteUser   = "Failed to delete user"
	ErrFailedFetchBank    = "Failed to fetch questions"
	ErrFailedCreateQ      = "Failed to create question"
	ErrFailedUpdateQ      = "Failed to update question"
	ErrFailedDeleteQ      = "Failed to delete question"
	ErrInvalidQuestion    = "Question must have at least two options and a correct index inside the option range"
	ErrFailedOverride     = "Failed to apply override"
	ErrFailedSync         = "Failed to sync roles"
	ErrFailedExport       = "Failed to export attempts"
	ErrInvalidDirection   = "Direction must be pass or fail"
	ErrFailedFetchAttempt = "Failed to fetch attempts"
)

// QuestionRequest model for creating or updating a question
type QuestionRequest struct {
	Position      int      `json:"position"`
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectOption *int     `json:"correct_option" binding:"required"`
}

// OverrideRequest model for administrative pass/fail overrides
type OverrideRequest struct {
	Direction string `json:"direction" binding:"required"` // "pass" or "fail"
}

// BlockUserRequest model for blocking or unblocking a user
type BlockUserRequest struct {
	Blocked bool `json:"blocked"`
}
