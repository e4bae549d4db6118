package applications

// Constants for error messages
const (
	ErrInvalidRequest      = "Invalid request data"
	ErrInvalidType         = "Application type must be staff or gang"
	ErrAlreadyPending      = "You already have a pending application of this type"
	ErrApplicationNotFound = "Application not found"
	ErrAlreadyReviewed     = "Application has already been reviewed"
	ErrInvalidDecision     = "Decision must be accepted or rejected"
	ErrFailedCreate        = "Failed to submit application"
	ErrFailedFetch         = "Failed to fetch applications"
	ErrFailedReview        = "Failed to review application"
)

// SubmitApplicationRequest model for submitting a staff or gang application
type SubmitApplicationRequest struct {
	Type    string                 `json:"type" binding:"required"`
	Payload map[string]interface{} `json:"payload" binding:"required"`
}

// ReviewApplicationRequest model for an admin decision on an application
type ReviewApplicationRequest struct {
	Decision string `json:"decision" binding:"required"`
}
