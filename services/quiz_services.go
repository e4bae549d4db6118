package services

import (
	"fmt"
	"time"

	"portal/database"
	"portal/metrics"
	"portal/models"
	"portal/realtime"
	"portal/utils"

	"gorm.io/gorm"
)

// Machine-readable eligibility rejection reasons
const (
	ReasonAlreadyPassed = "already-passed"
	ReasonCooldown      = "cooldown"
	ReasonNotFound      = "not-found"
)

// EligibilityResult is the outcome of a quiz eligibility check
type EligibilityResult struct {
	Allowed           bool
	Reason            string
	RemainingCooldown time.Duration
}

// CheckEligibility decides whether a user may attempt the quiz right now.
// Passing is terminal, fresh accounts may always attempt, failed accounts
// wait out the cooldown. Pure read, no side effects.
func CheckEligibility(user models.User, now time.Time) EligibilityResult {
	switch user.Status {
	case models.StatusPassed:
		return EligibilityResult{Allowed: false, Reason: ReasonAlreadyPassed}
	case models.StatusFailed:
		if user.LastAttemptAt != nil {
			if remaining := utils.RemainingCooldown(*user.LastAttemptAt, now); remaining > 0 {
				return EligibilityResult{Allowed: false, Reason: ReasonCooldown, RemainingCooldown: remaining}
			}
		}
		return EligibilityResult{Allowed: true}
	default:
		// Never attempted, no cooldown to check
		return EligibilityResult{Allowed: true}
	}
}

// RecordAttempt appends an attempt and moves the account status in one
// transaction, so the attempt log and the account can never disagree about
// the latest outcome. The status update is conditional on the status the
// caller observed; a concurrent submission surfaces as ErrStatusConflict.
func RecordAttempt(user *models.User, answers []int, score int, total int, passed bool, origin string) (models.Attempt, error) {
	now := time.Now()

	status := models.StatusFailed
	if passed {
		status = models.StatusPassed
	}
	if origin == models.OriginAdminFail {
		// An administrative fail re-opens the quiz flow instead of
		// starting a cooldown
		status = models.StatusNew
	}

	attempt := models.Attempt{
		UserID:      user.ID,
		Score:       score,
		Total:       total,
		Passed:      passed,
		Answers:     answers,
		Origin:      origin,
		SubmittedAt: now,
	}

	start := time.Now()
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&attempt).Error; err != nil {
			return fmt.Errorf("failed to append attempt: %w", err)
		}

		result := tx.Model(&models.User{}).
			Where("id = ? AND status = ?", user.ID, user.Status).
			Updates(map[string]interface{}{
				"status":          status,
				"last_attempt_at": now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update account status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrStatusConflict
		}
		return nil
	})
	metrics.RecordDBOperation("record_attempt", "attempts", start)

	if err != nil {
		if err == ErrStatusConflict {
			return models.Attempt{}, err
		}
		return models.Attempt{}, fmt.Errorf("%w: %v", ErrInconsistentState, err)
	}

	user.Status = status
	user.LastAttemptAt = &now

	result := "failed"
	if passed {
		result = "passed"
	}
	metrics.QuizAttempts.WithLabelValues(origin, result).Inc()

	realtime.BroadcastAttemptUpdate(realtime.AttemptUpdate{
		Attempt:  attempt,
		Username: user.Username,
		Status:   status,
	})

	return attempt, nil
}

// ForceOutcome is the administrative override: it bypasses eligibility and
// scoring entirely and records a synthetic attempt (full marks for a pass,
// zero for a fail) through the same transition path as a real submission.
func ForceOutcome(user *models.User, pass bool, total int) (models.Attempt, error) {
	origin := models.OriginAdminFail
	score := 0
	if pass {
		origin = models.OriginAdminPass
		score = total
	}

	answers := make([]int, 0)
	return RecordAttempt(user, answers, score, total, pass, origin)
}

// ListAttempts returns the attempt log for one user, most recent first
func ListAttempts(userID string) ([]models.Attempt, error) {
	var attempts []models.Attempt
	if err := database.DB.Where("user_id = ?", userID).
		Order("submitted_at DESC").Find(&attempts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch attempts: %w", err)
	}
	return attempts, nil
}
