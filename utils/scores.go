package utils

import (
	"time"

	"portal/config"
	"portal/models"
)

// ScoreSubmission scores a list of answer indices against the question bank.
// The submission is invalid (score 0) unless it carries exactly one answer per
// question; otherwise the score is the count of positions where the answer
// equals the question's correct option index.
func ScoreSubmission(answers []int, bank []models.Question) (bool, int) {
	if len(answers) != len(bank) {
		return false, 0
	}

	score := 0
	for i, question := range bank {
		if answers[i] == question.CorrectOption {
			score++
		}
	}
	return true, score
}

// Passed reports whether a score meets the configured pass threshold
func Passed(score int) bool {
	return score >= config.DefaultQuizConfig.PassThreshold
}

// NormalizeAnswers maps out-of-range entries to the unanswered sentinel so a
// missing answer can never match option index 0. The slice keeps its length.
func NormalizeAnswers(answers []int, bank []models.Question) []int {
	normalized := make([]int, len(answers))
	for i, answer := range answers {
		normalized[i] = config.UnansweredSentinel
		if i < len(bank) && answer >= 0 && answer < len(bank[i].Options) {
			normalized[i] = answer
		}
	}
	return normalized
}

// RemainingCooldown returns how long a failed user still has to wait before
// the next attempt, clamped to zero once the cooldown has elapsed.
func RemainingCooldown(lastAttempt time.Time, now time.Time) time.Duration {
	remaining := config.DefaultQuizConfig.Cooldown - now.Sub(lastAttempt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
