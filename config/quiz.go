package config

import "time"

// Quiz policy configuration
type QuizConfig struct {
	BankSize      int           // Number of questions served per quiz
	PassThreshold int           // Minimum correct answers to pass
	Cooldown      time.Duration // Wait after a failed attempt before retrying
	LockTTL       time.Duration // Per-user submission lock lifetime
}

var DefaultQuizConfig = QuizConfig{
	BankSize:      10,
	PassThreshold: 7,
	Cooldown:      24 * time.Hour,
	LockTTL:       10 * time.Second,
}

// UnansweredSentinel is what the API layer writes for a missing or
// non-numeric answer so it can never match a correct option index.
const UnansweredSentinel = -1
