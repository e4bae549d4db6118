package services

import "errors"

var (
	// ErrStatusConflict is returned when the account status changed between
	// the eligibility check and the attempt write (concurrent submission).
	ErrStatusConflict = errors.New("account status changed during submission")
	// ErrInconsistentState is returned when the attempt and the account
	// status could not be recorded atomically.
	ErrInconsistentState = errors.New("failed to record attempt and account status atomically")
	// ErrEmptyBank is returned when the question bank has no questions.
	ErrEmptyBank = errors.New("question bank is empty")
)
