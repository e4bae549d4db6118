package utils

import (
	"testing"
	"time"

	"portal/config"
	"portal/models"

	"gorm.io/datatypes"
)

func bankOf(correct ...int) []models.Question {
	bank := make([]models.Question, len(correct))
	for i, c := range correct {
		bank[i] = models.Question{
			ID:            i + 1,
			Position:      i + 1,
			Text:          "q",
			Options:       datatypes.NewJSONSlice([]string{"a", "b", "c", "d"}),
			CorrectOption: c,
		}
	}
	return bank
}

func TestScoreSubmission(t *testing.T) {
	tests := []struct {
		name      string
		answers   []int
		bank      []models.Question
		wantValid bool
		wantScore int
	}{
		{
			name:      "all correct",
			answers:   []int{0, 1, 2},
			bank:      bankOf(0, 1, 2),
			wantValid: true,
			wantScore: 3,
		},
		{
			name:      "all wrong",
			answers:   []int{1, 2, 3},
			bank:      bankOf(0, 1, 2),
			wantValid: true,
			wantScore: 0,
		},
		{
			name:      "partial",
			answers:   []int{0, 3, 2},
			bank:      bankOf(0, 1, 2),
			wantValid: true,
			wantScore: 2,
		},
		{
			name:      "too few answers",
			answers:   []int{0, 1},
			bank:      bankOf(0, 1, 2),
			wantValid: false,
			wantScore: 0,
		},
		{
			name:      "too many answers",
			answers:   []int{0, 1, 2, 3},
			bank:      bankOf(0, 1, 2),
			wantValid: false,
			wantScore: 0,
		},
		{
			name:      "unanswered sentinel never matches option zero",
			answers:   []int{config.UnansweredSentinel, config.UnansweredSentinel, config.UnansweredSentinel},
			bank:      bankOf(0, 0, 0),
			wantValid: true,
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, score := ScoreSubmission(tt.answers, tt.bank)
			if valid != tt.wantValid || score != tt.wantScore {
				t.Errorf("ScoreSubmission() = (%v, %d), want (%v, %d)", valid, score, tt.wantValid, tt.wantScore)
			}
		})
	}
}

func TestScoreSubmissionIsPure(t *testing.T) {
	answers := []int{0, 1, 2}
	bank := bankOf(0, 1, 2)

	_, first := ScoreSubmission(answers, bank)
	_, second := ScoreSubmission(answers, bank)
	if first != second {
		t.Errorf("same submission scored differently: %d then %d", first, second)
	}
}

func TestPassed(t *testing.T) {
	threshold := config.DefaultQuizConfig.PassThreshold

	if Passed(threshold - 1) {
		t.Errorf("score %d below threshold should not pass", threshold-1)
	}
	if !Passed(threshold) {
		t.Errorf("score %d at threshold should pass", threshold)
	}
	if !Passed(threshold + 1) {
		t.Errorf("score %d above threshold should pass", threshold+1)
	}
}

func TestNormalizeAnswers(t *testing.T) {
	bank := bankOf(0, 1) // four options each

	got := NormalizeAnswers([]int{-5, 4, 3}, bank)
	want := []int{config.UnansweredSentinel, config.UnansweredSentinel, config.UnansweredSentinel}
	if len(got) != len(want) {
		t.Fatalf("length changed: got %d, want %d", len(got), len(want))
	}
	// -5 is negative, 4 is out of range, index 2 has no question
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("normalized[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	got = NormalizeAnswers([]int{0, 3}, bank)
	if got[0] != 0 || got[1] != 3 {
		t.Errorf("in-range answers must be preserved, got %v", got)
	}
}

func TestRemainingCooldown(t *testing.T) {
	cooldown := config.DefaultQuizConfig.Cooldown
	attempt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"immediately after", attempt, cooldown},
		{"halfway through", attempt.Add(cooldown / 2), cooldown / 2},
		{"one second left", attempt.Add(cooldown - time.Second), time.Second},
		{"exactly elapsed", attempt.Add(cooldown), 0},
		{"long elapsed", attempt.Add(48 * time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemainingCooldown(attempt, tt.now); got != tt.want {
				t.Errorf("RemainingCooldown() = %v, want %v", got, tt.want)
			}
		})
	}
}
