package database

import (
	"testing"

	"portal/config"
)

func TestLoadQuestionSeed(t *testing.T) {
	questions, err := LoadQuestionSeed("../questions.json")
	if err != nil {
		t.Fatalf("LoadQuestionSeed() error: %v", err)
	}

	if len(questions) != config.DefaultQuizConfig.BankSize {
		t.Errorf("seed bank size = %d, want %d", len(questions), config.DefaultQuizConfig.BankSize)
	}

	seen := make(map[int]bool)
	for _, question := range questions {
		if !question.Valid() {
			t.Errorf("seed question %q fails validation", question.Text)
		}
		if seen[question.Position] {
			t.Errorf("duplicate position %d in seed", question.Position)
		}
		seen[question.Position] = true
	}
}

func TestLoadQuestionSeedMissingFile(t *testing.T) {
	if _, err := LoadQuestionSeed("does-not-exist.json"); err == nil {
		t.Error("missing seed file must be reported as an error")
	}
}
