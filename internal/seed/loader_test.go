package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/terra-clan/interview-console/internal/storage"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
	return path
}

func TestLoadParsesAndCanonicalizes(t *testing.T) {
	path := writeSeedFile(t, `
questions:
  - question_text: What is S3?
    category: AWS
    competency: Cloud Storage
    difficulty: easy
    reference_answer: Object storage.
  - question_text: Explain channels
    category: Go
    difficulty: MEDIUM
`)

	questions, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	first := questions[0]
	if first.ID == "" {
		t.Error("expected an assigned id")
	}
	if first.Difficulty != "Easy" {
		t.Errorf("expected canonical difficulty Easy, got %q", first.Difficulty)
	}
	if first.Competency != "Cloud Storage" {
		t.Errorf("unexpected competency: %q", first.Competency)
	}
	if first.CreateAt.IsZero() {
		t.Error("expected an assigned create_at")
	}

	// Competency falls back to the category when absent.
	if questions[1].Competency != "Go" {
		t.Errorf("expected fallback competency Go, got %q", questions[1].Competency)
	}
	if questions[1].Difficulty != "Medium" {
		t.Errorf("expected canonical difficulty Medium, got %q", questions[1].Difficulty)
	}
}

func TestLoadSkipsInvalidEntries(t *testing.T) {
	path := writeSeedFile(t, `
questions:
  - question_text: ""
    category: AWS
    difficulty: Easy
  - question_text: valid
    category: AWS
    difficulty: impossible
  - question_text: also valid
    category: AWS
    difficulty: Hard
`)

	questions, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected invalid entries to be skipped, got %d questions", len(questions))
	}
	if questions[0].QuestionText != "also valid" {
		t.Errorf("unexpected surviving entry: %+v", questions[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestApplySkipsPopulatedCatalog(t *testing.T) {
	repo := storage.NewMemoryRepository()
	ctx := context.Background()

	existing := &storage.Question{ID: "1", QuestionText: "q", Category: "Go", Difficulty: "Easy"}
	if err := repo.CreateQuestion(ctx, existing); err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}

	path := writeSeedFile(t, `
questions:
  - question_text: seeded
    category: AWS
    difficulty: Easy
`)

	if err := Apply(ctx, repo, path); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	questions, _ := repo.ListQuestions(ctx)
	if len(questions) != 1 {
		t.Errorf("a populated catalog must not be reseeded, got %d questions", len(questions))
	}
}

func TestApplySeedsEmptyCatalog(t *testing.T) {
	repo := storage.NewMemoryRepository()
	ctx := context.Background()

	path := writeSeedFile(t, `
questions:
  - question_text: seeded
    category: AWS
    difficulty: Easy
`)

	if err := Apply(ctx, repo, path); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	questions, _ := repo.ListQuestions(ctx)
	if len(questions) != 1 || questions[0].QuestionText != "seeded" {
		t.Errorf("expected the seeded question, got %+v", questions)
	}
}
