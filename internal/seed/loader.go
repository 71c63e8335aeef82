// Package seed loads an initial question bank from a YAML file so the
// reference service can start with a populated catalog.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/terra-clan/interview-console/internal/storage"
)

type seedFile struct {
	Questions []seedQuestion `yaml:"questions"`
}

type seedQuestion struct {
	QuestionText    string `yaml:"question_text"`
	Category        string `yaml:"category"`
	Competency      string `yaml:"competency"`
	Difficulty      string `yaml:"difficulty"`
	ReferenceAnswer string `yaml:"reference_answer"`
}

// Load parses a YAML seed file into storable questions. Entries missing
// required fields or carrying an unknown difficulty are skipped with a
// warning; difficulty casing is canonicalized.
func Load(path string) ([]*storage.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	questions := make([]*storage.Question, 0, len(file.Questions))
	for i, entry := range file.Questions {
		if strings.TrimSpace(entry.QuestionText) == "" || strings.TrimSpace(entry.Category) == "" {
			slog.Warn("skipping seed entry with missing required fields", "index", i)
			continue
		}

		difficulty, ok := canonicalDifficulty(entry.Difficulty)
		if !ok {
			slog.Warn("skipping seed entry with unknown difficulty", "index", i, "difficulty", entry.Difficulty)
			continue
		}

		competency := entry.Competency
		if competency == "" {
			competency = entry.Category
		}

		questions = append(questions, &storage.Question{
			ID:              uuid.NewString(),
			QuestionText:    entry.QuestionText,
			Category:        entry.Category,
			Competency:      competency,
			Difficulty:      difficulty,
			ReferenceAnswer: entry.ReferenceAnswer,
			CreateAt:        time.Now().UTC(),
		})
	}

	return questions, nil
}

// Apply loads the seed file and stores its questions when the repository is
// empty. A non-empty catalog is left untouched.
func Apply(ctx context.Context, repo storage.Repository, path string) error {
	existing, err := repo.ListQuestions(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect catalog before seeding: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("catalog already populated, skipping seed", "count", len(existing))
		return nil
	}

	questions, err := Load(path)
	if err != nil {
		return err
	}

	for _, q := range questions {
		if err := repo.CreateQuestion(ctx, q); err != nil {
			return fmt.Errorf("failed to store seed question: %w", err)
		}
	}

	slog.Info("catalog seeded", "file", path, "count", len(questions))
	return nil
}

func canonicalDifficulty(difficulty string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case "easy":
		return "Easy", true
	case "medium":
		return "Medium", true
	case "hard":
		return "Hard", true
	}
	return "", false
}
