package console

import (
	"strings"

	"github.com/terra-clan/interview-console/pkg/client"
)

// All is the sentinel selection that matches every category or difficulty.
const All = "All"

// Selection is the transient filter state of the console. It is derived
// input, never persisted.
type Selection struct {
	Search     string
	Category   string
	Difficulty string
}

// Visible derives the filtered subset of the catalog. A question is visible
// when it matches all three predicates:
//
//   - the search term (case-folded) is a substring of its text or category;
//     an empty term matches everything
//   - the category selection equals its category exactly, or is All
//   - the difficulty selection equals its difficulty case-insensitively,
//     or is All
//
// Catalog order is preserved.
func Visible(questions []client.Question, sel Selection) []client.Question {
	term := strings.ToLower(sel.Search)

	visible := make([]client.Question, 0, len(questions))
	for _, q := range questions {
		matchesSearch := term == "" ||
			strings.Contains(strings.ToLower(q.QuestionText), term) ||
			strings.Contains(strings.ToLower(q.Category), term)

		matchesCategory := sel.Category == All || sel.Category == "" || q.Category == sel.Category

		matchesDifficulty := sel.Difficulty == All || sel.Difficulty == "" ||
			strings.EqualFold(q.Difficulty, sel.Difficulty)

		if matchesSearch && matchesCategory && matchesDifficulty {
			visible = append(visible, q)
		}
	}
	return visible
}

// CategoryOptions returns the distinct categories of the catalog in first
// appearance order, prefixed with All.
func CategoryOptions(questions []client.Question) []string {
	options := []string{All}
	seen := make(map[string]bool)
	for _, q := range questions {
		if seen[q.Category] {
			continue
		}
		seen[q.Category] = true
		options = append(options, q.Category)
	}
	return options
}

// DifficultyOptions returns the distinct difficulties of the catalog,
// deduplicated case-insensitively and redisplayed with the first letter
// capitalized, prefixed with All.
func DifficultyOptions(questions []client.Question) []string {
	options := []string{All}
	seen := make(map[string]bool)
	for _, q := range questions {
		key := strings.ToLower(q.Difficulty)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		options = append(options, capitalize(key))
	}
	return options
}

// CanonicalDifficulty maps any casing of the three difficulty levels to its
// canonical form. Unknown values are returned unchanged: the service is the
// authority on what persists, and filtering is case-insensitive regardless.
func CanonicalDifficulty(difficulty string) string {
	switch strings.ToLower(difficulty) {
	case "easy":
		return "Easy"
	case "medium":
		return "Medium"
	case "hard":
		return "Hard"
	}
	return difficulty
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
