package api

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/terra-clan/interview-console/internal/storage"
	"github.com/terra-clan/interview-console/pkg/client"
)

const adminToken = "test-admin-token"

func newTestService(t *testing.T) *client.Client {
	t.Helper()
	srv := httptest.NewServer(NewServer(storage.NewMemoryRepository(), []string{adminToken}).Router())
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

func TestCreateThenListRoundTrip(t *testing.T) {
	c := newTestService(t)
	ctx := context.Background()

	draft := client.Draft{
		QuestionText:    "What is S3?",
		Category:        "AWS",
		Difficulty:      "easy",
		ReferenceAnswer: "Object storage.",
	}
	created, err := c.CreateQuestion(ctx, draft, adminToken)
	if err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}
	if created.ID == "" || created.CreateAt == "" {
		t.Errorf("expected service-assigned id and create_at, got %+v", created)
	}
	if created.Difficulty != "Easy" {
		t.Errorf("expected canonical difficulty Easy, got %q", created.Difficulty)
	}

	questions, err := c.ListQuestions(ctx, "")
	if err != nil {
		t.Fatalf("ListQuestions failed: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	got := questions[0]
	if got.ID != created.ID || got.QuestionText != draft.QuestionText ||
		got.Category != draft.Category || got.ReferenceAnswer != draft.ReferenceAnswer {
		t.Errorf("listed record does not match draft: %+v", got)
	}
}

func TestUpdateChangesOnlyProvidedFields(t *testing.T) {
	c := newTestService(t)
	ctx := context.Background()

	created, err := c.CreateQuestion(ctx, client.Draft{
		QuestionText: "Explain closures",
		Category:     "JS",
		Difficulty:   "Hard",
	}, adminToken)
	if err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}

	category := "JavaScript"
	updated, err := c.UpdateQuestion(ctx, created.ID, client.Update{Category: &category}, adminToken)
	if err != nil {
		t.Fatalf("UpdateQuestion failed: %v", err)
	}
	if updated.Category != "JavaScript" {
		t.Errorf("expected updated category, got %q", updated.Category)
	}
	if updated.QuestionText != created.QuestionText ||
		updated.Difficulty != created.Difficulty ||
		updated.CreateAt != created.CreateAt {
		t.Errorf("unrelated fields changed: before %+v after %+v", created, updated)
	}
}

func TestDeleteRemovesFromCatalog(t *testing.T) {
	c := newTestService(t)
	ctx := context.Background()

	created, err := c.CreateQuestion(ctx, client.Draft{QuestionText: "q", Category: "Go", Difficulty: "Medium"}, adminToken)
	if err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}

	if err := c.DeleteQuestion(ctx, created.ID, adminToken); err != nil {
		t.Fatalf("DeleteQuestion failed: %v", err)
	}

	questions, err := c.ListQuestions(ctx, "")
	if err != nil {
		t.Fatalf("ListQuestions failed: %v", err)
	}
	for _, q := range questions {
		if q.ID == created.ID {
			t.Errorf("deleted question still listed: %+v", q)
		}
	}

	if _, err := c.GetQuestion(ctx, created.ID, ""); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMutationsRejectNonAdminToken(t *testing.T) {
	c := newTestService(t)
	ctx := context.Background()

	if _, err := c.CreateQuestion(ctx, client.Draft{QuestionText: "q", Category: "Go", Difficulty: "Easy"}, "someone-else"); !errors.Is(err, client.ErrForbidden) {
		t.Errorf("create: expected ErrForbidden, got %v", err)
	}
	if _, err := c.UpdateQuestion(ctx, "any", client.Update{}, "someone-else"); !errors.Is(err, client.ErrForbidden) {
		t.Errorf("update: expected ErrForbidden, got %v", err)
	}
	if err := c.DeleteQuestion(ctx, "any", "someone-else"); !errors.Is(err, client.ErrForbidden) {
		t.Errorf("delete: expected ErrForbidden, got %v", err)
	}
}

func TestUpdateMissingQuestion(t *testing.T) {
	c := newTestService(t)

	if _, err := c.UpdateQuestion(context.Background(), "no-such-id", client.Update{}, adminToken); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	c := newTestService(t)
	ctx := context.Background()

	if _, err := c.CreateQuestion(ctx, client.Draft{Category: "Go", Difficulty: "Easy"}, adminToken); err == nil {
		t.Error("expected validation failure for empty question_text")
	}
	if _, err := c.CreateQuestion(ctx, client.Draft{QuestionText: "q", Category: "Go", Difficulty: "expert"}, adminToken); err == nil {
		t.Error("expected validation failure for unknown difficulty")
	}

	var statusErr *client.StatusError
	_, err := c.CreateQuestion(ctx, client.Draft{Difficulty: "Easy"}, adminToken)
	if !errors.As(err, &statusErr) || statusErr.Status != 400 {
		t.Errorf("expected a 400 StatusError, got %v", err)
	}
}

func TestSignupFlow(t *testing.T) {
	c := newTestService(t)
	ctx := context.Background()

	result, err := c.Signup(ctx, "Candidate@Example.com")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if result.Username != "candidate" {
		t.Errorf("expected username derived from the email local part, got %q", result.Username)
	}
	if result.Message == "" {
		t.Error("expected a confirmation message")
	}

	// Duplicate email surfaces the server-supplied message.
	if _, err := c.Signup(ctx, "candidate@example.com"); err == nil || err.Error() != "email already registered" {
		t.Errorf("expected duplicate-email error, got %v", err)
	}

	if _, err := c.Signup(ctx, "not-an-email"); err == nil {
		t.Error("expected rejection of an invalid email")
	}
}
