package console

import (
	"context"
	"strings"

	"github.com/terra-clan/interview-console/pkg/client"
)

// EditMode distinguishes the two flavors of an edit session.
type EditMode string

const (
	ModeCreate EditMode = "create"
	ModeEdit   EditMode = "edit"
)

// EditSession is the state of the create/edit workflow. At most one session
// is open at a time; Target is set in edit mode only.
type EditSession struct {
	Open   bool
	Mode   EditMode
	Target *client.Question
	Draft  client.Draft
}

// Edit returns a copy of the current edit session.
func (c *Console) Edit() EditSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.edit
}

// OpenCreate opens an edit session in create mode with an empty draft.
// The draft difficulty defaults to Medium.
func (c *Console) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edit = EditSession{
		Open: true,
		Mode: ModeCreate,
		Draft: client.Draft{
			Difficulty: "Medium",
		},
	}
}

// OpenEdit opens an edit session for the given question with the draft
// pre-filled from its current fields.
func (c *Console) OpenEdit(question client.Question) {
	c.mu.Lock()
	defer c.mu.Unlock()
	target := question
	c.edit = EditSession{
		Open:   true,
		Mode:   ModeEdit,
		Target: &target,
		Draft: client.Draft{
			QuestionText:    question.QuestionText,
			Category:        question.Category,
			Difficulty:      question.Difficulty,
			ReferenceAnswer: question.ReferenceAnswer,
		},
	}
}

// SetDraft replaces the in-progress form values of the open session.
func (c *Console) SetDraft(draft client.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.edit.Open {
		c.edit.Draft = draft
	}
}

// CloseEdit closes any open edit session and clears its target.
func (c *Console) CloseEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edit = EditSession{}
}

// Submit validates the draft and issues the create or update call. Required
// fields are checked after trimming; a violation keeps the session open and
// issues no network call, as does a missing token. On success the catalog is
// reloaded and the session closes. On failure the session stays open with
// the client's message stored for display, so the user can retry without
// re-entering input.
func (c *Console) Submit(ctx context.Context) error {
	c.mu.Lock()
	if !c.edit.Open {
		c.mu.Unlock()
		return ErrNoEditSession
	}
	c.errMsg = ""
	mode := c.edit.Mode
	target := c.edit.Target
	draft := c.edit.Draft
	c.mu.Unlock()

	if strings.TrimSpace(draft.QuestionText) == "" || strings.TrimSpace(draft.Category) == "" {
		c.setErr(ErrValidation.Error())
		return ErrValidation
	}
	draft.Difficulty = CanonicalDifficulty(draft.Difficulty)

	token, err := c.tokens.Token(ctx)
	if err != nil || token == "" {
		c.setErr(client.ErrTokenUnavailable.Error())
		return client.ErrTokenUnavailable
	}

	switch mode {
	case ModeCreate:
		_, err = c.api.CreateQuestion(ctx, draft, token)
	case ModeEdit:
		update := client.Update{
			QuestionText:    &draft.QuestionText,
			Category:        &draft.Category,
			Difficulty:      &draft.Difficulty,
			ReferenceAnswer: &draft.ReferenceAnswer,
		}
		_, err = c.api.UpdateQuestion(ctx, target.ID, update, token)
	}
	if err != nil {
		c.setErr(err.Error())
		return err
	}

	// Reload stores its own error state on failure; the session closes
	// either way once the mutation has succeeded.
	_ = c.LoadQuestions(ctx)
	c.CloseEdit()
	return nil
}

// RequestDelete marks the given question id for delete confirmation. Only
// one confirmation is pending at a time; a new id replaces any prior one.
func (c *Console) RequestDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingID = id
}

// PendingDelete returns the id awaiting confirmation, empty when none.
func (c *Console) PendingDelete() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingID
}

// CancelDelete clears any pending delete confirmation.
func (c *Console) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingID = ""
}

// ConfirmDelete deletes the given question. A missing token aborts before
// any network call. On success the catalog is reloaded and the pending
// confirmation cleared; on failure it stays set so the confirmation remains
// visible for retry.
func (c *Console) ConfirmDelete(ctx context.Context, id string) error {
	c.setErr("")

	token, err := c.tokens.Token(ctx)
	if err != nil || token == "" {
		c.setErr(client.ErrTokenUnavailable.Error())
		return client.ErrTokenUnavailable
	}

	if err := c.api.DeleteQuestion(ctx, id, token); err != nil {
		c.setErr(err.Error())
		return err
	}

	_ = c.LoadQuestions(ctx)

	c.mu.Lock()
	c.pendingID = ""
	c.mu.Unlock()
	return nil
}
