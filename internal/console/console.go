package console

import (
	"context"
	"errors"
	"sync"

	"github.com/terra-clan/interview-console/pkg/client"
)

// Common errors
var (
	ErrAccessRequired = errors.New("admin access required")
	ErrValidation     = errors.New("Question text and category are required")
	ErrNoEditSession  = errors.New("no edit session is open")
)

// API is the slice of the catalog client the console drives. Satisfied by
// *client.Client.
type API interface {
	ListQuestions(ctx context.Context, token string) ([]client.Question, error)
	CreateQuestion(ctx context.Context, draft client.Draft, token string) (*client.Question, error)
	UpdateQuestion(ctx context.Context, id string, update client.Update, token string) (*client.Question, error)
	DeleteQuestion(ctx context.Context, id, token string) error
}

// TokenSource supplies the bearer credential for outgoing calls. The console
// treats the token as opaque.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// AccessDecider reports whether the current session may manage the catalog.
// It decouples the console from any particular identity provider.
type AccessDecider interface {
	IsPrivileged(ctx context.Context) (bool, error)
}

// Console owns all mutable session state of the question management console:
// the catalog snapshot, the filter selection, the edit workflow and the
// pending delete confirmation. Collaborators mutate it only through its
// methods.
type Console struct {
	api    API
	tokens TokenSource
	access AccessDecider

	mu sync.Mutex

	privileged bool
	verified   bool

	questions []client.Question
	loading   bool
	errMsg    string
	loadGen   uint64

	selection Selection
	edit      EditSession
	pendingID string
}

// New creates a console bound to the given API client and identity
// collaborators.
func New(api API, tokens TokenSource, access AccessDecider) *Console {
	return &Console{
		api:       api,
		tokens:    tokens,
		access:    access,
		selection: Selection{Category: All, Difficulty: All},
	}
}

// VerifyAccess resolves the access decision. Loads and mutations refuse to
// run until this has returned an affirmative decision.
func (c *Console) VerifyAccess(ctx context.Context) (bool, error) {
	privileged, err := c.access.IsPrivileged(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.privileged = false
		c.verified = false
		c.errMsg = "Failed to verify admin access"
		return false, err
	}

	c.privileged = privileged
	c.verified = true
	if !privileged {
		c.errMsg = "Access Denied: Admin privileges required"
	}
	return privileged, nil
}

// LoadQuestions replaces the catalog snapshot with the service's current
// state. It requires an affirmative access decision. On failure the previous
// snapshot is kept and a display message is stored. Overlapping loads are
// resolved by a generation counter: only the most recently dispatched load
// may apply its result.
func (c *Console) LoadQuestions(ctx context.Context) error {
	c.mu.Lock()
	if !c.verified || !c.privileged {
		c.mu.Unlock()
		return ErrAccessRequired
	}
	c.loadGen++
	gen := c.loadGen
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()

	questions, err := c.loadOnce(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.loadGen {
		// A newer load was dispatched meanwhile; discard this result.
		return nil
	}
	c.loading = false
	if err != nil {
		c.errMsg = err.Error()
		return err
	}
	c.questions = questions
	return nil
}

func (c *Console) loadOnce(ctx context.Context) ([]client.Question, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	return c.api.ListQuestions(ctx, token)
}

// Questions returns the current catalog snapshot.
func (c *Console) Questions() []client.Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]client.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Loading reports whether a catalog load is in flight.
func (c *Console) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the current display error message, empty when none.
func (c *Console) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// SetSearch updates the search term of the filter selection.
func (c *Console) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection.Search = term
}

// SetCategory updates the category filter. Use All to clear it.
func (c *Console) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection.Category = category
}

// SetDifficulty updates the difficulty filter. Use All to clear it.
func (c *Console) SetDifficulty(difficulty string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection.Difficulty = difficulty
}

// Selection returns the current filter selection.
func (c *Console) Selection() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

// Visible derives the filtered view of the catalog from the current
// selection.
func (c *Console) Visible() []client.Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Visible(c.questions, c.selection)
}

// Categories returns the category options for the current catalog.
func (c *Console) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CategoryOptions(c.questions)
}

// Difficulties returns the difficulty options for the current catalog.
func (c *Console) Difficulties() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DifficultyOptions(c.questions)
}

func (c *Console) setErr(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = msg
}
