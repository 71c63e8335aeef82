package storage

import (
	"context"
	"errors"
	"time"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrEmailExists      = errors.New("email already registered")
)

// Question is a persisted catalog entry. JSON tags match the wire contract
// of the question service.
type Question struct {
	ID              string    `json:"id"`
	QuestionText    string    `json:"question_text"`
	Category        string    `json:"category"`
	Competency      string    `json:"competency,omitempty"`
	Difficulty      string    `json:"difficulty"`
	ReferenceAnswer string    `json:"reference_answer,omitempty"`
	CreateAt        time.Time `json:"create_at"`
}

// Patch holds the fields of a partial update. Nil fields are left untouched.
type Patch struct {
	QuestionText    *string
	Category        *string
	Difficulty      *string
	ReferenceAnswer *string
}

// Signup is a registered user record.
type Signup struct {
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines the persistence interface of the question service.
type Repository interface {
	ListQuestions(ctx context.Context) ([]*Question, error)
	GetQuestion(ctx context.Context, id string) (*Question, error)
	CreateQuestion(ctx context.Context, q *Question) error
	UpdateQuestion(ctx context.Context, id string, p Patch) (*Question, error)
	DeleteQuestion(ctx context.Context, id string) error

	CreateSignup(ctx context.Context, s *Signup) error

	Ping(ctx context.Context) error
	Close() error
}
