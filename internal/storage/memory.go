package storage

import (
	"context"
	"sync"
)

// MemoryRepository implements Repository in process memory. It backs the
// service in development and in tests; catalog order is insertion order.
type MemoryRepository struct {
	mu        sync.RWMutex
	questions map[string]*Question
	order     []string
	signups   map[string]*Signup
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		questions: make(map[string]*Question),
		signups:   make(map[string]*Signup),
	}
}

// ListQuestions returns all questions in insertion order.
func (r *MemoryRepository) ListQuestions(ctx context.Context) ([]*Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Question, 0, len(r.order))
	for _, id := range r.order {
		q := *r.questions[id]
		out = append(out, &q)
	}
	return out, nil
}

// GetQuestion returns the question with the given id.
func (r *MemoryRepository) GetQuestion(ctx context.Context, id string) (*Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.questions[id]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	out := *q
	return &out, nil
}

// CreateQuestion stores a new question.
func (r *MemoryRepository) CreateQuestion(ctx context.Context, q *Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *q
	r.questions[q.ID] = &stored
	r.order = append(r.order, q.ID)
	return nil
}

// UpdateQuestion applies the non-nil fields of the patch and returns the
// updated record.
func (r *MemoryRepository) UpdateQuestion(ctx context.Context, id string, p Patch) (*Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.questions[id]
	if !ok {
		return nil, ErrQuestionNotFound
	}

	if p.QuestionText != nil {
		q.QuestionText = *p.QuestionText
	}
	if p.Category != nil {
		q.Category = *p.Category
	}
	if p.Difficulty != nil {
		q.Difficulty = *p.Difficulty
	}
	if p.ReferenceAnswer != nil {
		q.ReferenceAnswer = *p.ReferenceAnswer
	}

	out := *q
	return &out, nil
}

// DeleteQuestion removes the question with the given id.
func (r *MemoryRepository) DeleteQuestion(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.questions[id]; !ok {
		return ErrQuestionNotFound
	}
	delete(r.questions, id)
	for i, qid := range r.order {
		if qid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// CreateSignup stores a signup, rejecting duplicate emails.
func (r *MemoryRepository) CreateSignup(ctx context.Context, s *Signup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.signups[s.Email]; ok {
		return ErrEmailExists
	}
	stored := *s
	r.signups[s.Email] = &stored
	return nil
}

// Ping always succeeds for the in-memory repository.
func (r *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory repository.
func (r *MemoryRepository) Close() error {
	return nil
}
