package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 25
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	} else {
		poolConfig.MinConns = 5
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// ListQuestions returns all questions, oldest first.
func (r *PostgresRepository) ListQuestions(ctx context.Context) ([]*Question, error) {
	query := `
		SELECT id, question_text, category, competency, difficulty, reference_answer, create_at
		FROM questions
		ORDER BY create_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []*Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// GetQuestion retrieves a question by id.
func (r *PostgresRepository) GetQuestion(ctx context.Context, id string) (*Question, error) {
	query := `
		SELECT id, question_text, category, competency, difficulty, reference_answer, create_at
		FROM questions
		WHERE id = $1
	`

	q, err := scanQuestion(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

// CreateQuestion inserts a new question record.
func (r *PostgresRepository) CreateQuestion(ctx context.Context, q *Question) error {
	query := `
		INSERT INTO questions (id, question_text, category, competency, difficulty, reference_answer, create_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		q.ID,
		q.QuestionText,
		q.Category,
		nullString(q.Competency),
		q.Difficulty,
		nullString(q.ReferenceAnswer),
		q.CreateAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// UpdateQuestion applies the non-nil fields of the patch and returns the
// updated record.
func (r *PostgresRepository) UpdateQuestion(ctx context.Context, id string, p Patch) (*Question, error) {
	query := `
		UPDATE questions
		SET question_text    = COALESCE($2, question_text),
		    category         = COALESCE($3, category),
		    difficulty       = COALESCE($4, difficulty),
		    reference_answer = COALESCE($5, reference_answer)
		WHERE id = $1
		RETURNING id, question_text, category, competency, difficulty, reference_answer, create_at
	`

	q, err := scanQuestion(r.pool.QueryRow(ctx, query, id,
		p.QuestionText, p.Category, p.Difficulty, p.ReferenceAnswer))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

// DeleteQuestion removes a question by id.
func (r *PostgresRepository) DeleteQuestion(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// CreateSignup inserts a signup record, rejecting duplicate emails.
func (r *PostgresRepository) CreateSignup(ctx context.Context, s *Signup) error {
	query := `
		INSERT INTO signups (email, username, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query, s.Email, s.Username, s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create signup: %w", err)
	}
	return nil
}

func scanQuestion(row pgx.Row) (*Question, error) {
	var q Question
	var competency, referenceAnswer sql.NullString

	err := row.Scan(
		&q.ID,
		&q.QuestionText,
		&q.Category,
		&competency,
		&q.Difficulty,
		&referenceAnswer,
		&q.CreateAt,
	)
	if err != nil {
		return nil, err
	}

	q.Competency = competency.String
	q.ReferenceAnswer = referenceAnswer.String
	return &q, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
