package repository

import (
	"anonforum/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const threadViewSelect = `
	SELECT t.thread_id, t.alias_id, t.title, t.body, t.slug, t.category, t.created_at, t.updated_at,
		a.name AS alias_name, u.display_username AS display_username
	FROM threads t
	LEFT JOIN aliases a ON a.alias_id = t.alias_id
	LEFT JOIN users u ON u.user_id = a.user_id
`

type threadRepository struct {
	db *sqlx.DB
}

func NewThreadRepository(db *sqlx.DB) ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) Create(ctx context.Context, thread *models.Thread) error {
	query := `
		INSERT INTO threads (thread_id, alias_id, title, body, slug, category, created_at, updated_at)
		VALUES (:thread_id, :alias_id, :title, :body, :slug, :category, :created_at, :updated_at)
	`

	if thread.ThreadID == "" {
		thread.ThreadID = uuid.New().String()
	}

	now := time.Now().UTC()
	thread.CreatedAt = now
	thread.UpdatedAt = now

	if _, err := r.db.NamedExecContext(ctx, query, thread); err != nil {
		if ce := asConstraintError(err); ce != nil {
			return ce
		}
		return fmt.Errorf("erreur lors de la création du sujet : %w", err)
	}

	return nil
}

func (r *threadRepository) GetByID(ctx context.Context, threadID string) (*models.ThreadView, error) {
	query := threadViewSelect + ` WHERE t.thread_id = $1`

	var thread models.ThreadView
	err := r.db.GetContext(ctx, &thread, query, threadID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sujet %s : %w", threadID, ErrNotFound)
		}
		return nil, fmt.Errorf("erreur lors de la récupération du sujet : %w", err)
	}

	return &thread, nil
}

// List returns threads newest first. An empty category lists every category.
func (r *threadRepository) List(ctx context.Context, category string, limit, offset int) ([]models.ThreadView, error) {
	query := threadViewSelect + `
		WHERE ($1 = '' OR LOWER(t.category) = LOWER($1))
		ORDER BY t.created_at DESC
		LIMIT $2 OFFSET $3
	`

	threads := []models.ThreadView{}
	if err := r.db.SelectContext(ctx, &threads, query, category, limit, offset); err != nil {
		return nil, fmt.Errorf("erreur lors de la récupération des sujets : %w", err)
	}

	return threads, nil
}
