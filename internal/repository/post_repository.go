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
	"github.com/lib/pq"
)

const postViewSelect = `
	SELECT p.post_id, p.thread_id, p.alias_id, p.content, p.is_sensitive, p.content_warnings,
		p.created_at, p.updated_at, p.deleted_at,
		a.name AS alias_name, u.display_username AS display_username,
		t.title AS thread_title, t.category AS thread_category
	FROM posts p
	LEFT JOIN aliases a ON a.alias_id = p.alias_id
	LEFT JOIN users u ON u.user_id = a.user_id
	LEFT JOIN threads t ON t.thread_id = p.thread_id
`

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts
		(post_id, thread_id, alias_id, content, is_sensitive, content_warnings, created_at, updated_at)
		VALUES
		(:post_id, :thread_id, :alias_id, :content, :is_sensitive, :content_warnings, :created_at, :updated_at)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	if post.ContentWarnings == nil {
		post.ContentWarnings = pq.StringArray{}
	}

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("erreur lors de la création du message : %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `
		SELECT post_id, thread_id, alias_id, content, is_sensitive, content_warnings, created_at, updated_at, deleted_at
		FROM posts
		WHERE post_id = $1 AND deleted_at IS NULL
	`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("message %s : %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("erreur lors de la récupération du message : %w", err)
	}

	return &post, nil
}

func (r *postRepository) ListByThread(ctx context.Context, threadID string) ([]models.PostView, error) {
	query := postViewSelect + `
		WHERE p.thread_id = $1 AND p.deleted_at IS NULL
		ORDER BY p.created_at DESC
	`

	posts := []models.PostView{}
	if err := r.db.SelectContext(ctx, &posts, query, threadID); err != nil {
		return nil, fmt.Errorf("erreur lors de la récupération des messages : %w", err)
	}

	return posts, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]models.PostView, error) {
	query := postViewSelect + `
		WHERE p.deleted_at IS NULL
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`

	posts := []models.PostView{}
	if err := r.db.SelectContext(ctx, &posts, query, limit, offset); err != nil {
		return nil, fmt.Errorf("erreur lors de la récupération des messages : %w", err)
	}

	return posts, nil
}
