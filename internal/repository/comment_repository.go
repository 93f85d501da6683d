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

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (comment_id, post_id, alias_id, parent_id, content, is_anonymous, created_at, updated_at)
		VALUES (:comment_id, :post_id, :alias_id, :parent_id, :content, :is_anonymous, :created_at, :updated_at)
	`

	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}

	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("erreur lors de la création du commentaire : %w", err)
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	query := `
		SELECT comment_id, post_id, alias_id, parent_id, content, is_anonymous, created_at, updated_at, deleted_at
		FROM comments
		WHERE comment_id = $1 AND deleted_at IS NULL
	`

	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("commentaire %s : %w", commentID, ErrNotFound)
		}
		return nil, fmt.Errorf("erreur lors de la récupération du commentaire : %w", err)
	}

	return &comment, nil
}

// ListByPost returns comments oldest first so replies follow their parent.
func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]models.CommentView, error) {
	query := `
		SELECT c.comment_id, c.post_id, c.alias_id, c.parent_id, c.content, c.is_anonymous,
			c.created_at, c.updated_at, c.deleted_at,
			a.name AS alias_name, u.display_username AS display_username,
			t.category AS thread_category, COALESCE(p.is_sensitive, FALSE) AS post_is_sensitive
		FROM comments c
		LEFT JOIN aliases a ON a.alias_id = c.alias_id
		LEFT JOIN users u ON u.user_id = a.user_id
		LEFT JOIN posts p ON p.post_id = c.post_id
		LEFT JOIN threads t ON t.thread_id = p.thread_id
		WHERE c.post_id = $1 AND c.deleted_at IS NULL
		ORDER BY c.created_at
	`

	comments := []models.CommentView{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("erreur lors de la récupération des commentaires : %w", err)
	}

	return comments, nil
}
