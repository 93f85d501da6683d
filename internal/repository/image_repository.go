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

type imageRepository struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO images (image_id, post_id, image_url, object_name, created_at)
		VALUES (:image_id, :post_id, :image_url, :object_name, :created_at)
	`

	if image.ImageID == "" {
		image.ImageID = uuid.New().String()
	}

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.NamedExecContext(ctx, query, image)
	if err != nil {
		return fmt.Errorf("erreur lors de l'enregistrement de l'image : %w", err)
	}

	return nil
}

func (r *imageRepository) GetByImageID(ctx context.Context, imageID string) (*models.Image, error) {
	query := `SELECT image_id, post_id, image_url, object_name, created_at FROM images WHERE image_id = $1`

	var image models.Image
	err := r.db.GetContext(ctx, &image, query, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("image %s : %w", imageID, ErrNotFound)
		}
		return nil, fmt.Errorf("erreur lors de la récupération de l'image : %w", err)
	}

	return &image, nil
}

func (r *imageRepository) GetByPostID(ctx context.Context, postID string) ([]models.Image, error) {
	query := `SELECT image_id, post_id, image_url, object_name, created_at FROM images WHERE post_id = $1 ORDER BY created_at`

	images := []models.Image{}
	err := r.db.SelectContext(ctx, &images, query, postID)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la récupération des images : %w", err)
	}

	return images, nil
}

func (r *imageRepository) Delete(ctx context.Context, imageID string) error {
	query := `DELETE FROM images WHERE image_id = $1`

	result, err := r.db.ExecContext(ctx, query, imageID)
	if err != nil {
		return fmt.Errorf("erreur lors de la suppression de l'image : %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erreur lors de la vérification des lignes supprimées : %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("image %s : %w", imageID, ErrNotFound)
	}

	return nil
}
