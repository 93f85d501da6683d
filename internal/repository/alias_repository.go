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

const aliasColumns = `alias_id, user_id, name, is_primary, rotation_enabled, created_at`

type aliasRepository struct {
	db *sqlx.DB
}

func NewAliasRepository(db *sqlx.DB) AliasRepository {
	return &aliasRepository{db: db}
}

func (r *aliasRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM aliases WHERE name = $1)`

	if err := r.db.GetContext(ctx, &exists, query, name); err != nil {
		return false, fmt.Errorf("erreur lors de la vérification de l'alias : %w", err)
	}

	return exists, nil
}

func (r *aliasRepository) GetPrimaryByUser(ctx context.Context, userID string) (*models.Alias, error) {
	query := `SELECT ` + aliasColumns + ` FROM aliases WHERE user_id = $1 AND is_primary LIMIT 1`

	return r.getOne(ctx, query, userID)
}

func (r *aliasRepository) GetByID(ctx context.Context, aliasID string) (*models.Alias, error) {
	query := `SELECT ` + aliasColumns + ` FROM aliases WHERE alias_id = $1`

	return r.getOne(ctx, query, aliasID)
}

func (r *aliasRepository) GetAllByUser(ctx context.Context, userID string) ([]models.Alias, error) {
	query := `SELECT ` + aliasColumns + ` FROM aliases WHERE user_id = $1 ORDER BY created_at, alias_id`

	aliases := []models.Alias{}
	if err := r.db.SelectContext(ctx, &aliases, query, userID); err != nil {
		return nil, fmt.Errorf("erreur lors de la récupération des alias : %w", err)
	}

	return aliases, nil
}

// Insert fills ID and CreatedAt. A duplicate name or a second primary alias
// for the same user comes back as a *ConstraintError.
func (r *aliasRepository) Insert(ctx context.Context, alias *models.Alias) error {
	query := `
		INSERT INTO aliases (alias_id, user_id, name, is_primary, rotation_enabled, created_at)
		VALUES (:alias_id, :user_id, :name, :is_primary, :rotation_enabled, :created_at)
	`

	alias.ID = uuid.New().String()
	alias.CreatedAt = time.Now().UTC()

	if _, err := r.db.NamedExecContext(ctx, query, alias); err != nil {
		alias.ID = ""
		if ce := asConstraintError(err); ce != nil {
			return ce
		}
		return fmt.Errorf("erreur lors de la création de l'alias : %w", err)
	}

	return nil
}

func (r *aliasRepository) getOne(ctx context.Context, query string, arg string) (*models.Alias, error) {
	var alias models.Alias

	err := r.db.GetContext(ctx, &alias, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erreur lors de la récupération de l'alias : %w", err)
	}

	return &alias, nil
}
