package repository

import (
	"anonforum/internal/models"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Counts(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats

	err := r.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM aliases) AS aliases,
			(SELECT COUNT(*) FROM threads) AS threads,
			(SELECT COUNT(*) FROM posts WHERE deleted_at IS NULL) AS posts,
			(SELECT COUNT(*) FROM comments WHERE deleted_at IS NULL) AS comments
	`)
	if err != nil {
		return nil, fmt.Errorf("erreur lors du calcul des statistiques : %w", err)
	}

	return &stats, nil
}
