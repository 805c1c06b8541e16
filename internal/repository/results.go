package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"github.com/kenniky/ultrank-scoring/internal/domain"
)

// ErrNotFound is returned when no stored result exists for a slug.
var ErrNotFound = errors.New("result not found")

type ResultRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewResultRepository(db *sql.DB, logger zerolog.Logger) *ResultRepository {
	return &ResultRepository{db: db, logger: logger}
}

// Save upserts the computed result for a slug, keeping one row per
// event.
func (r *ResultRepository) Save(ctx context.Context, result *domain.StoredResult) error {
	if result.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("generating result id: %w", err)
		}
		result.ID = id
	}

	now := time.Now().UTC()
	result.CreatedAt = now
	result.UpdatedAt = now

	const query = `
		INSERT INTO tiering_results (id, slug, score, max_potential, entrants, invitational, report, computed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET
			score = excluded.score,
			max_potential = excluded.max_potential,
			entrants = excluded.entrants,
			invitational = excluded.invitational,
			report = excluded.report,
			computed_at = excluded.computed_at,
			updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		result.ID,
		result.Slug,
		result.Score,
		result.MaxPotential,
		result.Entrants,
		result.Invitational,
		result.Report,
		result.ComputedAt,
		result.CreatedAt,
		result.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("slug", result.Slug).Msg("failed to save result")
		return fmt.Errorf("saving result: %w", err)
	}

	r.logger.Debug().Str("slug", result.Slug).Int("score", result.Score).Msg("result saved")
	return nil
}

// GetBySlug returns the stored result for one event.
func (r *ResultRepository) GetBySlug(ctx context.Context, slug string) (*domain.StoredResult, error) {
	const query = `
		SELECT id, slug, score, max_potential, entrants, invitational, report, computed_at, created_at, updated_at
		FROM tiering_results
		WHERE slug = ?`

	var result domain.StoredResult
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&result.ID,
		&result.Slug,
		&result.Score,
		&result.MaxPotential,
		&result.Entrants,
		&result.Invitational,
		&result.Report,
		&result.ComputedAt,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading result for %s: %w", slug, err)
	}
	return &result, nil
}

// List returns every stored result, most recently computed first.
func (r *ResultRepository) List(ctx context.Context) ([]domain.StoredResult, error) {
	const query = `
		SELECT id, slug, score, max_potential, entrants, invitational, report, computed_at, created_at, updated_at
		FROM tiering_results
		ORDER BY computed_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	defer rows.Close()

	var results []domain.StoredResult
	for rows.Next() {
		var result domain.StoredResult
		if err := rows.Scan(
			&result.ID,
			&result.Slug,
			&result.Score,
			&result.MaxPotential,
			&result.Entrants,
			&result.Invitational,
			&result.Report,
			&result.ComputedAt,
			&result.CreatedAt,
			&result.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
