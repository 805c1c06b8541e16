package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kenniky/ultrank-scoring/internal/config"
	"github.com/kenniky/ultrank-scoring/internal/constants"
	"github.com/kenniky/ultrank-scoring/internal/domain"
	"github.com/kenniky/ultrank-scoring/internal/geocode"
	"github.com/kenniky/ultrank-scoring/internal/repository"
	"github.com/kenniky/ultrank-scoring/internal/scoring"
	"github.com/kenniky/ultrank-scoring/internal/startgg"
)

// TieringService drives one full tier computation per call: bracket
// and venue data from start.gg, the venue address from Nominatim, the
// pure scoring computation, and persistence of the outcome. Calls are
// independent; the service holds no per-event state and is safe to
// invoke concurrently for different slugs.
type TieringService struct {
	gg      *startgg.Client
	geo     *geocode.Client
	store   *scoring.ReferenceStore
	results *repository.ResultRepository
	cfg     *config.Config
	logger  zerolog.Logger
}

func NewTieringService(
	gg *startgg.Client,
	geo *geocode.Client,
	store *scoring.ReferenceStore,
	results *repository.ResultRepository,
	cfg *config.Config,
	logger zerolog.Logger,
) *TieringService {
	return &TieringService{
		gg:      gg,
		geo:     geo,
		store:   store,
		results: results,
		cfg:     cfg,
		logger:  logger,
	}
}

// CalculateTier computes and persists the tier for one event slug.
func (s *TieringService) CalculateTier(ctx context.Context, slug string, invitational bool) (*domain.TieringResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if !startgg.ValidSlug(slug) {
		return nil, fmt.Errorf("%w: %q", startgg.ErrInvalidSlug, slug)
	}

	s.logger.Info().Str("slug", slug).Bool("invitational", invitational).Msg("calculating tier")

	phases, err := s.gg.Phases(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}

	var (
		entrants   []domain.Entrant
		dqs        map[string]domain.Disqualification
		phaseNames []string
		addr       domain.Address
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// DQ detection needs completed sets; before any main phase
		// finishes, the plain entrant list is all there is.
		if startgg.HasCompletedMainPhase(phases) {
			main := startgg.MainPhases(phases)
			ids := make([]int64, len(main))
			for i, p := range main {
				ids[i] = p.ID
				phaseNames = append(phaseNames, p.Name)
			}

			sets, err := s.gg.Sets(gctx, slug, ids)
			if err != nil {
				return fmt.Errorf("listing sets: %w", err)
			}
			dqs, entrants = startgg.ScanSets(sets)
			return nil
		}

		list, err := s.gg.Entrants(gctx, slug)
		if err != nil {
			return fmt.Errorf("listing entrants: %w", err)
		}
		entrants = list
		return nil
	})

	g.Go(func() error {
		lat, lng, err := s.gg.Location(gctx, slug)
		if err != nil {
			return fmt.Errorf("fetching venue location: %w", err)
		}
		resolved, err := s.geo.Reverse(gctx, lat, lng)
		if err != nil {
			return err
		}
		addr = resolved
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result, err := scoring.Compute(entrants, dqs, addr, s.store, scoring.Options{
		Invitational: invitational,
		CountDQs:     s.cfg.CountDQs,
		Phases:       phaseNames,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("slug", slug).
		Int("score", result.Score).
		Int("max_potential", result.MaxPotential).
		Int("entrants", result.Entrants).
		Msg("tier computed")

	stored := &domain.StoredResult{
		Slug:         slug,
		Score:        result.Score,
		MaxPotential: result.MaxPotential,
		Entrants:     result.Entrants,
		Invitational: invitational,
		Report:       scoring.Report(result),
		ComputedAt:   time.Now().UTC(),
	}
	if err := s.results.Save(ctx, stored); err != nil {
		// A computed result is still useful when persistence fails.
		s.logger.Warn().Err(err).Str("slug", slug).Msg("failed to persist result")
	}

	return result, nil
}

// StoredResult returns the persisted result for a slug.
func (s *TieringService) StoredResult(ctx context.Context, slug string) (*domain.StoredResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.results.GetBySlug(ctx, slug)
}

// StoredResults lists every persisted result.
func (s *TieringService) StoredResults(ctx context.Context) ([]domain.StoredResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.results.List(ctx)
}
