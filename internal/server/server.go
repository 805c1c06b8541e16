package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/kenniky/ultrank-scoring/internal/domain"
	"github.com/kenniky/ultrank-scoring/internal/repository"
	"github.com/kenniky/ultrank-scoring/internal/scoring"
	"github.com/kenniky/ultrank-scoring/internal/startgg"
)

// Tiering is the slice of the tiering service the HTTP layer needs.
type Tiering interface {
	CalculateTier(ctx context.Context, slug string, invitational bool) (*domain.TieringResult, error)
	StoredResult(ctx context.Context, slug string) (*domain.StoredResult, error)
	StoredResults(ctx context.Context) ([]domain.StoredResult, error)
}

type Server struct {
	svc    Tiering
	logger zerolog.Logger
}

func NewServer(svc Tiering, logger zerolog.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

// Routes wires the API endpoints onto a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/tier", s.handleCalculate)
	mux.HandleFunc("GET /api/v1/results", s.handleResults)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

type calculateRequest struct {
	Slug         string `json:"slug"`
	Invitational bool   `json:"invitational"`
}

type contributionResponse struct {
	Tag     string `json:"tag"`
	ID      string `json:"id,omitempty"`
	Points  int    `json:"points"`
	Note    string `json:"note"`
	DQCount int    `json:"dq_count,omitempty"`
}

type tierResponse struct {
	Slug         string                 `json:"slug"`
	Score        int                    `json:"score"`
	MaxPotential int                    `json:"max_potential"`
	Entrants     int                    `json:"entrants"`
	DQCount      *int                   `json:"dq_count,omitempty"`
	Region       string                 `json:"region"`
	Multiplier   int                    `json:"multiplier"`
	Phases       []string               `json:"phases,omitempty"`
	Exact        []contributionResponse `json:"players,omitempty"`
	DQs          []contributionResponse `json:"dqs,omitempty"`
	Ambiguous    []contributionResponse `json:"ambiguous,omitempty"`
	Report       string                 `json:"report"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Slug == "" {
		s.writeError(w, http.StatusBadRequest, "slug is required")
		return
	}

	result, err := s.svc.CalculateTier(r.Context(), req.Slug, req.Invitational)
	if err != nil {
		if errors.Is(err, startgg.ErrInvalidSlug) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error().Err(err).Str("slug", req.Slug).Msg("tier calculation failed")
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, toTierResponse(req.Slug, result))
}

type storedResponse struct {
	Slug         string    `json:"slug"`
	Score        int       `json:"score"`
	MaxPotential int       `json:"max_potential"`
	Entrants     int       `json:"entrants"`
	Invitational bool      `json:"invitational"`
	Report       string    `json:"report"`
	ComputedAt   time.Time `json:"computed_at"`
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")

	if slug == "" {
		results, err := s.svc.StoredResults(r.Context())
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out := make([]storedResponse, len(results))
		for i, res := range results {
			out[i] = toStoredResponse(&res)
		}
		s.writeJSON(w, http.StatusOK, out)
		return
	}

	result, err := s.svc.StoredResult(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "no result for slug")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, toStoredResponse(result))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toTierResponse(slug string, result *domain.TieringResult) tierResponse {
	resp := tierResponse{
		Slug:         slug,
		Score:        result.Score,
		MaxPotential: result.MaxPotential,
		Entrants:     result.Entrants,
		Region:       result.Region.String(),
		Multiplier:   result.Region.Multiplier,
		Phases:       result.Phases,
		Report:       scoring.Report(result),
	}
	if result.DQTracked {
		count := result.DQCount
		resp.DQCount = &count
	}

	for _, c := range result.Exact {
		resp.Exact = append(resp.Exact, contributionResponse{
			Tag:    c.EntrantTag,
			ID:     c.Player.ID,
			Points: c.Points,
			Note:   c.Player.Note,
		})
	}
	for _, dq := range result.DQs {
		resp.DQs = append(resp.DQs, contributionResponse{
			Tag:     dq.Contribution.EntrantTag,
			ID:      dq.Contribution.Player.ID,
			Points:  dq.Contribution.Points,
			Note:    dq.Contribution.Player.Note,
			DQCount: dq.DQCount,
		})
	}
	for _, m := range result.Ambiguous {
		resp.Ambiguous = append(resp.Ambiguous, contributionResponse{
			Tag:     m.EntrantTag,
			ID:      m.EntrantID,
			Points:  m.Points,
			Note:    m.Note,
			DQCount: m.DQCount,
		})
	}
	return resp
}

func toStoredResponse(r *domain.StoredResult) storedResponse {
	return storedResponse{
		Slug:         r.Slug,
		Score:        r.Score,
		MaxPotential: r.MaxPotential,
		Entrants:     r.Entrants,
		Invitational: r.Invitational,
		Report:       r.Report,
		ComputedAt:   r.ComputedAt,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
