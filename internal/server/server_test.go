package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenniky/ultrank-scoring/internal/domain"
	"github.com/kenniky/ultrank-scoring/internal/repository"
	"github.com/kenniky/ultrank-scoring/internal/startgg"
)

type fakeTiering struct {
	result *domain.TieringResult
	stored *domain.StoredResult
	err    error
}

func (f *fakeTiering) CalculateTier(_ context.Context, _ string, _ bool) (*domain.TieringResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeTiering) StoredResult(_ context.Context, _ string) (*domain.StoredResult, error) {
	if f.stored == nil {
		return nil, repository.ErrNotFound
	}
	return f.stored, nil
}

func (f *fakeTiering) StoredResults(_ context.Context) ([]domain.StoredResult, error) {
	if f.stored == nil {
		return nil, nil
	}
	return []domain.StoredResult{*f.stored}, nil
}

func newTestServer(svc Tiering) *httptest.Server {
	return httptest.NewServer(NewServer(svc, zerolog.Nop()).Routes())
}

func TestHandleCalculate(t *testing.T) {
	svc := &fakeTiering{
		result: &domain.TieringResult{
			Score:        102,
			MaxPotential: 152,
			Entrants:     2,
			Region:       domain.RegionRule{Multiplier: 1, Note: "All Other Regions"},
			Exact: []domain.ExactContribution{
				{Player: domain.PlayerRecord{ID: "1", Tag: "Foo", Points: 100}, EntrantTag: "Foo", Points: 100},
			},
			Ambiguous: []domain.AmbiguousMatch{
				{EntrantTag: "Bar", EntrantID: "2", Points: 50},
			},
		},
	}
	srv := newTestServer(svc)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/tier", "application/json",
		strings.NewReader(`{"slug":"tournament/t/event/e"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body tierResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 102, body.Score)
	assert.Equal(t, 152, body.MaxPotential)
	assert.Equal(t, 2, body.Entrants)
	require.Len(t, body.Exact, 1)
	require.Len(t, body.Ambiguous, 1)
	assert.Contains(t, body.Report, "Total Score: 102")
}

func TestHandleCalculate_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		svc  *fakeTiering
		want int
	}{
		{
			name: "invalid json",
			body: `{`,
			svc:  &fakeTiering{},
			want: http.StatusBadRequest,
		},
		{
			name: "missing slug",
			body: `{}`,
			svc:  &fakeTiering{},
			want: http.StatusBadRequest,
		},
		{
			name: "invalid slug",
			body: `{"slug":"not-a-slug"}`,
			svc:  &fakeTiering{err: startgg.ErrInvalidSlug},
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(tt.svc)
			defer srv.Close()

			resp, err := http.Post(srv.URL+"/api/v1/tier", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestHandleResults_BySlug(t *testing.T) {
	svc := &fakeTiering{
		stored: &domain.StoredResult{
			Slug:       "tournament/t/event/e",
			Score:      200,
			Entrants:   64,
			Report:     "Total Score: 200",
			ComputedAt: time.Now().UTC(),
		},
	}
	srv := newTestServer(svc)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/results?slug=tournament/t/event/e")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body storedResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 200, body.Score)
	assert.Equal(t, 64, body.Entrants)
}

func TestHandleResults_NotFound(t *testing.T) {
	srv := newTestServer(&fakeTiering{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/results?slug=tournament/t/event/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleResults_List(t *testing.T) {
	svc := &fakeTiering{
		stored: &domain.StoredResult{Slug: "tournament/t/event/e", Score: 10},
	}
	srv := newTestServer(svc)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/results")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []storedResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "tournament/t/event/e", body[0].Slug)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&fakeTiering{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
