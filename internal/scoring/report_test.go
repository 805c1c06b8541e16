package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenniky/ultrank-scoring/internal/domain"
)

func TestReport_FullBreakdown(t *testing.T) {
	result := &domain.TieringResult{
		Score:    219,
		Entrants: 64,
		Region:   domain.RegionRule{CountryCode: "us", Multiplier: 3, Note: "East Coast"},
		Phases:   []string{"Bracket Pools", "Top 64"},
		Exact: []domain.ExactContribution{
			{Player: domain.PlayerRecord{ID: "1", Tag: "Foo", Points: 20, Note: "top 50"}, EntrantTag: "TSM | Foo", Points: 20},
			{Player: domain.PlayerRecord{ID: "2", Tag: "Mid", Points: 7}, EntrantTag: "Mid", Points: 7},
		},
		DQs: []domain.DisqualifiedPlayer{
			{Contribution: domain.ExactContribution{Player: domain.PlayerRecord{ID: "3", Tag: "Gone", Points: 15, Note: "retired"}, EntrantTag: "Gone", Points: 15}, DQCount: 2},
		},
		Ambiguous: []domain.AmbiguousMatch{
			{EntrantTag: "bar", EntrantID: "7", Points: 50, Note: "top 10"},
		},
	}

	report := Report(result)

	assert.Contains(t, report, "Phases used: [Bracket Pools, Top 64]")
	assert.Contains(t, report, "Entrants: 64 x 3 [East Coast] = 192")
	assert.Contains(t, report, "  TSM | Foo (aka Foo) - 20 points [top 50]")
	assert.Contains(t, report, "  Mid - 7 points []")
	assert.Contains(t, report, "Total Score: 219")
	assert.Contains(t, report, "DQs\n  Gone - 15 points [retired] - 2 DQs")
	assert.Contains(t, report, "Potentially Mismatched Players\n  bar (id 7) - 50 points [top 10]")
}

func TestReport_DQArithmeticHeader(t *testing.T) {
	result := &domain.TieringResult{
		Score:     66,
		Entrants:  66,
		DQCount:   2,
		DQTracked: true,
		Region:    domain.RegionRule{Multiplier: 1, Note: "All Other Regions"},
	}

	report := Report(result)
	assert.Contains(t, report, "Entrants: 66 - 2 DQs = 64 x 1 [All Other Regions] = 66")
}

func TestReport_OmitsEmptySections(t *testing.T) {
	result := &domain.TieringResult{
		Score:    10,
		Entrants: 10,
		Region:   domain.RegionRule{Multiplier: 1},
	}

	report := Report(result)
	require.NotContains(t, report, "DQs")
	require.NotContains(t, report, "Potentially Mismatched Players")
	assert.Contains(t, report, "Entrants: 10 x 1 [] = 10")
}

func TestAmbiguousMatchString_DQSuffix(t *testing.T) {
	m := domain.AmbiguousMatch{EntrantTag: "bar", EntrantID: "7", Points: 50, Note: "n", DQCount: 1}
	assert.Equal(t, "bar (id 7) - 50 points [n] - 1 DQ", m.String())
}
