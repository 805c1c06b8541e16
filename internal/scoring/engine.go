package scoring

import (
	"github.com/kenniky/ultrank-scoring/internal/domain"
)

// Options selects the optional behaviors of one computation.
type Options struct {
	// Invitational applies the bonus-point overlay.
	Invitational bool

	// CountDQs reports entrant arithmetic as "raw - DQs = net".
	// Reporting only; the score always uses the full entrant count.
	CountDQs bool

	// Phases are the bracket phase names the result data came from.
	// Informational only.
	Phases []string
}

// Compute runs one tiering computation. Pure: no I/O, no retained
// state, and identical inputs produce an identical result no matter
// how the input containers are ordered.
//
// A nil dqs map means DQ data was unavailable for the event (bracket
// not progressed far enough), which disables DQ reporting even when
// Options.CountDQs is set.
func Compute(entrants []domain.Entrant, dqs map[string]domain.Disqualification, addr domain.Address, store *ReferenceStore, opts Options) (*domain.TieringResult, error) {
	entrants = dedupe(entrants)

	region, err := BestRegion(store.Regions(), addr)
	if err != nil {
		return nil, err
	}

	// Disqualified players count as entrants even when they never
	// appear in the entrant list itself.
	ids := make(map[string]struct{}, len(entrants))
	for _, e := range entrants {
		ids[e.ID] = struct{}{}
	}
	dqOnly := 0
	for id := range dqs {
		if _, ok := ids[id]; !ok {
			dqOnly++
		}
	}
	entrantCount := len(entrants) + dqOnly

	res := Resolve(entrants, dqs, store, opts.Invitational)

	score := entrantCount * region.Multiplier
	for _, c := range res.Exact {
		score += c.Points
	}

	result := &domain.TieringResult{
		Score:     score,
		Entrants:  entrantCount,
		Region:    region,
		Exact:     res.Exact,
		DQs:       res.DQs,
		Ambiguous: res.Ambiguous,
		Phases:    opts.Phases,
	}
	result.MaxPotential = score + optimisticPoints(res)

	if opts.CountDQs && dqs != nil {
		result.DQTracked = true
		result.DQCount = dqOnly
	}

	return result, nil
}

// optimisticPoints bounds the score uncertainty: the best resolvable
// points per identity across every ambiguous match and every
// disqualified player. One identity counts once, at its maximum, even
// when it shows up in both pools.
func optimisticPoints(res Resolution) int {
	best := make(map[string]int)

	for _, m := range res.Ambiguous {
		if m.Points > best[m.EntrantID] {
			best[m.EntrantID] = m.Points
		}
	}
	for _, dq := range res.DQs {
		id := dq.Contribution.Player.ID
		if dq.Contribution.Points > best[id] {
			best[id] = dq.Contribution.Points
		}
	}

	total := 0
	for _, points := range best {
		total += points
	}
	return total
}

func dedupe(entrants []domain.Entrant) []domain.Entrant {
	seen := make(map[domain.Entrant]struct{}, len(entrants))
	out := make([]domain.Entrant, 0, len(entrants))
	for _, e := range entrants {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
