package scoring

import (
	"sort"

	"github.com/kenniky/ultrank-scoring/internal/domain"
)

// Resolution classifies every entrant of an event against the
// reference store. Unscored entrants are dropped silently; absence of
// a match is a normal outcome, never an error.
type Resolution struct {
	Exact     []domain.ExactContribution
	Ambiguous []domain.AmbiguousMatch
	DQs       []domain.DisqualifiedPlayer
}

// Resolve matches entrants by identity first and by tag second.
//
// Entrants with a DQ record are excluded from the main pass; their
// resolution runs separately so a disqualified player's points never
// enter the committed total. A tag hit against a record with a
// different identity becomes an AmbiguousMatch, one per candidate
// record.
//
// The output ordering is fixed regardless of input ordering: exact
// contributions descend by points, DQs descend by (count, points),
// ambiguous matches ascend by (DQ count, entrant tag).
func Resolve(entrants []domain.Entrant, dqs map[string]domain.Disqualification, store *ReferenceStore, invitational bool) Resolution {
	var res Resolution

	ordered := make([]domain.Entrant, len(entrants))
	copy(ordered, entrants)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].ID != ordered[j].ID {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].Tag < ordered[j].Tag
	})

	for _, entrant := range ordered {
		if _, disqualified := dqs[entrant.ID]; disqualified {
			continue
		}

		if rec, ok := store.Player(entrant.ID); ok {
			res.Exact = append(res.Exact, domain.ExactContribution{
				Player:     rec,
				EntrantTag: entrant.Tag,
				Points:     rec.Score(invitational),
			})
			continue
		}

		for _, cand := range store.TagCandidates(entrant.Tag) {
			res.Ambiguous = append(res.Ambiguous, domain.AmbiguousMatch{
				EntrantTag: entrant.Tag,
				EntrantID:  entrant.ID,
				Points:     cand.Score(invitational),
				Note:       cand.Note,
			})
		}
	}

	for _, id := range sortedKeys(dqs) {
		dq := dqs[id]

		if rec, ok := store.Player(dq.Entrant.ID); ok {
			res.DQs = append(res.DQs, domain.DisqualifiedPlayer{
				Contribution: domain.ExactContribution{
					Player:     rec,
					EntrantTag: dq.Entrant.Tag,
					Points:     rec.Score(invitational),
				},
				DQCount: dq.Count,
			})
			continue
		}

		for _, cand := range store.TagCandidates(dq.Entrant.Tag) {
			res.Ambiguous = append(res.Ambiguous, domain.AmbiguousMatch{
				EntrantTag: dq.Entrant.Tag,
				EntrantID:  dq.Entrant.ID,
				Points:     cand.Score(invitational),
				Note:       cand.Note,
				DQCount:    dq.Count,
			})
		}
	}

	sort.SliceStable(res.Exact, func(i, j int) bool {
		return res.Exact[i].Points > res.Exact[j].Points
	})
	sort.SliceStable(res.DQs, func(i, j int) bool {
		if res.DQs[i].DQCount != res.DQs[j].DQCount {
			return res.DQs[i].DQCount > res.DQs[j].DQCount
		}
		return res.DQs[i].Contribution.Points > res.DQs[j].Contribution.Points
	})
	sort.SliceStable(res.Ambiguous, func(i, j int) bool {
		if res.Ambiguous[i].DQCount != res.Ambiguous[j].DQCount {
			return res.Ambiguous[i].DQCount < res.Ambiguous[j].DQCount
		}
		return res.Ambiguous[i].EntrantTag < res.Ambiguous[j].EntrantTag
	})

	return res
}

func sortedKeys(m map[string]domain.Disqualification) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
