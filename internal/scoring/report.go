package scoring

import (
	"fmt"
	"strings"

	"github.com/kenniky/ultrank-scoring/internal/domain"
)

// Report renders a computed result as the operator-facing breakdown:
// entrant arithmetic, per-player contributions, the total, and the
// optional DQ and ambiguous-match sections.
func Report(r *domain.TieringResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Phases used: [%s]\n\n", strings.Join(r.Phases, ", "))

	entrants := fmt.Sprintf("%d", r.Entrants)
	if r.DQTracked {
		entrants = fmt.Sprintf("%d - %d DQs = %d", r.Entrants, r.DQCount, r.Entrants-r.DQCount)
	}
	fmt.Fprintf(&b, "Entrants: %s x %d [%s] = %d\n\n",
		entrants, r.Region.Multiplier, r.Region.Note, r.Entrants*r.Region.Multiplier)

	b.WriteString("Top Player Points:\n")
	for _, c := range r.Exact {
		fmt.Fprintf(&b, "  %s\n", c)
	}

	fmt.Fprintf(&b, "\nTotal Score: %d\n", r.Score)

	if len(r.DQs) > 0 {
		b.WriteString("\n-----\nDQs\n")
		for _, dq := range r.DQs {
			fmt.Fprintf(&b, "  %s\n", dq)
		}
	}

	if len(r.Ambiguous) > 0 {
		b.WriteString("\n-----\nPotentially Mismatched Players\n")
		for _, m := range r.Ambiguous {
			fmt.Fprintf(&b, "  %s\n", m)
		}
	}

	return b.String()
}
