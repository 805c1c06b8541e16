package startgg

import (
	"github.com/kenniky/ultrank-scoring/internal/domain"
)

// Set is one completed bracket set.
type Set struct {
	WPlacement int       `json:"wPlacement"`
	WinnerID   *int64    `json:"winnerId"`
	Slots      []SetSlot `json:"slots"`
}

type SetSlot struct {
	Entrant  SlotEntrant `json:"entrant"`
	Standing *Standing   `json:"standing"`
}

type SlotEntrant struct {
	ID           int64            `json:"id"`
	Participants []participantRef `json:"participants"`
}

type Standing struct {
	Stats struct {
		Score struct {
			Value *float64 `json:"value"`
		} `json:"score"`
	} `json:"stats"`
}

// dqScore is the sentinel start.gg records for a disqualification
// loss instead of a real game count.
const dqScore = -1

// ScanSets walks completed sets and splits the players into real
// participants and disqualifications. A set with no winner is
// skipped. The losing side is a DQ when neither slot has a standing
// or when the loser's recorded score is the DQ sentinel; repeated DQs
// by one player accumulate. Everyone else in a set with a real score
// is recorded as a participant.
func ScanSets(sets []Set) (map[string]domain.Disqualification, []domain.Entrant) {
	dqs := make(map[string]domain.Disqualification)
	seen := make(map[domain.Entrant]struct{})
	var participants []domain.Entrant

	addParticipant := func(e domain.Entrant) {
		if _, ok := seen[e]; !ok {
			seen[e] = struct{}{}
			participants = append(participants, e)
		}
	}

	recordDQ := func(e domain.Entrant) {
		dq, ok := dqs[e.ID]
		if !ok {
			dq = domain.Disqualification{Entrant: e}
		}
		dq.Count++
		dqs[e.ID] = dq
	}

	for _, set := range sets {
		if set.WinnerID == nil || len(set.Slots) < 2 {
			continue
		}
		if len(set.Slots[0].Entrant.Participants) == 0 || len(set.Slots[1].Entrant.Participants) == 0 {
			continue
		}

		loser := 0
		if *set.WinnerID == set.Slots[0].Entrant.ID {
			loser = 1
		}

		player0 := toEntrant(set.Slots[0].Entrant.Participants[0].Player)
		player1 := toEntrant(set.Slots[1].Entrant.Participants[0].Player)
		loserPlayer := player0
		if loser == 1 {
			loserPlayer = player1
		}

		if set.Slots[0].Standing == nil && set.Slots[1].Standing == nil {
			recordDQ(loserPlayer)
			continue
		}

		standing := set.Slots[loser].Standing
		if standing != nil && standing.Stats.Score.Value != nil && *standing.Stats.Score.Value == dqScore {
			recordDQ(loserPlayer)
			continue
		}

		addParticipant(player0)
		addParticipant(player1)
	}

	return dqs, participants
}
