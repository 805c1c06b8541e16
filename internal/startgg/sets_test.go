package startgg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenniky/ultrank-scoring/internal/domain"
)

func makeSet(winnerEntrant int64, slot0, slot1 playerRef, scores [2]*float64) Set {
	var set Set
	set.WinnerID = &winnerEntrant
	set.Slots = make([]SetSlot, 2)

	for i, p := range []playerRef{slot0, slot1} {
		set.Slots[i].Entrant.ID = int64(i + 1)
		set.Slots[i].Entrant.Participants = []participantRef{{Player: p}}
		if scores[i] != nil {
			standing := &Standing{}
			standing.Stats.Score.Value = scores[i]
			set.Slots[i].Standing = standing
		}
	}
	return set
}

func fptr(v float64) *float64 { return &v }

func TestScanSets_NormalSetRecordsParticipants(t *testing.T) {
	sets := []Set{
		makeSet(1, playerRef{ID: 10, GamerTag: "Foo"}, playerRef{ID: 20, GamerTag: "Bar"}, [2]*float64{fptr(3), fptr(1)}),
	}

	dqs, participants := ScanSets(sets)

	assert.Empty(t, dqs)
	assert.ElementsMatch(t, []domain.Entrant{
		{ID: "10", Tag: "Foo"},
		{ID: "20", Tag: "Bar"},
	}, participants)
}

func TestScanSets_NoStandingsMarksLoserDQ(t *testing.T) {
	sets := []Set{
		makeSet(1, playerRef{ID: 10, GamerTag: "Foo"}, playerRef{ID: 20, GamerTag: "Bar"}, [2]*float64{nil, nil}),
	}

	dqs, participants := ScanSets(sets)

	assert.Empty(t, participants)
	require.Len(t, dqs, 1)
	assert.Equal(t, domain.Disqualification{Entrant: domain.Entrant{ID: "20", Tag: "Bar"}, Count: 1}, dqs["20"])
}

func TestScanSets_SentinelScoreMarksLoserDQ(t *testing.T) {
	sets := []Set{
		// winner is slot 1's entrant, loser slot 0 carries the -1 sentinel
		makeSet(2, playerRef{ID: 10, GamerTag: "Foo"}, playerRef{ID: 20, GamerTag: "Bar"}, [2]*float64{fptr(-1), fptr(3)}),
	}

	dqs, participants := ScanSets(sets)

	assert.Empty(t, participants)
	require.Len(t, dqs, 1)
	assert.Equal(t, 1, dqs["10"].Count)
}

func TestScanSets_DQsAccumulate(t *testing.T) {
	loser := playerRef{ID: 20, GamerTag: "Bar"}
	sets := []Set{
		makeSet(1, playerRef{ID: 10, GamerTag: "Foo"}, loser, [2]*float64{nil, nil}),
		makeSet(1, playerRef{ID: 11, GamerTag: "Baz"}, loser, [2]*float64{fptr(3), fptr(-1)}),
	}

	dqs, _ := ScanSets(sets)

	require.Len(t, dqs, 1)
	assert.Equal(t, 2, dqs["20"].Count)
}

func TestScanSets_SkipsIncompleteSets(t *testing.T) {
	noWinner := makeSet(1, playerRef{ID: 10, GamerTag: "Foo"}, playerRef{ID: 20, GamerTag: "Bar"}, [2]*float64{fptr(3), fptr(0)})
	noWinner.WinnerID = nil

	dqs, participants := ScanSets([]Set{noWinner})

	assert.Empty(t, dqs)
	assert.Empty(t, participants)
}

func TestScanSets_ParticipantsDeduplicated(t *testing.T) {
	foo := playerRef{ID: 10, GamerTag: "Foo"}
	bar := playerRef{ID: 20, GamerTag: "Bar"}
	baz := playerRef{ID: 30, GamerTag: "Baz"}
	sets := []Set{
		makeSet(1, foo, bar, [2]*float64{fptr(3), fptr(1)}),
		makeSet(1, foo, baz, [2]*float64{fptr(3), fptr(2)}),
	}

	_, participants := ScanSets(sets)
	assert.Len(t, participants, 3)
}
