package startgg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"tournament/genesis-9/event/ultimate-singles", true},
		{"tournament/big-house_10/event/melee_singles", true},
		{"tournament/genesis-9/events/ultimate-singles", false},
		{"tournament/Genesis-9/event/ultimate-singles", false},
		{"genesis-9/event/ultimate-singles", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidSlug(tt.slug), tt.slug)
	}
}

func TestIsolateSlug(t *testing.T) {
	slug, err := IsolateSlug("https://www.start.gg/tournament/genesis-9/events/ultimate-singles/overview")
	require.NoError(t, err)
	assert.Equal(t, "tournament/genesis-9/event/ultimate-singles", slug)

	slug, err = IsolateSlug("tournament/genesis-9/event/ultimate-singles")
	require.NoError(t, err)
	assert.Equal(t, "tournament/genesis-9/event/ultimate-singles", slug)

	_, err = IsolateSlug("https://www.start.gg/league/smash-tour")
	assert.ErrorIs(t, err, ErrInvalidSlug)
}
