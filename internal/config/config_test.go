package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STARTGG_API_KEY", "test-key")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.StartGGAPIKey)
	assert.Equal(t, "https://api.start.gg/gql/alpha", cfg.StartGGEndpoint)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.NominatimURL)
	assert.Equal(t, "ultrank.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "ultrank_players.csv", cfg.PlayersCSV)
	assert.Equal(t, "ultrank_invitational.csv", cfg.InvitationalCSV)
	assert.Equal(t, "ultrank_regions.csv", cfg.RegionsCSV)
	assert.False(t, cfg.CountDQs)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("STARTGG_API_KEY", "")

	_, err := Load(zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STARTGG_API_KEY")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STARTGG_API_KEY", "test-key")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/scores.db")
	t.Setenv("COUNT_DQS", "true")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "/tmp/scores.db", cfg.DBPath)
	assert.True(t, cfg.CountDQs)
}

func TestGetBoolEnv(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"y", true},
		{" t ", true},
		{"0", false},
		{"false", false},
		{"nonsense", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, getBoolEnv("TEST_BOOL", false))
		})
	}
}

func TestGetBoolEnv_Fallback(t *testing.T) {
	t.Setenv("TEST_BOOL", "")
	assert.True(t, getBoolEnv("TEST_BOOL", true))
	assert.False(t, getBoolEnv("TEST_BOOL", false))
}
