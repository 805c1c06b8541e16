package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	StartGGAPIKey   string
	StartGGEndpoint string
	NominatimURL    string
	DBPath          string
	ServerPort      string
	LogLevel        string

	// Reference sheets exported from the UltRank scraping sheet.
	PlayersCSV      string
	InvitationalCSV string
	RegionsCSV      string

	// CountDQs reports entrant counts as "raw - DQs = net" instead of
	// the plain count. Reporting only; scores are unaffected.
	CountDQs bool
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		StartGGAPIKey:   getEnv("STARTGG_API_KEY", ""),
		StartGGEndpoint: getEnv("STARTGG_ENDPOINT", "https://api.start.gg/gql/alpha"),
		NominatimURL:    getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		DBPath:          getEnv("DB_PATH", "ultrank.db"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		PlayersCSV:      getEnv("PLAYERS_CSV", "ultrank_players.csv"),
		InvitationalCSV: getEnv("INVITATIONAL_CSV", "ultrank_invitational.csv"),
		RegionsCSV:      getEnv("REGIONS_CSV", "ultrank_regions.csv"),
		CountDQs:        getBoolEnv("COUNT_DQS", false),
	}

	if cfg.StartGGAPIKey == "" {
		return nil, fmt.Errorf("STARTGG_API_KEY is required")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("players_csv", cfg.PlayersCSV).
		Str("regions_csv", cfg.RegionsCSV).
		Bool("count_dqs", cfg.CountDQs).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "1", "t", "true", "y", "yes":
		return true
	default:
		return false
	}
}

var Module = fx.Provide(Load)
