// Package refdata reads the UltRank scraping-sheet CSV exports into
// the scoring reference store.
package refdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/kenniky/ultrank-scoring/internal/config"
	"github.com/kenniky/ultrank-scoring/internal/scoring"
)

// Sheet column headers, as exported from the scraping sheet.
const (
	colPlayerID     = "Start.gg Num ID"
	colPlayerTag    = "Player"
	colPlayerPoints = "Points"
	colPlayerNote   = "Note"

	colInvitID     = "Num"
	colInvitTag    = "Player"
	colInvitPoints = "Additional Points"

	colRegionCountry     = "country_code"
	colRegionSubdivision = "ISO3166-2"
	colRegionCounty      = "county"
	colRegionJPPostal    = "jp-postal-code"
	colRegionMultiplier  = "Multiplier"
	colRegionNote        = "Note"
)

// Load reads all three reference sheets and builds the store.
func Load(cfg *config.Config, logger zerolog.Logger) (*scoring.ReferenceStore, error) {
	players, err := LoadPlayers(cfg.PlayersCSV)
	if err != nil {
		return nil, fmt.Errorf("loading players sheet: %w", err)
	}

	invitational, err := LoadInvitational(cfg.InvitationalCSV)
	if err != nil {
		return nil, fmt.Errorf("loading invitational sheet: %w", err)
	}

	regions, err := LoadRegions(cfg.RegionsCSV)
	if err != nil {
		return nil, fmt.Errorf("loading regions sheet: %w", err)
	}

	store, err := scoring.NewReferenceStore(players, invitational, regions)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("players", store.PlayerCount()).
		Int("regions", len(store.Regions())).
		Msg("reference data loaded")

	return store, nil
}

// LoadPlayers reads the scored-players sheet.
func LoadPlayers(path string) ([]scoring.PlayerRow, error) {
	var rows []scoring.PlayerRow
	err := readSheet(path, []string{colPlayerID, colPlayerTag, colPlayerPoints, colPlayerNote}, func(get func(string) string) {
		rows = append(rows, scoring.PlayerRow{
			ID:     get(colPlayerID),
			Tag:    get(colPlayerTag),
			Points: get(colPlayerPoints),
			Note:   get(colPlayerNote),
		})
	})
	return rows, err
}

// LoadInvitational reads the invitational-bonus sheet.
func LoadInvitational(path string) ([]scoring.InvitationalRow, error) {
	var rows []scoring.InvitationalRow
	err := readSheet(path, []string{colInvitID, colInvitTag, colInvitPoints}, func(get func(string) string) {
		rows = append(rows, scoring.InvitationalRow{
			ID:     get(colInvitID),
			Tag:    get(colInvitTag),
			Points: get(colInvitPoints),
		})
	})
	return rows, err
}

// LoadRegions reads the region-multiplier sheet.
func LoadRegions(path string) ([]scoring.RegionRow, error) {
	var rows []scoring.RegionRow
	err := readSheet(path, []string{colRegionCountry, colRegionSubdivision, colRegionCounty, colRegionJPPostal, colRegionMultiplier, colRegionNote}, func(get func(string) string) {
		rows = append(rows, scoring.RegionRow{
			CountryCode: get(colRegionCountry),
			Subdivision: get(colRegionSubdivision),
			County:      get(colRegionCounty),
			JPPostal:    get(colRegionJPPostal),
			Multiplier:  get(colRegionMultiplier),
			Note:        get(colRegionNote),
		})
	})
	return rows, err
}

// readSheet streams a headered CSV, calling row with a column
// accessor for each data row. Missing required columns fail up front.
func readSheet(path string, required []string, row func(get func(string) string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("%w: %s: reading header: %v", scoring.ErrMalformedRecord, path, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return fmt.Errorf("%w: %s: missing column %q", scoring.ErrMalformedRecord, path, name)
		}
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %v", scoring.ErrMalformedRecord, path, err)
		}

		row(func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		})
	}
}

var Module = fx.Provide(Load)
