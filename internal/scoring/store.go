package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kenniky/ultrank-scoring/internal/domain"
)

// PlayerRow is one raw row of the scored-players sheet.
type PlayerRow struct {
	ID     string // start.gg numeric id; may be empty
	Tag    string
	Points string
	Note   string
}

// InvitationalRow is one raw row of the invitational-bonus sheet.
type InvitationalRow struct {
	ID     string
	Tag    string
	Points string
}

// RegionRow is one raw row of the region-multiplier sheet.
type RegionRow struct {
	CountryCode string
	Subdivision string
	County      string
	JPPostal    string
	Multiplier  string
	Note        string
}

// ReferenceStore holds the scored-player and region tables for one
// run. Built once, read-only afterwards; safe for concurrent use.
type ReferenceStore struct {
	players  map[string]*domain.PlayerRecord
	tagIndex map[string][]*domain.PlayerRecord // lowercased tag -> candidates, sheet order
	regions  []domain.RegionRule
}

// NewReferenceStore builds the lookup tables from raw sheet rows.
//
// Duplicate player identities merge: the maximum of the point values
// is kept, notes are comma-joined, and the first-seen tag stays
// canonical. Rows with a blank tag are skipped. A player with no
// numeric id gets the tag itself as a synthetic identity.
//
// Invitational rows overlay bonus points onto existing records; rows
// with no matching base record are dropped.
//
// Region rules keep their sheet order, which later breaks ties
// between equally specific rules.
func NewReferenceStore(players []PlayerRow, invitational []InvitationalRow, regions []RegionRow) (*ReferenceStore, error) {
	s := &ReferenceStore{
		players:  make(map[string]*domain.PlayerRecord),
		tagIndex: make(map[string][]*domain.PlayerRecord),
	}

	for i, row := range players {
		tag := strings.TrimSpace(row.Tag)
		if tag == "" {
			continue
		}

		points, err := strconv.Atoi(strings.TrimSpace(row.Points))
		if err != nil {
			return nil, fmt.Errorf("%w: players row %d: points %q", ErrMalformedRecord, i+1, row.Points)
		}
		if points < 0 {
			return nil, fmt.Errorf("%w: players row %d: negative points %d", ErrMalformedRecord, i+1, points)
		}

		id := strings.TrimSpace(row.ID)
		if id == "" {
			id = tag
		}

		rec, ok := s.players[id]
		if !ok {
			rec = &domain.PlayerRecord{ID: id, Tag: tag, Points: points, Note: row.Note}
			s.players[id] = rec
		} else {
			if points > rec.Points {
				rec.Points = points
			}
			rec.Note += ", " + row.Note
		}
		s.indexTag(tag, rec)
	}

	for i, row := range invitational {
		bonus, err := strconv.Atoi(strings.TrimSpace(row.Points))
		if err != nil {
			return nil, fmt.Errorf("%w: invitational row %d: points %q", ErrMalformedRecord, i+1, row.Points)
		}

		id := strings.TrimSpace(row.ID)
		if id == "" {
			id = strings.TrimSpace(row.Tag)
		}

		// Bonus rows without a base record are dropped.
		if rec, ok := s.players[id]; ok {
			rec.Invitational = bonus
		}
	}

	for i, row := range regions {
		mult, err := strconv.Atoi(strings.TrimSpace(row.Multiplier))
		if err != nil {
			return nil, fmt.Errorf("%w: regions row %d: multiplier %q", ErrMalformedRecord, i+1, row.Multiplier)
		}
		if mult <= 0 {
			return nil, fmt.Errorf("%w: regions row %d: multiplier %d not positive", ErrMalformedRecord, i+1, mult)
		}

		s.regions = append(s.regions, domain.RegionRule{
			CountryCode: row.CountryCode,
			Subdivision: row.Subdivision,
			County:      row.County,
			JPPostal:    row.JPPostal,
			Multiplier:  mult,
			Note:        row.Note,
		})
	}

	return s, nil
}

func (s *ReferenceStore) indexTag(tag string, rec *domain.PlayerRecord) {
	key := strings.ToLower(tag)
	for _, existing := range s.tagIndex[key] {
		if existing == rec {
			return
		}
	}
	s.tagIndex[key] = append(s.tagIndex[key], rec)
}

// Player looks a record up by stable identity.
func (s *ReferenceStore) Player(id string) (domain.PlayerRecord, bool) {
	rec, ok := s.players[id]
	if !ok {
		return domain.PlayerRecord{}, false
	}
	return *rec, true
}

// TagCandidates returns every record whose sheet tag matches the
// given tag case-insensitively, in sheet order.
func (s *ReferenceStore) TagCandidates(tag string) []domain.PlayerRecord {
	recs := s.tagIndex[strings.ToLower(tag)]
	if len(recs) == 0 {
		return nil
	}
	out := make([]domain.PlayerRecord, len(recs))
	for i, rec := range recs {
		out[i] = *rec
	}
	return out
}

// Regions returns the region rules in sheet order.
func (s *ReferenceStore) Regions() []domain.RegionRule {
	return s.regions
}

// PlayerCount reports the number of distinct scored identities.
func (s *ReferenceStore) PlayerCount() int {
	return len(s.players)
}
