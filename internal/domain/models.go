package domain

import (
	"time"
)

// Entrant is one registered participant in an event. Identity is the
// (ID, Tag) pair: the same start.gg player entering under a different
// tag is treated as a distinct entrant.
type Entrant struct {
	ID  string // start.gg numeric player id, stringified
	Tag string
}

// Disqualification accumulates DQ losses for one entrant within a
// single event.
type Disqualification struct {
	Entrant Entrant
	Count   int
}

// PlayerRecord is one row of the scored-player reference sheet after
// duplicate merging. ID may be a synthetic key (the player name) when
// the sheet has no numeric start.gg id for the row.
type PlayerRecord struct {
	ID           string
	Tag          string
	Points       int
	Invitational int // bonus points, applied only for invitational events
	Note         string
}

// Score returns the points this record contributes to a total.
func (p PlayerRecord) Score(invitational bool) int {
	if invitational {
		return p.Points + p.Invitational
	}
	return p.Points
}

// RegionRule is one row of the region-multiplier sheet. Fields are
// ordered by specificity; a rule with an empty CountryCode is the
// universal fallback. JPPostal only applies when CountryCode is "jp".
type RegionRule struct {
	CountryCode string
	Subdivision string // ISO 3166-2 code
	County      string
	JPPostal    string // first two digits of a Japanese postal code
	Multiplier  int
	Note        string
}

// Address is the reverse-geocoded decomposition of an event venue.
// Nominatim reports the subdivision code at either admin level 3 or 4
// depending on the country, so both are kept.
type Address struct {
	CountryCode string
	ISOLevel3   string
	ISOLevel4   string
	County      string
	Postcode    string
}

// ExactContribution is a scored player resolved by stable identity.
// EntrantTag is the tag the player entered the bracket under, which
// may differ from the canonical sheet tag.
type ExactContribution struct {
	Player     PlayerRecord
	EntrantTag string
	Points     int
}

// AmbiguousMatch is an entrant whose tag matches a scored player
// case-insensitively while the identities disagree. It never counts
// toward the committed score. DQCount is non-zero when the entrant
// was disqualified.
type AmbiguousMatch struct {
	EntrantTag string
	EntrantID  string
	Points     int
	Note       string
	DQCount    int
}

// DisqualifiedPlayer is a scored player whose entry resolved exactly
// but who was disqualified; the points are withheld from the total.
type DisqualifiedPlayer struct {
	Contribution ExactContribution
	DQCount      int
}

// TieringResult is the terminal output of one tiering computation.
// Immutable once constructed.
type TieringResult struct {
	Score        int
	MaxPotential int
	Entrants     int
	Region       RegionRule
	Exact        []ExactContribution
	DQs          []DisqualifiedPlayer
	Ambiguous    []AmbiguousMatch
	Phases       []string

	// DQCount is the number of entrants who only ever appeared as
	// disqualifications. Populated only when DQTracked is set; it
	// affects reporting, never the score.
	DQCount   int
	DQTracked bool
}

// StoredResult is the persisted form of a computed tier.
type StoredResult struct {
	ID           string // nanoid
	Slug         string
	Score        int
	MaxPotential int
	Entrants     int
	Invitational bool
	Report       string
	ComputedAt   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
