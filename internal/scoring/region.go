package scoring

import (
	"github.com/kenniky/ultrank-scoring/internal/domain"
)

// regionMatchScore ranks how specifically a rule matches the address.
// Higher is more specific; 0 means no match at all. The fallback rule
// (empty country code) always scores 1 so it loses to any country
// match.
func regionMatchScore(r domain.RegionRule, addr domain.Address) int {
	if r.CountryCode == "" {
		return 1
	}

	if addr.CountryCode != r.CountryCode {
		return 0
	}
	score := 2

	if r.Subdivision == "" {
		score++
	} else if addr.ISOLevel4 == r.Subdivision || addr.ISOLevel3 == r.Subdivision {
		score += 2

		if r.County == "" {
			score++
		} else if addr.County == r.County {
			score += 2
		}
	}

	// Japan additionally distinguishes regions by postal prefix.
	if r.CountryCode == "jp" {
		if r.JPPostal == "" {
			score++
		} else if postalPrefix(addr.Postcode) == r.JPPostal {
			score += 2
		}
	}

	return score
}

func postalPrefix(postcode string) string {
	if len(postcode) > 2 {
		return postcode[:2]
	}
	return postcode
}

// BestRegion selects the single most specific rule for the address.
// Ties keep the earliest rule in sheet order. A well-formed table
// carries a fallback rule, so the only failure is a table with no
// applicable rule at all.
func BestRegion(rules []domain.RegionRule, addr domain.Address) (domain.RegionRule, error) {
	best := 0
	var chosen domain.RegionRule
	found := false

	for _, rule := range rules {
		if score := regionMatchScore(rule, addr); score > best {
			best = score
			chosen = rule
			found = true
		}
	}

	if !found {
		return domain.RegionRule{}, ErrNoRegionMatch
	}
	return chosen, nil
}
