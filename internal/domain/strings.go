package domain

import (
	"fmt"
	"strings"
)

func (e ExactContribution) String() string {
	tag := e.EntrantTag
	if tag != e.Player.Tag {
		tag = fmt.Sprintf("%s (aka %s)", e.EntrantTag, e.Player.Tag)
	}
	return fmt.Sprintf("%s - %d points [%s]", tag, e.Points, e.Player.Note)
}

func (m AmbiguousMatch) String() string {
	s := fmt.Sprintf("%s (id %s) - %d points [%s]", m.EntrantTag, m.EntrantID, m.Points, m.Note)
	if m.DQCount > 0 {
		s += fmt.Sprintf(" - %d %s", m.DQCount, plural(m.DQCount, "DQ"))
	}
	return s
}

func (d DisqualifiedPlayer) String() string {
	return fmt.Sprintf("%s - %d %s", d.Contribution, d.DQCount, plural(d.DQCount, "DQ"))
}

func (r RegionRule) String() string {
	var b strings.Builder
	if r.CountryCode == "" {
		b.WriteString("All Other Regions")
	} else {
		b.WriteString(r.CountryCode)
		if r.Subdivision != "" {
			b.WriteString("/" + r.Subdivision)
			if r.County != "" {
				b.WriteString("/" + r.County)
			}
		}
		if r.JPPostal != "" {
			b.WriteString("/JP Postal " + r.JPPostal)
		}
	}
	fmt.Fprintf(&b, " [%s] - x%d", r.Note, r.Multiplier)
	return b.String()
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
