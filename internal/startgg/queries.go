package startgg

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kenniky/ultrank-scoring/internal/constants"
	"github.com/kenniky/ultrank-scoring/internal/domain"
)

const entrantsQuery = `query getEntrants($eventSlug: String!, $pageNum: Int!, $perPage: Int!) {
  event(slug: $eventSlug) {
    entrants(query: { page: $pageNum, perPage: $perPage }) {
      pageInfo {
        totalPages
      }
      nodes {
        participants {
          player {
            gamerTag
            id
          }
        }
      }
    }
  }
}`

const setsQuery = `query getSets($eventSlug: String!, $pageNum: Int!, $perPage: Int!, $phases: [ID]!) {
  event(slug: $eventSlug) {
    sets(page: $pageNum, perPage: $perPage, filters: { state: [3], phaseIds: $phases }) {
      pageInfo {
        page
        totalPages
      }
      nodes {
        wPlacement
        winnerId
        slots {
          entrant {
            id
            participants {
              player {
                gamerTag
                id
              }
            }
          }
          standing {
            stats {
              score {
                value
              }
            }
          }
        }
      }
    }
  }
}`

const phasesQuery = `query getPhases($eventSlug: String!) {
  event(slug: $eventSlug) {
    phases {
      id
      name
      state
      isExhibition
    }
  }
}`

const locationQuery = `query getLoc($eventSlug: String!) {
  event(slug: $eventSlug) {
    tournament {
      lat
      lng
    }
  }
}`

type pageInfo struct {
	TotalPages int `json:"totalPages"`
}

type playerRef struct {
	ID       int64  `json:"id"`
	GamerTag string `json:"gamerTag"`
}

type participantRef struct {
	Player playerRef `json:"player"`
}

// Phase is one bracket phase of an event.
type Phase struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	State        string `json:"state"`
	IsExhibition bool   `json:"isExhibition"`
}

// Entrants pages through the full entrant list, deduplicated by
// (player id, tag).
func (c *Client) Entrants(ctx context.Context, slug string) ([]domain.Entrant, error) {
	var data struct {
		Event *struct {
			Entrants struct {
				PageInfo pageInfo `json:"pageInfo"`
				Nodes    []struct {
					Participants []participantRef `json:"participants"`
				} `json:"nodes"`
			} `json:"entrants"`
		} `json:"event"`
	}

	seen := make(map[domain.Entrant]struct{})
	var entrants []domain.Entrant

	for page := 1; ; page++ {
		vars := map[string]any{
			"eventSlug": slug,
			"pageNum":   page,
			"perPage":   constants.EntrantsPerPage,
		}
		if err := c.do(ctx, entrantsQuery, vars, &data); err != nil {
			return nil, err
		}
		if data.Event == nil {
			return nil, fmt.Errorf("event %q not found", slug)
		}

		for _, node := range data.Event.Entrants.Nodes {
			if len(node.Participants) == 0 {
				continue
			}
			e := toEntrant(node.Participants[0].Player)
			if _, ok := seen[e]; !ok {
				seen[e] = struct{}{}
				entrants = append(entrants, e)
			}
		}

		if page >= data.Event.Entrants.PageInfo.TotalPages {
			return entrants, nil
		}
	}
}

// Phases lists every bracket phase of the event.
func (c *Client) Phases(ctx context.Context, slug string) ([]Phase, error) {
	var data struct {
		Event *struct {
			Phases []Phase `json:"phases"`
		} `json:"event"`
	}

	vars := map[string]any{"eventSlug": slug}
	if err := c.do(ctx, phasesQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Event == nil {
		return nil, fmt.Errorf("event %q not found", slug)
	}
	return data.Event.Phases, nil
}

// Sets pages through every completed set in the given phases.
func (c *Client) Sets(ctx context.Context, slug string, phaseIDs []int64) ([]Set, error) {
	var data struct {
		Event *struct {
			Sets struct {
				PageInfo pageInfo `json:"pageInfo"`
				Nodes    []Set    `json:"nodes"`
			} `json:"sets"`
		} `json:"event"`
	}

	var sets []Set

	for page := 1; ; page++ {
		vars := map[string]any{
			"eventSlug": slug,
			"pageNum":   page,
			"perPage":   constants.SetsPerPage,
			"phases":    phaseIDs,
		}
		if err := c.do(ctx, setsQuery, vars, &data); err != nil {
			return nil, err
		}
		if data.Event == nil {
			return nil, fmt.Errorf("event %q not found", slug)
		}

		sets = append(sets, data.Event.Sets.Nodes...)

		if page >= data.Event.Sets.PageInfo.TotalPages {
			return sets, nil
		}
	}
}

// Location returns the venue coordinates of the event's tournament.
func (c *Client) Location(ctx context.Context, slug string) (lat, lng float64, err error) {
	var data struct {
		Event *struct {
			Tournament struct {
				Lat *float64 `json:"lat"`
				Lng *float64 `json:"lng"`
			} `json:"tournament"`
		} `json:"event"`
	}

	vars := map[string]any{"eventSlug": slug}
	if err := c.do(ctx, locationQuery, vars, &data); err != nil {
		return 0, 0, err
	}
	if data.Event == nil {
		return 0, 0, fmt.Errorf("event %q not found", slug)
	}
	t := data.Event.Tournament
	if t.Lat == nil || t.Lng == nil {
		return 0, 0, fmt.Errorf("event %q has no venue coordinates", slug)
	}
	return *t.Lat, *t.Lng, nil
}

func toEntrant(p playerRef) domain.Entrant {
	return domain.Entrant{
		ID:  strconv.FormatInt(p.ID, 10),
		Tag: p.GamerTag,
	}
}

// MainPhases filters exhibition brackets out.
func MainPhases(phases []Phase) []Phase {
	var main []Phase
	for _, p := range phases {
		if !p.IsExhibition {
			main = append(main, p)
		}
	}
	return main
}

// HasCompletedMainPhase reports whether any non-exhibition phase has
// finished, which is the signal that DQ data is usable.
func HasCompletedMainPhase(phases []Phase) bool {
	for _, p := range phases {
		if p.State == "COMPLETED" && !p.IsExhibition {
			return true
		}
	}
	return false
}
