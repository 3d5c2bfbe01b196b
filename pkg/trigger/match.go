package trigger

import (
	"strings"

	"github.com/skaldic/campaign-engine/pkg/state"
)

// minMatchLen keeps short fragments ("ri", "un") from matching half the map.
const minMatchLen = 4

// LocationMatches reports whether a free-form location query names a keyed
// location. Matching is case-insensitive substring containment in either
// direction, with a minimum length guard.
func LocationMatches(query, target string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(strings.TrimSpace(target))
	if len(q) < minMatchLen || len(t) < minMatchLen {
		return q == t && q != ""
	}
	return strings.Contains(q, t) || strings.Contains(t, q)
}

// nightKeywords are the time-of-day strings treated as night.
var nightKeywords = []string{"night", "evening", "midnight"}

// IsNight reports whether the world clock reads night: a keyword match on
// time_of_day, or an hour in [20,24) or [0,6).
func IsNight(cs *state.CampaignState) bool {
	if cs.World == nil {
		return false
	}
	tod := strings.ToLower(cs.World.TimeOfDay)
	for _, kw := range nightKeywords {
		if strings.Contains(tod, kw) {
			return true
		}
	}
	if cs.World.Hour != nil {
		h := *cs.World.Hour
		return (h >= 20 && h < 24) || (h >= 0 && h < 6)
	}
	return false
}
