// Package companion manages the companion roster and the defender pool
// used during set-piece defense encounters.
package companion

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skaldic/campaign-engine/pkg/state"
)

var (
	ErrNotFound         = errors.New("companion not found")
	ErrAlreadyRecruited = errors.New("companion already recruited")
	ErrUnavailable      = errors.New("companion is unavailable")
)

// Recruit moves a companion from available to active. Duplicates and
// companions marked unavailable are rejected.
func Recruit(cs *state.CampaignState, npcID string) error {
	comps := cs.EnsureCompanions()

	for _, c := range comps.Active {
		if c.NPCID == npcID {
			return fmt.Errorf("%w: %s", ErrAlreadyRecruited, npcID)
		}
	}

	idx := -1
	for i, c := range comps.Available {
		if c.NPCID == npcID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, npcID)
	}
	if comps.Available[idx].Status == state.CompanionUnavailable {
		return fmt.Errorf("%w: %s", ErrUnavailable, npcID)
	}

	c := comps.Available[idx]
	comps.Available = append(comps.Available[:idx], comps.Available[idx+1:]...)
	c.Status = state.CompanionActive
	comps.Active = append(comps.Active, c)
	return nil
}

// Dismiss moves a companion from active to dismissed.
func Dismiss(cs *state.CampaignState, npcID string) error {
	comps := cs.EnsureCompanions()

	idx := -1
	for i, c := range comps.Active {
		if c.NPCID == npcID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, npcID)
	}

	c := comps.Active[idx]
	comps.Active = append(comps.Active[:idx], comps.Active[idx+1:]...)
	c.Status = state.CompanionDismissed
	comps.Dismissed = append(comps.Dismissed, c)
	return nil
}

// UpdateLoyalty moves a companion's loyalty by delta, clamped to [0, 100],
// and appends a history entry. The companion may be in any roster list.
func UpdateLoyalty(cs *state.CampaignState, npcID string, delta int, reason string) (int, error) {
	c := find(cs, npcID)
	if c == nil {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, npcID)
	}

	c.Loyalty += delta
	if c.Loyalty < 0 {
		c.Loyalty = 0
	}
	if c.Loyalty > 100 {
		c.Loyalty = 100
	}
	c.LoyaltyHistory = append(c.LoyaltyHistory, state.LoyaltyChange{
		Change:     delta,
		Reason:     reason,
		NewLoyalty: c.Loyalty,
		Timestamp:  time.Now().UTC(),
	})
	return c.Loyalty, nil
}

// find returns a pointer into the roster list holding npcID.
func find(cs *state.CampaignState, npcID string) *state.Companion {
	comps := cs.EnsureCompanions()
	for _, list := range [][]state.Companion{comps.Active, comps.Available, comps.Dismissed} {
		for i := range list {
			if list[i].NPCID == npcID {
				return &list[i]
			}
		}
	}
	return nil
}

// Alignment outcomes of the faction probe.
const (
	AlignAllied  = "allied"
	AlignHostile = "hostile"
	AlignNeutral = "neutral"
	AlignUnknown = "unknown"
)

// FactionAlignment probes how a companion stands toward a faction: the
// companion's own faction, the relationships map (keyword-matched), then
// the nested companion_status affinity.
func FactionAlignment(c *state.Companion, faction string) string {
	if c == nil {
		return AlignUnknown
	}
	faction = strings.ToLower(faction)

	if strings.ToLower(c.Faction) == faction {
		return AlignAllied
	}
	if strings.ToLower(c.FactionAffinity) == faction {
		return AlignAllied
	}

	if rel, ok := c.Relationships[faction]; ok {
		switch keywordAlignment(rel) {
		case AlignAllied:
			return AlignAllied
		case AlignHostile:
			return AlignHostile
		}
		return AlignNeutral
	}

	if affinity, ok := c.CompanionStatus["faction_affinity"]; ok {
		if strings.ToLower(affinity) == faction {
			return AlignAllied
		}
		return AlignNeutral
	}

	return AlignUnknown
}

func keywordAlignment(rel string) string {
	rel = strings.ToLower(rel)
	for _, kw := range []string{"ally", "allied", "loyal", "friend"} {
		if strings.Contains(rel, kw) {
			return AlignAllied
		}
	}
	for _, kw := range []string{"enemy", "hate", "hostile", "hunted"} {
		if strings.Contains(rel, kw) {
			return AlignHostile
		}
	}
	return AlignNeutral
}

// RippleThreshold is the faction-clock value at or above which allied and
// hostile companions feel the shift.
const RippleThreshold = 7

// ApplyFactionClockRipple adjusts loyalties when a faction clock runs high:
// allied companions gain 2 loyalty, hostile companions lose 3, neutral and
// unknown companions are untouched. The clock is read as-is; a clock below
// the threshold ripples nothing.
func ApplyFactionClockRipple(cs *state.CampaignState, faction, clockID string) []string {
	if cs.ClockProgress(clockID) < RippleThreshold {
		return nil
	}

	var events []string
	comps := cs.EnsureCompanions()
	for i := range comps.Active {
		c := &comps.Active[i]
		switch FactionAlignment(c, faction) {
		case AlignAllied:
			newLoyalty, _ := UpdateLoyalty(cs, c.NPCID, 2, "faction ascendant: "+faction)
			events = append(events, fmt.Sprintf("%s stands taller as %s gains ground. (loyalty %d)", c.Name, faction, newLoyalty))
		case AlignHostile:
			newLoyalty, _ := UpdateLoyalty(cs, c.NPCID, -3, "faction ascendant: "+faction)
			events = append(events, fmt.Sprintf("%s grows cold as %s gains ground. (loyalty %d)", c.Name, faction, newLoyalty))
		}
	}
	return events
}

// IsPresent reports whether a named companion travels in the active party.
// Matching is a case-insensitive prefix check so titled entries ("Lydia the
// Housecarl") still answer to their given name.
func IsPresent(active []state.Companion, name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	for _, c := range active {
		got := strings.ToLower(c.Name)
		if strings.HasPrefix(got, name) || strings.HasPrefix(name, got) {
			return true
		}
		if strings.EqualFold(c.NPCID, name) {
			return true
		}
	}
	return false
}
