package trigger

import (
	"strings"

	"github.com/skaldic/campaign-engine/pkg/state"
)

// SolitudeTriggers covers the Imperial capital of Skyrim.
func SolitudeTriggers(loc string, cs *state.CampaignState) []string {
	var events []string
	cw := cs.EnsureCivilWar()

	switch {
	case strings.Contains(loc, "castle_dour"):
		events = append(events, "Castle Dour's courtyard rings with drill commands.")
		if cw.PlayerAlliance == state.AllianceImperial {
			events = append(events, "Legates nod as you pass the map room. The Whiterun question is on everyone's table.")
		}
	case strings.Contains(loc, "blue_palace"):
		events = append(events, "Petitioners queue beneath the Blue Palace's painted ceiling.")
		if cs.Once("blue_palace_first_audience") {
			events = append(events, "A steward measures your boots and your intent in one glance. \"The court will hear you. Eventually.\"")
		}
	case strings.Contains(loc, "katla"):
		events = append(events, "Katla's farm spreads below the stone arch, cart traffic braiding past the East Empire docks.")
	default:
		events = append(events, "Solitude stands on its natural arch, banners snapping over the Great Bardic College.")
		if cw.BattleStatus == state.BattleActive {
			events = append(events, "Couriers gallop the causeway at reckless speed. Whiterun is all anyone speaks of.")
		}
	}

	return events
}
