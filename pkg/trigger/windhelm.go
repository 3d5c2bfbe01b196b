package trigger

import (
	"strings"

	"github.com/skaldic/campaign-engine/pkg/state"
)

// WindhelmTriggers covers the Stormcloak capital.
func WindhelmTriggers(loc string, cs *state.CampaignState) []string {
	var events []string

	switch {
	case strings.Contains(loc, "palace_of_the_kings"):
		events = append(events, "The Palace of the Kings is cold enough to see your breath indoors.")
		cw := cs.EnsureCivilWar()
		if cw.PlayerAlliance == state.AllianceStormcloak {
			events = append(events, "Ulfric's officers track mud and strategy across the long table.")
		} else if cw.PlayerAlliance == state.AllianceImperial && cs.Once("windhelm_palace_imperial_glare") {
			events = append(events, "Every guard in the hall marks you as you enter. Word of your allegiance travels.")
		}
	case strings.Contains(loc, "grey_quarter"):
		events = append(events, "Snow piles in the Grey Quarter's doorways that nobody clears.")
		if IsNight(cs) {
			events = append(events, "Someone has painted fresh words on the Cornerclub wall. They are not kind ones.")
		}
	default:
		events = append(events, "Windhelm's stones are older than the war and colder than both sides of it.")
		if cs.Once("windhelm_first_arrival") {
			events = append(events, "The bridge across the White River is long enough to think twice on.")
		}
	}

	cw := cs.EnsureCivilWar()
	if cw.BattleStatus == state.BattleCompleted && cw.BattleFaction == state.AllianceImperial {
		events = append(events, "The news from Whiterun sits badly here. Recruiters shout themselves hoarse in the market.")
	}

	return events
}
