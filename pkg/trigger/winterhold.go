package trigger

import (
	"strings"

	"github.com/skaldic/campaign-engine/pkg/quest"
	"github.com/skaldic/campaign-engine/pkg/state"
)

// WinterholdTriggers covers the ruined town and the College. The Eye's
// instability counter colors everything once the arc is far enough along.
func WinterholdTriggers(loc string, cs *state.CampaignState) []string {
	var events []string
	arc := cs.EnsureArc(state.ArcCollege)

	switch {
	case strings.Contains(loc, "hall_of_the_elements"):
		events = append(events, "The Hall of the Elements hums with warding and argument in equal measure.")
		if arc.ActiveQuest == string(quest.CollegeEyeUnsealed) || arc.ActiveQuest == string(quest.CollegeContainment) {
			events = append(events, "The Eye of Magnus turns slowly at the hall's center, patterns crawling under its shell.")
		}
	case strings.Contains(loc, "saarthal"):
		events = append(events, "Saarthal's excavation scaffolding groans in the wind off the ice.")
		if arc.ActiveQuest == string(quest.CollegeUnderSaarthal) && cs.Once("saarthal_first_descent") {
			events = append(events, "Tolfdir counts heads at the dig mouth. \"Stay close. The old city keeps what wanders.\"")
		}
	case strings.Contains(loc, "college"):
		events = append(events, "The College of Winterhold balances on its broken causeway above the Sea of Ghosts.")
		if cs.Once("college_bridge_first_crossing") {
			events = append(events, "Faralda watches you cross the gap-toothed bridge without offering a hand.")
		}
	default:
		events = append(events, "Winterhold is mostly memory: a street of houses and the cliff where the rest used to be.")
	}

	switch instability := arc.Counter(quest.CounterEyeInstability); {
	case instability >= 6:
		events = append(events, "The air itself feels thin here, like the world is wearing through.")
	case instability >= 3:
		events = append(events, "Light bends wrong at the edges of your vision. The locals have stopped remarking on it.")
	}

	if IsNight(cs) && strings.Contains(loc, "college") {
		events = append(events, "Auroras pool around the College spire like moths at a lantern.")
	}

	return events
}
