package trigger

import (
	"strings"

	"github.com/skaldic/campaign-engine/pkg/state"
)

// HjaalmarchTriggers covers Morthal and the Drajkmyr marsh.
func HjaalmarchTriggers(loc string, cs *state.CampaignState) []string {
	var events []string

	switch {
	case strings.Contains(loc, "movarth"):
		events = append(events, "Movarth's Lair breathes cold air from the hillside, and nothing mortal breathes it back.")
	case strings.Contains(loc, "morthal"):
		events = append(events, "Morthal keeps its lamps lit against the marsh fog even at midday.")
		if cs.Once("morthal_burned_house") {
			events = append(events, "A burned-out house stands apart from the others. The townsfolk walk wide around it.")
		}
	default:
		events = append(events, "The Drajkmyr marsh swallows the road in fog and shallow black water.")
	}

	if IsNight(cs) {
		events = append(events, "Lights move out on the marsh where no road runs. The locals don't follow them.")
	}

	return events
}
