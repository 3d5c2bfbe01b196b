package trigger

import (
	"strings"

	"github.com/skaldic/campaign-engine/pkg/state"
)

// FalkreathTriggers covers the pine hold and its graveyard town.
func FalkreathTriggers(loc string, cs *state.CampaignState) []string {
	var events []string

	switch {
	case strings.Contains(loc, "pinewatch"):
		events = append(events, "Pinewatch looks like any farmstead, which is exactly the point.")
	case strings.Contains(loc, "half_moon"):
		events = append(events, "Half-Moon Mill's saw bites through pine, steady as a heartbeat.")
	case strings.Contains(loc, "dead_mans_drink"):
		events = append(events, "Dead Man's Drink pours for mourners and travelers alike.")
	case strings.Contains(loc, "falkreath"):
		events = append(events, "Falkreath's graveyard is larger than the town that tends it.")
		if cs.Once("falkreath_gravedigger_greeting") {
			events = append(events, "The gravedigger leans on his spade. \"Everyone ends up my neighbor eventually.\"")
		}
	default:
		events = append(events, "Pine shadow and woodsmoke: Falkreath hold closes over the road.")
	}

	return events
}
