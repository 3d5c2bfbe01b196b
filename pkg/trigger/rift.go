package trigger

import (
	"strings"

	"github.com/skaldic/campaign-engine/pkg/companion"
	"github.com/skaldic/campaign-engine/pkg/state"
)

// RiftTriggers covers Riften, the Ratway, and the Rift's roads.
func RiftTriggers(loc string, cs *state.CampaignState) []string {
	var events []string

	switch {
	case strings.Contains(loc, "ratway"):
		events = append(events, "The Ratway swallows sound. Somewhere ahead, water drips onto old secrets.")
		if IsNight(cs) {
			events = append(events, "Night makes no difference down here, but the Flagon's lamps burn anyway.")
		}
	case strings.Contains(loc, "goldenglow"):
		events = append(events, "Goldenglow Estate sits on its island, beehives humming behind mercenary patrols.")
	case strings.Contains(loc, "riften"):
		events = append(events, "Riften creaks on its pilings over the lake, honest work above and other work below.")
		if cs.Once("riften_gate_shakedown") {
			events = append(events, "A guard at the gate clears his throat. \"Visitor's tax. Don't look so surprised.\"")
		}
	case strings.Contains(loc, "ivarstead"):
		events = append(events, "Ivarstead huddles at the foot of the Seven Thousand Steps.")
	default:
		events = append(events, "Birch leaves drift gold across the Rift's roads.")
	}

	if comps := cs.Companions; comps != nil && companion.IsPresent(comps.Active, "Aela") {
		if strings.Contains(loc, "riften") {
			events = append(events, "Aela wrinkles her nose at the canal. \"This whole city smells of fish and lies.\"")
		}
	}

	return events
}
