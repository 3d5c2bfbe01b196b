package trigger

import (
	"strings"

	"github.com/skaldic/campaign-engine/pkg/state"
)

// MarkarthTriggers covers the stone city and the Karthspire approach.
func MarkarthTriggers(loc string, cs *state.CampaignState) []string {
	var events []string

	switch {
	case strings.Contains(loc, "karthspire"):
		events = append(events, "The Karthspire rears over the river bend, crag and old Dwemer work tangled together.")
		if cs.Once("karthspire_forsworn_watch") {
			events = append(events, "Feathers and bone charms on the cliff path: the Forsworn watch this crossing.")
		}
	case strings.Contains(loc, "cidhna"):
		events = append(events, "Cidhna Mine: the Silver-Bloods' answer to every inconvenient question.")
	case strings.Contains(loc, "understone"):
		events = append(events, "Understone Keep drips somewhere in the dark, always the same slow count.")
	default:
		events = append(events, "Markarth is carved from one mountain's patience, stair over stair of Dwemer stone.")
		if cs.Once("markarth_first_arrival") {
			events = append(events, "A miner mutters as you pass: \"Keep clear of the Treasury House. And the Warrens. And the Keep, honestly.\"")
		}
	}

	return events
}
