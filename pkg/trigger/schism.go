package trigger

import (
	"github.com/skaldic/campaign-engine/pkg/quest"
	"github.com/skaldic/campaign-engine/pkg/state"
)

// SchismClockID is the pressure clock for the Jorrvaskr schism.
const SchismClockID = "companions_schism"

// SchismTriggers fires wherever the party is while the schism arc is live;
// the hall's troubles follow its members around Skyrim.
func SchismTriggers(loc string, cs *state.CampaignState) []string {
	arc, ok := cs.Arc(state.ArcCompanions)
	if !ok {
		return nil
	}

	var events []string
	switch quest.ID(arc.ActiveQuest) {
	case quest.CompanionsSchismPressure:
		if LocationMatches(loc, "jorrvaskr") {
			events = append(events, SchismSecrecyArgumentScene(cs)...)
			events = append(events, SchismWhelpGossipScene(cs)...)
		}
		if cs.ClockProgress(SchismClockID) >= 4 {
			events = append(events, "Word of trouble in Jorrvaskr travels with you. Shield-siblings take sides in your absence.")
		}
	case quest.CompanionsSchismBreakpoint:
		if cs.Once("schism_breakpoint_prompt") {
			events = append(events,
				"BREAKPOINT: the schism can no longer be ignored.",
				"The hall waits on a word: reconcile, reform, tradition, or civil_war.")
		}
	}
	return events
}

// SchismSecrecyArgumentScene is the once-only scene where the whelps corner
// the Circle over its secrets.
func SchismSecrecyArgumentScene(cs *state.CampaignState) []string {
	if !cs.Once("schism_secrecy_argument") {
		return nil
	}
	return []string{
		"Njada slams her tankard down mid-hall. \"Locked doors in the Underforge, and we're meant to ask nothing?\"",
		"Aela's voice stays level, which is somehow worse. \"The Circle keeps its own counsel. It always has.\"",
		"Every whelp in the hall is suddenly very interested in the answer.",
	}
}

// SchismWhelpGossipScene is the once-only scene of the younger members
// choosing sides.
func SchismWhelpGossipScene(cs *state.CampaignState) []string {
	if !cs.Once("schism_whelp_gossip") {
		return nil
	}
	return []string{
		"Ria and Torvar argue in whispers by the cold hearth and stop the moment you're close.",
	}
}
