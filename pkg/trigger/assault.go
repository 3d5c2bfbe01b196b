package trigger

import (
	"fmt"

	"github.com/skaldic/campaign-engine/pkg/companion"
	"github.com/skaldic/campaign-engine/pkg/quest"
	"github.com/skaldic/campaign-engine/pkg/state"
)

// AssaultTriggers narrates the Silver Hand's reprisal on Jorrvaskr. The
// defender pool is built on the first act and read by the finale.
func AssaultTriggers(loc string, cs *state.CampaignState) []string {
	arc, ok := cs.Arc(state.ArcCompanions)
	if !ok || arc.ActiveQuest != string(quest.CompanionsSilverReprisal) {
		return nil
	}
	if !LocationMatches(loc, "jorrvaskr") && !LocationMatches(loc, "whiterun") {
		return nil
	}

	var events []string
	if cs.Once("assault_act_one") {
		pool := companion.BuildPool(cs)
		events = append(events,
			"Torches crest the Wind District stair. The Silver Hand has come to Jorrvaskr.",
			fmt.Sprintf("The hall stands to arms: %d defenders, effective strength %d.", len(pool.Defenders), pool.Capacity),
		)
		for _, reason := range pool.ModifiersApplied {
			events = append(events, "The defense is not what it should be: "+reason+".")
		}
		return events
	}

	if cs.Once("assault_act_two") {
		events = append(events, "Silver weapons against the shield-wall. Call consequences as they land.")
		return events
	}

	if cs.Flag("assault_finale") {
		return nil
	}
	pool := companion.BuildPool(cs)
	down, wounded := 0, 0
	for _, d := range pool.Defenders {
		switch d.Status {
		case state.DefenderTakenOut:
			down++
		case state.DefenderWounded:
			wounded++
		}
	}
	cs.SetFlag("assault_finale")
	events = append(events, fmt.Sprintf("The raiders break and run. Jorrvaskr holds: %d down, %d wounded.", down, wounded))
	if arc.Flag(quest.FlagHallShattered) {
		events = append(events, "Holds, but hollow. The hall has lost its heart.")
	}
	return events
}

// CompanionArcTriggers covers companion-specific beats that fire anywhere
// once their arcs are live.
func CompanionArcTriggers(loc string, cs *state.CampaignState) []string {
	arc, ok := cs.Arc(state.ArcCompanions)
	if !ok {
		return nil
	}

	var events []string
	if arc.Flag(quest.FlagEmbracedCurse) && IsNight(cs) && cs.Once("curse_first_night") {
		events = append(events, "The moons rise and your blood rises with them. Sleep will not come easily tonight.")
	}

	if arc.ActiveQuest == string(quest.CompanionsDragonbreakEcho) && cs.Once("dragonbreak_first_echo") {
		events = append(events,
			"DRAGONBREAK: for one held breath there are two of every shadow.",
			"You remember Skjor dying. You remember him alive at the hearth. Both are true.")
	}

	return events
}
