// Package resolver applies player choices to the campaign state. Every
// resolver is guarded by a <scene>_resolved flag: the second call returns an
// empty list and mutates nothing. Unknown choice tags produce a single
// diagnostic event (BadChoice) and also mutate nothing.
package resolver

import (
	"fmt"

	"github.com/skaldic/campaign-engine/pkg/quest"
	"github.com/skaldic/campaign-engine/pkg/state"
	"github.com/skaldic/campaign-engine/pkg/trigger"
)

// badChoice is the shared BadChoice diagnostic. One event, no mutation.
func badChoice(scene, choice string, allowed ...string) []string {
	return []string{fmt.Sprintf("[GM NOTE] scene %q got unknown choice %q (expected one of %v); nothing happens.", scene, choice, allowed)}
}

// Schism scene topics.
const (
	TopicSecrecyArgument = "secrecy_argument"
	TopicWhelpGossip     = "whelp_gossip"
)

// ResolveSchismScene applies the player's handling of a schism pressure
// scene. Ignoring the trouble feeds the schism clock; mediating bleeds it;
// taking sides feeds it and polarizes the whelps. A full clock trips the
// breakpoint: the active quest jumps to the breakpoint quest and the event
// list carries the prompt.
func ResolveSchismScene(cs *state.CampaignState, topic, choice string) []string {
	switch topic {
	case TopicSecrecyArgument, TopicWhelpGossip:
	default:
		return badChoice("schism_scene", topic, TopicSecrecyArgument, TopicWhelpGossip)
	}

	guard := "schism_scene_" + topic + "_resolved"
	if cs.Flag(guard) {
		return nil
	}

	arc := cs.EnsureArc(state.ArcCompanions)
	var events []string

	switch choice {
	case "ignore":
		progress := cs.TickClock(trigger.SchismClockID, 1)
		events = append(events, fmt.Sprintf("You let it burn itself out. It doesn't. (schism %d/%d)", progress, clockTotal(cs, trigger.SchismClockID)))
	case "mediate":
		progress := cs.TickClock(trigger.SchismClockID, -1)
		cs.AdjustTrust("njada", 5)
		events = append(events, fmt.Sprintf("You talk them down, for now. (schism %d/%d)", progress, clockTotal(cs, trigger.SchismClockID)))
	case "take_sides":
		progress := cs.TickClock(trigger.SchismClockID, 1)
		arc.SetFlag(quest.FlagWhelpsPolarized, true)
		events = append(events, fmt.Sprintf("Your weight lands on one side of the scale, and everyone sees it. (schism %d/%d)", progress, clockTotal(cs, trigger.SchismClockID)))
	default:
		return badChoice("schism_scene", choice, "ignore", "mediate", "take_sides")
	}

	cs.SetFlag(guard)

	if c, ok := cs.Clock(trigger.SchismClockID); ok && c.Full() &&
		arc.ActiveQuest == string(quest.CompanionsSchismPressure) {
		quest.Activate(cs, quest.CompanionsChain(), quest.CompanionsSchismBreakpoint)
		events = append(events,
			"BREAKPOINT TRIGGERED: the schism boils over.",
			"The hall demands an answer: reconcile, reform, tradition, or civil_war.")
	}

	return events
}

func clockTotal(cs *state.CampaignState, id string) int {
	if c, ok := cs.Clock(id); ok {
		return c.Total
	}
	return state.DefaultClockSegments
}

// ResolveSchismBreakpoint settles the schism. The choice is irreversible
// and recorded; the arc moves on to the Silver Hand's reprisal.
func ResolveSchismBreakpoint(cs *state.CampaignState, choice string) []string {
	if cs.Flag("schism_breakpoint_resolved") {
		return nil
	}

	arc := cs.EnsureArc(state.ArcCompanions)
	var events []string

	switch choice {
	case "reconcile":
		arc.SetFlag(quest.FlagReconciled, true)
		cs.AdjustTrust("kodlak", 10)
		events = append(events, "Old grievances are spoken aloud and buried properly. The hall breathes again.")
	case "reform":
		arc.SetFlag("circle_reformed", true)
		arc.SetFlag(quest.FlagWhelpsPolarized, true)
		events = append(events, "The Circle opens its books. Some of the old guard will not forgive that.")
	case "tradition":
		arc.SetFlag(quest.FlagWhelpsPolarized, true)
		cs.AdjustTrust("njada", -10)
		events = append(events, "The old ways hold. The whelps swallow it, or leave.")
	case "civil_war":
		arc.SetFlag(quest.FlagInternalCivilWar, true)
		events = append(events, "Steel is drawn in Jorrvaskr itself. Whatever comes next, the hall did this to itself first.")
	default:
		return badChoice("schism_breakpoint", choice, "reconcile", "reform", "tradition", "civil_war")
	}

	cs.SetFlag("schism_breakpoint_resolved")
	cs.RecordDecision("schism_breakpoint", choice)

	if arc.ActiveQuest == string(quest.CompanionsSchismBreakpoint) {
		if next := quest.CompleteCompanionsQuest(cs); next != "" {
			events = append(events, "Next: "+string(next))
		}
	}

	return events
}

// ResolveUnderforgeOffer applies the player's answer to the blood offer.
func ResolveUnderforgeOffer(cs *state.CampaignState, choice string) []string {
	if cs.Flag("underforge_offer_resolved") {
		return nil
	}

	arc := cs.EnsureArc(state.ArcCompanions)
	var events []string

	switch choice {
	case "embrace":
		arc.SetFlag(quest.FlagEmbracedCurse, true)
		cs.AdjustTrust("aela", 10)
		events = append(events,
			"The blood takes. The world comes back sharper, louder, hungrier.",
			"Aela watches you stand. \"Welcome to the hunt.\"")
	case "refuse":
		cs.AdjustTrust("kodlak", 10)
		events = append(events,
			"You set the cup down untouched.",
			"Somewhere behind you, Kodlak lets out a breath he has held for years.")
	default:
		return badChoice("underforge_offer", choice, "embrace", "refuse")
	}

	cs.SetFlag("underforge_offer_resolved")
	cs.RecordDecision("underforge_offer", choice)
	return events
}

// ResolveKodlakConfession applies the player's answer when Kodlak asks,
// plainly, what they have seen in the Underforge.
func ResolveKodlakConfession(cs *state.CampaignState, choice string) []string {
	if cs.Flag("kodlak_confession_resolved") {
		return nil
	}

	arc := cs.EnsureArc(state.ArcCompanions)
	var events []string

	switch choice {
	case "honest":
		cs.AdjustTrust("kodlak", 15)
		cs.AdjustTrust("eorlund", 1)
		arc.SetFlag("kodlak_confided", true)
		events = append(events, "Kodlak nods slowly. \"Then you know what I'm asking of you.\"")
	case "deceptive":
		cs.AdjustTrust("kodlak", -10)
		events = append(events, "Kodlak's eyes say he has heard better lies from worse people.")
	default:
		return badChoice("kodlak_confession", choice, "honest", "deceptive")
	}

	cs.SetFlag("kodlak_confession_resolved")
	cs.RecordDecision("kodlak_confession", choice)
	return events
}

// ResolveCureRitual settles the cure-or-sacrifice quest. The dragonbreak
// pre-check decides whether the timeline holds; completion routes through
// the chain's branch predicates either way.
func ResolveCureRitual(cs *state.CampaignState, choice string) []string {
	if cs.Flag("cure_ritual_resolved") {
		return nil
	}

	arc := cs.EnsureArc(state.ArcCompanions)
	if arc.ActiveQuest != string(quest.CompanionsKodlakCure) {
		return []string{"[GM NOTE] the cure ritual is not in play; nothing happens."}
	}

	var events []string
	switch choice {
	case "cure":
		arc.SetFlag(quest.FlagKodlakCured, true)
		events = append(events, "The witch-head burns and something vast leaves the old man's shoulders.")
	case "sacrifice":
		events = append(events, "Kodlak refuses the fire. \"Let it be a death worth a song, then.\"")
	default:
		return badChoice("cure_ritual", choice, "cure", "sacrifice")
	}

	if quest.DragonbreakReady(cs, quest.CompanionsChain()) {
		events = append(events, "The ritual tears crosswise through the hour. This moment will not stay singular.")
	}

	cs.SetFlag("cure_ritual_resolved")
	cs.RecordDecision("cure_ritual", choice)

	if next := quest.CompleteCompanionsQuest(cs); next != "" {
		events = append(events, "Next: "+string(next))
	}
	return events
}
