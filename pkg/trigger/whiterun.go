package trigger

import (
	"strings"

	"github.com/skaldic/campaign-engine/pkg/companion"
	"github.com/skaldic/campaign-engine/pkg/quest"
	"github.com/skaldic/campaign-engine/pkg/state"
)

// WhiterunTriggers covers the city, Jorrvaskr, and the Skyforge. Most
// specific locations match first.
func WhiterunTriggers(loc string, cs *state.CampaignState) []string {
	var events []string

	switch {
	case strings.Contains(loc, "jorrvaskr"):
		events = append(events, jorrvaskrScenes(loc, cs)...)
	case strings.Contains(loc, "skyforge"):
		events = append(events, skyforgeScenes(cs)...)
	case strings.Contains(loc, "dragonsreach"):
		events = append(events, dragonsreachScenes(cs)...)
	case strings.Contains(loc, "wind_district"):
		events = append(events, "The Gildergreen's branches creak over the Wind District.")
		if IsNight(cs) {
			events = append(events, "Heimskr's pulpit stands empty; even Talos gets the night off.")
		}
	case strings.Contains(loc, "plains_district") || strings.Contains(loc, "market"):
		events = append(events, "The market stalls of the Plains District ring with haggling.")
	default:
		events = append(events, "Whiterun rises on its hill, Dragonsreach above and the plains below.")
		if cs.Once("whiterun_first_arrival") {
			events = append(events, "A guard waves you through the gate: \"City's open, long as you keep your blade peaceful.\"")
		}
	}

	cw := cs.EnsureCivilWar()
	switch cw.BattleStatus {
	case state.BattleApproaching:
		events = append(events, "Barricades are going up along the road. Whiterun is bracing for something.")
	case state.BattleActive:
		events = append(events, "Smoke hangs over the walls. The Battle of Whiterun has begun.")
	case state.BattleCompleted:
		if cs.Once("whiterun_battle_aftermath") {
			events = append(events, "Masons patch the scorched walls. The banners over the gate have changed.")
		}
	}

	if comps := cs.Companions; comps != nil && companion.IsPresent(comps.Active, "Lydia") {
		events = append(events, "Lydia glances up at Dragonsreach. \"Home, my Thane. Such as it is.\"")
	}

	return events
}

func jorrvaskrScenes(loc string, cs *state.CampaignState) []string {
	var events []string
	events = append(events, "Jorrvaskr's upturned hull roof sheds the weather as it has for five hundred years.")

	arc := cs.EnsureArc(state.ArcCompanions)
	switch quest.ID(arc.ActiveQuest) {
	case quest.CompanionsIntro:
		if cs.Once("jorrvaskr_first_entry") {
			events = append(events,
				"The mead hall is loud with a brawl nobody moves to stop.",
				"Kodlak Whitemane studies you from the far table. \"A stranger comes to our hall.\"")
		}
	case quest.CompanionsSchismPressure:
		events = append(events, "Conversations die when you cross the hall. The whelps watch the Circle; the Circle watches the doors.")
	case quest.CompanionsKodlakCure, quest.CompanionsDragonbreakEcho:
		events = append(events, "Kodlak's door stands ajar. The old man's ledger lies open on his desk.")
	}

	if strings.Contains(loc, "downstairs") && arc.Flag(quest.FlagEmbracedCurse) {
		if cs.Once("jorrvaskr_downstairs_bloodmark") {
			events = append(events, "Your blood stirs near the Underforge passage. The beast knows the way down.")
		}
	}

	if arc.Flag(quest.FlagHallShattered) {
		events = append(events, "The hall is quiet in a way mead halls should never be.")
	}

	if IsNight(cs) {
		events = append(events, "Night in Jorrvaskr: embers, snoring, and somewhere below, a sound like a wolf turning over.")
	}

	return events
}

func skyforgeScenes(cs *state.CampaignState) []string {
	events := []string{"The Skyforge glows above Jorrvaskr, older than the city under it."}

	// Eorlund's trust runs on its own small clock.
	if cs.TrustOf("eorlund") >= 4 {
		events = append(events, "Eorlund nods you over without being asked. That is as warm as he gets.")
	} else if cs.Once("skyforge_first_visit") {
		events = append(events, "Eorlund Gray-Mane doesn't look up from the steel. \"The forge doesn't care who you are.\"")
	}
	return events
}

func dragonsreachScenes(cs *state.CampaignState) []string {
	events := []string{"Dragonsreach's great hall smells of woodsmoke and old treaties."}

	if arc, ok := cs.Arc(state.ArcMain); ok && arc.ActiveQuest == string(quest.MainDragonRising) {
		events = append(events, "The Jarl's war table is covered in reports from the western watchtower.")
	}

	cw := cs.EnsureCivilWar()
	if cw.BattleStatus == state.BattleActive {
		events = append(events, "Runners burst through the doors with word from the barricades.")
	}
	return events
}
