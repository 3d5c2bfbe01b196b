// Package civilwar implements the faction-intro gate that locks the Battle
// of Whiterun until the prerequisite arc is complete.
package civilwar

import (
	"fmt"

	"github.com/skaldic/campaign-engine/pkg/state"
)

// LockedError is returned when the battle is started before the gate opens.
// The reason names the missing flag.
type LockedError struct {
	Reason string
}

func (e *LockedError) Error() string {
	return "civil war locked: " + e.Reason
}

// introFlags maps an alliance to the faction-intro flag that must be set
// before the Battle of Whiterun may start.
var introFlags = map[string]string{
	state.AllianceImperial:   "imperial_intro_complete",
	state.AllianceStormcloak: "stormcloak_intro_complete",
}

// subfactionFlags maps a neutral player's subfaction to its intro flag.
var subfactionFlags = map[string]string{
	"companions":       "companions_intro_complete",
	"college":          "college_intro_complete",
	"thieves_guild":    "tg_intro_complete",
	"dark_brotherhood": "db_intro_complete",
}

// CheckEligibility reports whether the Battle of Whiterun may start, and if
// not, the reason. A non-neutral player may pass overrideFaction to evaluate
// a different alliance's flag at the moment of choice; a neutral player's
// subfaction flag always wins over any override.
func CheckEligibility(cs *state.CampaignState, overrideFaction string) (bool, string) {
	cw := cs.EnsureCivilWar()

	if cw.PlayerAlliance == state.AllianceNeutral {
		if cw.NeutralSubfaction != "" {
			flag, ok := subfactionFlags[cw.NeutralSubfaction]
			if !ok {
				return false, fmt.Sprintf("unknown neutral subfaction %q", cw.NeutralSubfaction)
			}
			if !cs.FactionFlag(flag) {
				return false, "missing flag: " + flag
			}
			return true, ""
		}
		if cs.FactionFlag("neutral_war_catalyst") || cs.FactionFlag("neutral_war_catalyst_complete") {
			return true, ""
		}
		return false, "missing flag: neutral_war_catalyst"
	}

	alliance := cw.PlayerAlliance
	if overrideFaction != "" {
		alliance = overrideFaction
	}
	flag, ok := introFlags[alliance]
	if !ok {
		if flag, ok = subfactionFlags[alliance]; !ok {
			return false, fmt.Sprintf("unknown alliance %q", alliance)
		}
	}
	if !cs.FactionFlag(flag) {
		return false, "missing flag: " + flag
	}
	return true, ""
}

// MarkFactionIntroComplete records that a faction's intro arc finished,
// opening its side of the gate.
func MarkFactionIntroComplete(cs *state.CampaignState, faction string) {
	if flag, ok := introFlags[faction]; ok {
		cs.SetFactionFlag(flag, true)
		return
	}
	if flag, ok := subfactionFlags[faction]; ok {
		cs.SetFactionFlag(flag, true)
		return
	}
	cs.SetFactionFlag(faction+"_intro_complete", true)
}

// StartBattleOfWhiterun runs the gate and, when it opens, flips the battle
// to active, recording the allegiance both ways and clearing any stale
// locked reason. A closed gate returns LockedError and records why.
func StartBattleOfWhiterun(cs *state.CampaignState, alliance string) error {
	cw := cs.EnsureCivilWar()

	eligible, reason := CheckEligibility(cs, alliance)
	if !eligible {
		cw.Eligible = false
		cw.LockedReason = reason
		return &LockedError{Reason: reason}
	}

	cw.Eligible = true
	cw.LockedReason = ""
	cw.BattleStatus = state.BattleActive
	cw.BattleStage = 0
	cw.Allegiance = alliance
	if cw.PlayerAlliance == "" {
		cw.PlayerAlliance = alliance
	}
	cw.BattleFaction = alliance
	return nil
}

// AdvanceBattleStage moves the Battle of Whiterun forward one stage,
// completing the battle at the last stage. Inactive battles do not advance.
func AdvanceBattleStage(cs *state.CampaignState) []string {
	cw := cs.EnsureCivilWar()
	if cw.BattleStatus != state.BattleActive {
		return nil
	}

	if cw.BattleStage < state.MaxBattleStage {
		cw.BattleStage++
	}
	if cw.BattleStage >= state.MaxBattleStage {
		cw.BattleStatus = state.BattleCompleted
		return []string{
			fmt.Sprintf("The Battle of Whiterun is over. The %s banner flies above Dragonsreach.", cw.BattleFaction),
		}
	}
	return []string{
		fmt.Sprintf("The battle grinds on (stage %d of %d).", cw.BattleStage, state.MaxBattleStage),
	}
}
