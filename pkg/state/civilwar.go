package state

// Player alliances.
const (
	AllianceImperial   = "imperial"
	AllianceStormcloak = "stormcloak"
	AllianceNeutral    = "neutral"
)

// Battle of Whiterun statuses.
const (
	BattleNotStarted  = "not_started"
	BattleApproaching = "approaching"
	BattleActive      = "active"
	BattleCompleted   = "completed"
)

// MaxBattleStage is the last stage of the Battle of Whiterun.
const MaxBattleStage = 5

// CivilWarState tracks the civil war arc: the player's allegiance, the
// Battle of Whiterun, and standing faction relationships (-100 to 100).
type CivilWarState struct {
	PlayerAlliance    string `json:"player_alliance,omitempty"`
	NeutralSubfaction string `json:"neutral_subfaction,omitempty"`

	BattleStatus  string `json:"battle_of_whiterun_status,omitempty"`
	BattleStage   int    `json:"battle_of_whiterun_stage,omitempty"` // 0..MaxBattleStage
	BattleFaction string `json:"battle_of_whiterun_faction,omitempty"`
	Allegiance    string `json:"allegiance,omitempty"`

	Eligible     bool   `json:"civil_war_eligible,omitempty"`
	LockedReason string `json:"civil_war_locked_reason,omitempty"`

	FactionRelationship map[string]int `json:"faction_relationship,omitempty"`
}

// AdjustFactionRelationship moves a faction relationship by delta, clamped
// to [-100, 100], and returns the new value.
func (cw *CivilWarState) AdjustFactionRelationship(faction string, delta int) int {
	if cw.FactionRelationship == nil {
		cw.FactionRelationship = make(map[string]int)
	}
	v := cw.FactionRelationship[faction] + delta
	if v > 100 {
		v = 100
	}
	if v < -100 {
		v = -100
	}
	cw.FactionRelationship[faction] = v
	return v
}
