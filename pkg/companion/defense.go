package companion

import (
	"fmt"
	"strings"

	"github.com/skaldic/campaign-engine/pkg/quest"
	"github.com/skaldic/campaign-engine/pkg/state"
)

// baseRoster is the fixed Jorrvaskr defense roster, most senior first.
var baseRoster = []string{
	"kodlak", "vilkas", "farkas", "aela", "athis", "njada", "torvar", "ria",
}

// lethalRisk holds the NPCs whose second consequence kills unless a save
// gate succeeds.
var lethalRisk = map[string]bool{
	"kodlak": true,
	"vilkas": true,
}

// IsLethalRisk reports whether a defender can die during the assault.
func IsLethalRisk(npcID string) bool {
	return lethalRisk[npcID]
}

// capacityModifier is one additive adjustment to the pool's effective
// strength, keyed on a companions-arc flag.
type capacityModifier struct {
	flag   string
	delta  int
	reason string
}

var capacityModifiers = []capacityModifier{
	{quest.FlagInternalCivilWar, -2, "internal civil war: the hall fights itself"},
	{quest.FlagWhelpsPolarized, -1, "the whelps have picked sides"},
	{quest.FlagReconciled, +1, "the reconciliation holds"},
}

// BuildPool assembles the defense pool for the Jorrvaskr assault. The call
// is idempotent: an existing pool is returned untouched. Pre-deceased
// roster members are dropped; capacity modifiers shrink or grow effective
// strength without removing anyone who still stands.
func BuildPool(cs *state.CampaignState) *state.DefensePool {
	comps := cs.EnsureCompanions()
	if comps.DefensePool != nil {
		return comps.DefensePool
	}

	arc := cs.EnsureArc(state.ArcCompanions)
	pool := &state.DefensePool{
		Defenders: make(map[string]*state.Defender),
	}

	for _, npcID := range baseRoster {
		if arc.Flag(npcID + "_dead") {
			continue
		}
		pool.Defenders[npcID] = &state.Defender{Status: state.DefenderActive}
	}
	pool.Capacity = len(pool.Defenders)

	for _, m := range capacityModifiers {
		if arc.Flag(m.flag) {
			pool.Capacity += m.delta
			pool.ModifiersApplied = append(pool.ModifiersApplied, m.reason)
		}
	}

	comps.DefensePool = pool
	return pool
}

// ApplyConsequence lands a hit on a defender. The first hit records the
// consequence (and, for lethal-risk NPCs, opens a save gate); the second
// takes the defender out. A taken-out defender absorbs nothing further, and
// a wounded one stays wounded.
func ApplyConsequence(cs *state.CampaignState, npcID, text string) []string {
	// An empty consequence is indistinguishable from an unhit defender, so
	// it never counts as a hit.
	if strings.TrimSpace(text) == "" {
		return []string{fmt.Sprintf("[GM NOTE] a consequence for %s needs text; nothing applied.", npcID)}
	}

	pool := BuildPool(cs)
	d, ok := pool.Defenders[npcID]
	if !ok {
		return []string{fmt.Sprintf("[GM NOTE] %s is not in the defense pool; no consequence applied.", npcID)}
	}

	switch d.Status {
	case state.DefenderTakenOut:
		return []string{fmt.Sprintf("%s is already down; cannot apply further consequences.", npcID)}
	case state.DefenderWounded:
		return []string{fmt.Sprintf("%s is wounded and shielded from the fight; cannot apply %q.", npcID, text)}
	}

	if d.Consequence == "" {
		d.Consequence = text
		events := []string{fmt.Sprintf("%s staggers: %s", npcID, text)}
		if IsLethalRisk(npcID) {
			events = append(events, fmt.Sprintf("SAVE GATE AVAILABLE: %s can still be pulled back from the edge.", npcID))
		}
		return events
	}

	// Second hit.
	d.Status = state.DefenderTakenOut
	events := []string{fmt.Sprintf("%s goes down: %s", npcID, text)}
	if IsLethalRisk(npcID) {
		arc := cs.EnsureArc(state.ArcCompanions)
		arc.SetFlag(npcID+"_dead_assault", true)
		events = append(events, fmt.Sprintf("%s is dead. The hall will remember.", npcID))
		if bothLethalDead(arc) {
			arc.SetFlag(quest.FlagHallShattered, true)
			events = append(events, "Jorrvaskr is shattered. Nothing here will be as it was.")
		}
	}
	return events
}

func bothLethalDead(arc *state.ArcState) bool {
	for npcID := range lethalRisk {
		if !arc.Flag(npcID + "_dead_assault") {
			return false
		}
	}
	return true
}

// Save gate outcomes.
const (
	SaveSuccess = "success"
	SaveFailure = "failure"
)

// AttemptSaveGate resolves a save gate for a lethal-risk defender. Success
// leaves the NPC wounded and out of the fight; failure takes them out and
// records the death. Requests for NPCs outside the pool or the lethal-risk
// set are pool violations: an event, no mutation.
func AttemptSaveGate(cs *state.CampaignState, npcID, outcome string) []string {
	pool := BuildPool(cs)
	d, ok := pool.Defenders[npcID]
	if !ok {
		return []string{fmt.Sprintf("[GM NOTE] pool violation: %s is not in the defense pool.", npcID)}
	}
	if !IsLethalRisk(npcID) {
		return []string{fmt.Sprintf("[GM NOTE] pool violation: %s has no save gate; only lethal-risk defenders do.", npcID)}
	}
	if d.Status == state.DefenderTakenOut {
		return []string{fmt.Sprintf("%s is already down; the gate has closed.", npcID)}
	}

	switch outcome {
	case SaveSuccess:
		d.Status = state.DefenderWounded
		return []string{fmt.Sprintf("%s is dragged clear, bleeding but alive.", npcID)}
	case SaveFailure:
		d.Status = state.DefenderTakenOut
		arc := cs.EnsureArc(state.ArcCompanions)
		arc.SetFlag(npcID+"_dead_assault", true)
		events := []string{fmt.Sprintf("The gate fails. %s does not rise.", npcID)}
		if bothLethalDead(arc) {
			arc.SetFlag(quest.FlagHallShattered, true)
			events = append(events, "Jorrvaskr is shattered. Nothing here will be as it was.")
		}
		return events
	default:
		return []string{fmt.Sprintf("[GM NOTE] unknown save gate outcome %q for %s; expected success or failure.", outcome, npcID)}
	}
}
