// Command validate checks a campaign document against the engine's
// invariants. Exit codes: 0 valid, 1 invariant violations, 2 unreadable or
// corrupt document.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/skaldic/campaign-engine/internal/storage"
	"github.com/skaldic/campaign-engine/pkg/quest"
	"github.com/skaldic/campaign-engine/pkg/state"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <campaign.json>\n", os.Args[0])
		os.Exit(2)
	}

	filename := os.Args[1]
	cs, err := loadDocument(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot read campaign: %v\n", err)
		os.Exit(2)
	}

	v := &CampaignValidator{}
	v.validate(cs)

	if len(v.errors) > 0 {
		fmt.Fprintf(os.Stderr, "Validation errors in %s:\n%s\n", filename, strings.Join(v.errors, "\n"))
		os.Exit(1)
	}

	fmt.Println("Campaign document is valid!")
}

func loadDocument(filename string) (*state.CampaignState, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	decoded, err := storage.DecodeDocument(raw)
	if err != nil {
		return nil, &storage.DocumentCorruptError{Key: filename, Err: err}
	}
	var cs state.CampaignState
	if err := json.Unmarshal(decoded, &cs); err != nil {
		return nil, &storage.DocumentCorruptError{Key: filename, Err: err}
	}
	return &cs, nil
}

type CampaignValidator struct {
	errors []string
}

func (v *CampaignValidator) addError(format string, args ...any) {
	v.errors = append(v.errors, "  - "+fmt.Sprintf(format, args...))
}

func (v *CampaignValidator) validate(cs *state.CampaignState) {
	v.validateClocks(cs)
	v.validateArcs(cs)
	v.validateCompanions(cs)
	v.validateCivilWar(cs)
	v.validateTrust(cs)
	v.validateKeys(cs)
}

func (v *CampaignValidator) validateClocks(cs *state.CampaignState) {
	check := func(source string, clocks map[string]*state.Clock) {
		for id, c := range clocks {
			if c == nil {
				v.addError("%s clock '%s' is null", source, id)
				continue
			}
			if c.Total <= 0 {
				v.addError("%s clock '%s' has %d segments", source, id, c.Total)
			}
			if c.Current < 0 || c.Current > c.Total {
				v.addError("%s clock '%s' is at %d of %d", source, id, c.Current, c.Total)
			}
		}
	}
	check("clocks", cs.Clocks)
	check("campaign_clocks", cs.LegacyClocks)
}

func (v *CampaignValidator) validateArcs(cs *state.CampaignState) {
	for arcID, arc := range cs.Arcs {
		chain, known := quest.ChainFor(arcID)
		if !known {
			// Arcs the engine does not drive are allowed; their quests are
			// the table's business.
			continue
		}
		if arc.ActiveQuest != "" {
			if _, ok := chain.Catalog[quest.ID(arc.ActiveQuest)]; !ok {
				v.addError("arc '%s' has unknown active quest '%s'", arcID, arc.ActiveQuest)
			}
		}
		for _, q := range arc.CompletedQuests {
			if _, ok := chain.Catalog[quest.ID(q)]; !ok {
				v.addError("arc '%s' completed unknown quest '%s'", arcID, q)
			}
		}
		for q, status := range arc.QuestProgress {
			switch status {
			case state.QuestActive, state.QuestCompleted, state.QuestLocked, state.QuestMemory:
			default:
				v.addError("arc '%s' quest '%s' has unknown status '%s'", arcID, q, status)
			}
		}
	}
}

func (v *CampaignValidator) validateCompanions(cs *state.CampaignState) {
	if cs.Companions == nil {
		return
	}
	comp := cs.Companions

	seen := map[string]string{}
	lists := []struct {
		name string
		list []state.Companion
	}{
		{"active", comp.Active},
		{"available", comp.Available},
		{"dismissed", comp.Dismissed},
	}
	for _, l := range lists {
		for _, c := range l.list {
			if c.NPCID == "" {
				v.addError("companion in %s list has no npc_id", l.name)
				continue
			}
			if prev, dup := seen[c.NPCID]; dup {
				v.addError("companion '%s' appears in both %s and %s lists", c.NPCID, prev, l.name)
			}
			seen[c.NPCID] = l.name
			if c.Loyalty < 0 || c.Loyalty > 100 {
				v.addError("companion '%s' loyalty %d is out of range", c.NPCID, c.Loyalty)
			}
		}
	}

	if pool := comp.DefensePool; pool != nil {
		for npc, d := range pool.Defenders {
			if d == nil {
				v.addError("defender '%s' is null", npc)
				continue
			}
			switch d.Status {
			case state.DefenderActive, state.DefenderWounded, state.DefenderTakenOut:
			default:
				v.addError("defender '%s' has unknown status '%s'", npc, d.Status)
			}
		}
	}
}

func (v *CampaignValidator) validateCivilWar(cs *state.CampaignState) {
	cw := cs.CivilWar
	if cw == nil {
		return
	}

	switch cw.PlayerAlliance {
	case "", state.AllianceImperial, state.AllianceStormcloak, state.AllianceNeutral:
	default:
		v.addError("unknown player_alliance '%s'", cw.PlayerAlliance)
	}
	if cw.NeutralSubfaction != "" && cw.PlayerAlliance != state.AllianceNeutral {
		v.addError("neutral_subfaction '%s' set for alliance '%s'", cw.NeutralSubfaction, cw.PlayerAlliance)
	}

	switch cw.BattleStatus {
	case "", state.BattleNotStarted, state.BattleApproaching, state.BattleActive, state.BattleCompleted:
	default:
		v.addError("unknown battle status '%s'", cw.BattleStatus)
	}
	if cw.BattleStage < 0 || cw.BattleStage > state.MaxBattleStage {
		v.addError("battle stage %d is out of range", cw.BattleStage)
	}
	if cw.BattleStatus == state.BattleCompleted && cw.BattleStage < state.MaxBattleStage {
		v.addError("battle marked completed at stage %d", cw.BattleStage)
	}
	if cw.Eligible && cw.LockedReason != "" {
		v.addError("civil war is eligible but still records locked reason '%s'", cw.LockedReason)
	}

	for faction, rel := range cw.FactionRelationship {
		if rel < -100 || rel > 100 {
			v.addError("faction relationship '%s' is %d, outside [-100, 100]", faction, rel)
		}
	}
}

func (v *CampaignValidator) validateTrust(cs *state.CampaignState) {
	for npc, ts := range cs.NPCTrust {
		if ts == nil {
			v.addError("npc_trust '%s' is null", npc)
			continue
		}
		if ts.Trust < 0 || ts.Trust > 100 {
			v.addError("npc_trust '%s' is %d, outside [0, 100]", npc, ts.Trust)
		}
	}
}

var validKeyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func (v *CampaignValidator) validateKeys(cs *state.CampaignState) {
	for key := range cs.SceneFlags {
		if !validKeyRegex.MatchString(key) {
			v.addError("scene flag '%s' should be lowercase snake_case", key)
		}
	}
	for key := range cs.BranchingDecisions {
		if !validKeyRegex.MatchString(key) {
			v.addError("branching decision '%s' should be lowercase snake_case", key)
		}
	}
}
