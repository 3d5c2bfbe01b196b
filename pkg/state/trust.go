package state

import (
	"encoding/json"
	"time"
)

// TrustScore is a 0-100 saturating trust record for an NPC.
type TrustScore struct {
	Trust int    `json:"trust"`
	Scale string `json:"scale"`
}

// trustClockNPCs maps NPCs whose trust the table tracks as a 0-6 clock
// rather than a 0-100 score. Both representations stay addressable: writes
// tick the clock and reads pass through to it.
var trustClockNPCs = map[string]string{
	"eorlund": "eorlund_trust",
}

// TrustOf returns an NPC's trust on its native scale. Unknown NPCs are 0.
func (cs *CampaignState) TrustOf(npcID string) int {
	if clockID, ok := trustClockNPCs[npcID]; ok {
		return cs.ClockProgress(clockID)
	}
	if ts, ok := cs.NPCTrust[npcID]; ok {
		return ts.Trust
	}
	return 0
}

// AdjustTrust moves an NPC's trust by delta, saturating at the ends of the
// NPC's scale, and returns the new value.
func (cs *CampaignState) AdjustTrust(npcID string, delta int) int {
	if clockID, ok := trustClockNPCs[npcID]; ok {
		return cs.TickClock(clockID, delta)
	}
	if cs.NPCTrust == nil {
		cs.NPCTrust = make(map[string]*TrustScore)
	}
	ts, ok := cs.NPCTrust[npcID]
	if !ok {
		ts = &TrustScore{Scale: "0-100"}
		cs.NPCTrust[npcID] = ts
	}
	ts.Trust += delta
	if ts.Trust < 0 {
		ts.Trust = 0
	}
	if ts.Trust > 100 {
		ts.Trust = 100
	}
	return ts.Trust
}

// FirstImpression records how an NPC read a PC on first meeting.
type FirstImpression struct {
	Timestamp          time.Time `json:"timestamp"`
	Disposition        string    `json:"disposition"`
	Line               string    `json:"line,omitempty"`
	Source             string    `json:"source,omitempty"`
	RecognitionTags    []string  `json:"recognition_tags,omitempty"`
	AppearanceRevision int       `json:"appearance_revision,omitempty"`
}

// RecordFirstImpression stores a first-impression record for (npc, pc).
// Existing records are not overwritten; first impressions only happen once.
func (cs *CampaignState) RecordFirstImpression(npcID, pcID string, imp *FirstImpression) {
	if cs.FirstImpressions == nil {
		cs.FirstImpressions = make(map[string]map[string]*FirstImpression)
	}
	byPC, ok := cs.FirstImpressions[npcID]
	if !ok {
		byPC = make(map[string]*FirstImpression)
		cs.FirstImpressions[npcID] = byPC
	}
	if _, ok := byPC[pcID]; !ok {
		byPC[pcID] = imp
	}
}

// unmarshalFirstImpressions absorbs schema drift in npc_first_impressions:
// modern entries are per-PC record maps, legacy entries are flat strings.
// Legacy strings move to npc_first_impressions_legacy without loss.
func (cs *CampaignState) unmarshalFirstImpressions(data json.RawMessage) error {
	var perNPC map[string]json.RawMessage
	if err := json.Unmarshal(data, &perNPC); err != nil {
		return err
	}
	for npcID, raw := range perNPC {
		var byPC map[string]*FirstImpression
		if err := json.Unmarshal(raw, &byPC); err == nil {
			if cs.FirstImpressions == nil {
				cs.FirstImpressions = make(map[string]map[string]*FirstImpression)
			}
			cs.FirstImpressions[npcID] = byPC
			continue
		}
		var line string
		if err := json.Unmarshal(raw, &line); err != nil {
			return err
		}
		if cs.LegacyFirstImpressions == nil {
			cs.LegacyFirstImpressions = make(map[string]string)
		}
		cs.LegacyFirstImpressions[npcID] = line
	}
	return nil
}
