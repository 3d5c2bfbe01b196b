package state

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Arc identifiers. Each arc owns a section under quest_arcs.
const (
	ArcMain       = "main"
	ArcCompanions = "companions"
	ArcCollege    = "college"
	ArcSilverHand = "silver_hand"
)

// QuestStatus is the progression state of a single quest within an arc.
type QuestStatus string

const (
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
	QuestLocked    QuestStatus = "locked"
	QuestMemory    QuestStatus = "memory" // recorded but dormant; a later gate may promote it
)

// ArcState is the per-arc quest progression record.
type ArcState struct {
	ActiveQuest     string                 `json:"active_quest,omitempty"`
	CompletedQuests []string               `json:"completed_quests,omitempty"`
	QuestProgress   map[string]QuestStatus `json:"quest_progress,omitempty"`
	Counters        map[string]int         `json:"counters,omitempty"`
	Flags           map[string]bool        `json:"flags,omitempty"`
}

// Flag returns an arc-specific flag. Unset flags are false.
func (a *ArcState) Flag(name string) bool {
	return a.Flags[name]
}

// SetFlag sets an arc-specific flag.
func (a *ArcState) SetFlag(name string, v bool) {
	if a.Flags == nil {
		a.Flags = make(map[string]bool)
	}
	a.Flags[name] = v
}

// Counter returns an arc-specific counter. Unset counters are 0.
func (a *ArcState) Counter(name string) int {
	return a.Counters[name]
}

// AddCounter adds delta to an arc counter and returns the new value.
func (a *ArcState) AddCounter(name string, delta int) int {
	if a.Counters == nil {
		a.Counters = make(map[string]int)
	}
	a.Counters[name] += delta
	return a.Counters[name]
}

// SetProgress records a quest's progression status.
func (a *ArcState) SetProgress(questID string, status QuestStatus) {
	if a.QuestProgress == nil {
		a.QuestProgress = make(map[string]QuestStatus)
	}
	a.QuestProgress[questID] = status
}

// WorldState holds session-scoped world facts the triggers branch on.
type WorldState struct {
	TimeOfDay string `json:"time_of_day,omitempty"` // free-form: "night", "evening", "morning", ...
	Hour      *int   `json:"hour,omitempty"`        // 0-23 when the GM tracks exact hours
	Weather   string `json:"weather,omitempty"`
}

// PC is a player character record. The session-zero wizard produces these;
// the engine only reads them.
type PC struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Race            string `json:"race,omitempty"`
	Background      string `json:"background,omitempty"`
	StartingFaction string `json:"starting_faction,omitempty"`
}

// SessionLogEntry is one journal line: the events a single dispatch or
// resolution produced. Export collaborators consume these; the engine core
// never reads them back.
type SessionLogEntry struct {
	At       time.Time `json:"at"`
	Location string    `json:"location,omitempty"`
	Events   []string  `json:"events"`
}

// CampaignState is the root document for a campaign. One document per
// campaign, single writer. Sections are created lazily on first access, and
// unknown top-level fields survive a load/save round trip.
type CampaignState struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`

	SceneFlags   map[string]bool   `json:"scene_flags,omitempty"`
	Clocks       map[string]*Clock `json:"clocks,omitempty"`
	LegacyClocks map[string]*Clock `json:"campaign_clocks,omitempty"` // pre-migration key, merged on access

	Arcs       map[string]*ArcState `json:"quest_arcs,omitempty"`
	Companions *CompanionsState     `json:"companions,omitempty"`
	CivilWar   *CivilWarState       `json:"civil_war,omitempty"`

	NPCTrust     map[string]*TrustScore `json:"npc_trust,omitempty"`
	FactionFlags map[string]bool        `json:"faction_flags,omitempty"`

	// Keyed npc_id -> pc_id -> record. Legacy flat string entries are moved
	// to npc_first_impressions_legacy during unmarshal.
	FirstImpressions       map[string]map[string]*FirstImpression `json:"-"`
	LegacyFirstImpressions map[string]string                      `json:"npc_first_impressions_legacy,omitempty"`

	BranchingDecisions map[string]string `json:"branching_decisions,omitempty"`

	PCs        []PC              `json:"pcs,omitempty"`
	World      *WorldState       `json:"world,omitempty"`
	SessionLog []SessionLogEntry `json:"session_log,omitempty"`

	LastUpdated time.Time `json:"last_updated"`

	// Unknown top-level fields, preserved verbatim across load/save.
	Extra map[string]json.RawMessage `json:"-"`
}

// NewCampaignState creates an empty campaign document.
func NewCampaignState(name string) *CampaignState {
	return &CampaignState{
		ID:   uuid.New(),
		Name: name,
	}
}

// EnsureArc returns the arc state for id, creating it if missing.
func (cs *CampaignState) EnsureArc(id string) *ArcState {
	if cs.Arcs == nil {
		cs.Arcs = make(map[string]*ArcState)
	}
	arc, ok := cs.Arcs[id]
	if !ok {
		arc = &ArcState{}
		cs.Arcs[id] = arc
	}
	return arc
}

// Arc returns the arc state for id without creating it.
func (cs *CampaignState) Arc(id string) (*ArcState, bool) {
	arc, ok := cs.Arcs[id]
	return arc, ok
}

// EnsureCompanions returns the companions section, creating it if missing.
func (cs *CampaignState) EnsureCompanions() *CompanionsState {
	if cs.Companions == nil {
		cs.Companions = &CompanionsState{}
	}
	return cs.Companions
}

// EnsureCivilWar returns the civil war section, creating it if missing.
func (cs *CampaignState) EnsureCivilWar() *CivilWarState {
	if cs.CivilWar == nil {
		cs.CivilWar = &CivilWarState{
			BattleStatus: BattleNotStarted,
		}
	}
	return cs.CivilWar
}

// FactionFlag returns a faction gate flag. Unset flags are false.
func (cs *CampaignState) FactionFlag(name string) bool {
	return cs.FactionFlags[name]
}

// SetFactionFlag sets a faction gate flag.
func (cs *CampaignState) SetFactionFlag(name string, v bool) {
	if cs.FactionFlags == nil {
		cs.FactionFlags = make(map[string]bool)
	}
	cs.FactionFlags[name] = v
}

// RecordDecision stores an irreversible choice under a stable key.
// The first record wins; later writes to the same key are ignored.
func (cs *CampaignState) RecordDecision(key, choice string) {
	if cs.BranchingDecisions == nil {
		cs.BranchingDecisions = make(map[string]string)
	}
	if _, ok := cs.BranchingDecisions[key]; !ok {
		cs.BranchingDecisions[key] = choice
	}
}

// AppendSession appends a journal entry. Empty event lists are dropped.
func (cs *CampaignState) AppendSession(location string, events []string) {
	if len(events) == 0 {
		return
	}
	cs.SessionLog = append(cs.SessionLog, SessionLogEntry{
		At:       time.Now().UTC(),
		Location: location,
		Events:   events,
	})
}

// knownKeys are the top-level JSON keys owned by the typed schema. Anything
// else round-trips through Extra.
var knownKeys = []string{
	"id", "name", "scene_flags", "clocks", "campaign_clocks", "quest_arcs",
	"companions", "civil_war", "npc_trust", "faction_flags",
	"npc_first_impressions", "npc_first_impressions_legacy",
	"branching_decisions", "pcs", "world", "session_log", "last_updated",
}

func (cs *CampaignState) UnmarshalJSON(data []byte) error {
	type alias CampaignState
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*cs = CampaignState(a)

	if fi, ok := raw["npc_first_impressions"]; ok {
		if err := cs.unmarshalFirstImpressions(fi); err != nil {
			return err
		}
	}

	for _, k := range knownKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		cs.Extra = raw
	}
	return nil
}

func (cs CampaignState) MarshalJSON() ([]byte, error) {
	type alias CampaignState
	data, err := json.Marshal(alias(cs))
	if err != nil {
		return nil, err
	}
	if len(cs.Extra) == 0 && len(cs.FirstImpressions) == 0 {
		return data, nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if len(cs.FirstImpressions) > 0 {
		fi, err := json.Marshal(cs.FirstImpressions)
		if err != nil {
			return nil, err
		}
		m["npc_first_impressions"] = fi
	}
	for k, v := range cs.Extra {
		if _, ok := m[k]; !ok {
			m[k] = v
		}
	}
	return json.Marshal(m)
}
