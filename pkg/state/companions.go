package state

import "time"

// Companion roster statuses.
const (
	CompanionActive      = "active"
	CompanionAvailable   = "available"
	CompanionDismissed   = "dismissed"
	CompanionUnavailable = "unavailable"
)

// LoyaltyChange is one entry in a companion's loyalty history.
type LoyaltyChange struct {
	Change     int       `json:"change"`
	Reason     string    `json:"reason"`
	NewLoyalty int       `json:"new_loyalty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Companion is a recruitable NPC. A companion appears in at most one of the
// active/available/dismissed lists at a time.
type Companion struct {
	NPCID              string            `json:"npc_id"`
	Name               string            `json:"name"`
	Status             string            `json:"status"`
	Loyalty            int               `json:"loyalty"` // 0-100, saturating
	Location           string            `json:"location,omitempty"`
	Faction            string            `json:"faction,omitempty"`
	FactionAffinity    string            `json:"faction_affinity,omitempty"`
	RecruitmentTrigger string            `json:"recruitment_trigger,omitempty"`
	Relationships      map[string]string `json:"relationships,omitempty"`
	CompanionStatus    map[string]string `json:"companion_status,omitempty"`
	LoyaltyHistory     []LoyaltyChange   `json:"loyalty_history,omitempty"`
}

// Defender statuses within a defense pool.
const (
	DefenderActive   = "active"
	DefenderWounded  = "wounded"
	DefenderTakenOut = "taken_out"
)

// Defender is one roster member's condition during a set-piece assault.
type Defender struct {
	Status      string `json:"status"`
	Consequence string `json:"consequence,omitempty"`
}

// DefensePool is the transient roster/capacity model for a set-piece
// defense. It is built lazily at the start of an assault and kept afterward
// as the historical record of the outcome.
type DefensePool struct {
	Defenders        map[string]*Defender `json:"defenders"`
	Capacity         int                  `json:"capacity"`
	ModifiersApplied []string             `json:"modifiers_applied,omitempty"`
}

// CompanionsState owns the roster lists and the defense pool.
type CompanionsState struct {
	Active      []Companion  `json:"active_companions,omitempty"`
	Available   []Companion  `json:"available_companions,omitempty"`
	Dismissed   []Companion  `json:"dismissed_companions,omitempty"`
	DefensePool *DefensePool `json:"defense_pool,omitempty"`
}
