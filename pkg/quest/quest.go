// Package quest implements linear quest chains with conditional branch
// insertion. Each arc declares a chain map (quest -> successor) plus branch
// predicates that divert the chain when the arc state calls for it.
package quest

import (
	"github.com/skaldic/campaign-engine/pkg/state"
)

// ID identifies a quest within an arc's catalog.
type ID string

// Quest is a catalog entry. Narrative text is literal; the engine emits it
// verbatim.
type Quest struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Branch diverts the chain when its predicate holds against the arc state.
// Branches are evaluated before the default chain map.
type Branch struct {
	When func(*state.ArcState) bool
	Next ID
}

// Chain is an arc's quest catalog, successor map, and branch predicates.
type Chain struct {
	Arc     string
	Catalog map[ID]Quest
	Order   map[ID]ID // successor per quest; missing entry means terminal
	Branch  map[ID][]Branch

	// Dragonbreak is the arc's timeline-fracture pre-check. It reads the
	// arc state and never mutates; upstream code consults it to decide
	// whether a fracture beat should fire.
	Dragonbreak func(*state.ArcState) bool
}

// Known returns whether the chain's catalog contains id.
func (c *Chain) Known(id ID) bool {
	_, ok := c.Catalog[id]
	return ok
}

// successor computes the next quest after completing id: branch predicates
// first, then the chain map. ok is false when the arc terminates.
func (c *Chain) successor(arc *state.ArcState, id ID) (ID, bool) {
	for _, b := range c.Branch[id] {
		if b.When(arc) {
			return b.Next, true
		}
	}
	next, ok := c.Order[id]
	return next, ok
}

// Complete finishes the arc's active quest and promotes the successor.
// It returns the promoted quest ID, or "" when the arc has no active quest,
// the active quest is unknown to the catalog, or the chain terminates.
func Complete(cs *state.CampaignState, chain *Chain) ID {
	arc := cs.EnsureArc(chain.Arc)
	if arc.ActiveQuest == "" {
		return ""
	}
	id := ID(arc.ActiveQuest)
	if !chain.Known(id) {
		// UnknownQuest: advancement for an uncatalogued quest is a no-op.
		return ""
	}

	if !contains(arc.CompletedQuests, arc.ActiveQuest) {
		arc.CompletedQuests = append(arc.CompletedQuests, arc.ActiveQuest)
	}
	arc.SetProgress(arc.ActiveQuest, state.QuestCompleted)

	next, ok := chain.successor(arc, id)
	if !ok || next == "" {
		arc.ActiveQuest = ""
		return ""
	}
	Activate(cs, chain, next)
	return next
}

// Activate promotes a quest to the arc's active slot and marks it active.
func Activate(cs *state.CampaignState, chain *Chain, id ID) {
	arc := cs.EnsureArc(chain.Arc)
	arc.ActiveQuest = string(id)
	arc.SetProgress(string(id), state.QuestActive)
}

// PromoteMemory moves a quest recorded as "memory" into the active slot.
// It is the gate that wakes dormant timeline fragments.
func PromoteMemory(cs *state.CampaignState, chain *Chain, id ID) bool {
	arc := cs.EnsureArc(chain.Arc)
	if arc.QuestProgress[string(id)] != state.QuestMemory {
		return false
	}
	Activate(cs, chain, id)
	return true
}

// DragonbreakReady reports whether the arc's timeline-fracture predicate
// holds. It does not mutate state.
func DragonbreakReady(cs *state.CampaignState, chain *Chain) bool {
	if chain.Dragonbreak == nil {
		return false
	}
	arc, ok := cs.Arc(chain.Arc)
	if !ok {
		return false
	}
	return chain.Dragonbreak(arc)
}

// Available is one entry in the cross-arc active quest listing.
type Available struct {
	Type  string `json:"type"` // arc id: "main", "companions", "college", ...
	Quest Quest  `json:"quest"`
}

// AvailableQuests lists the active quest of every registered arc, main
// questline included. The listing is read-only.
func AvailableQuests(cs *state.CampaignState) []Available {
	var out []Available
	for _, chain := range AllChains() {
		arc, ok := cs.Arc(chain.Arc)
		if !ok || arc.ActiveQuest == "" {
			continue
		}
		q, ok := chain.Catalog[ID(arc.ActiveQuest)]
		if !ok {
			continue
		}
		out = append(out, Available{Type: chain.Arc, Quest: q})
	}
	return out
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
