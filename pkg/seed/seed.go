// Package seed turns a session-zero worksheet, written as YAML, into a fresh
// campaign document. The worksheet captures what the table decided before
// play: the party, the player's allegiance, and where each arc starts.
package seed

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skaldic/campaign-engine/pkg/quest"
	"github.com/skaldic/campaign-engine/pkg/state"
)

// Seed is the session-zero worksheet.
type Seed struct {
	Name string `yaml:"name"`

	PlayerAlliance    string `yaml:"player_alliance,omitempty"`
	NeutralSubfaction string `yaml:"neutral_subfaction,omitempty"`

	PCs []PCSeed `yaml:"pcs,omitempty"`

	// Arcs maps arc id to the quest the campaign opens on. Unknown arcs or
	// quests are load errors; a silent typo here would haunt the whole run.
	Arcs map[string]string `yaml:"arcs,omitempty"`

	Flags  []string       `yaml:"flags,omitempty"`
	Clocks []ClockSeed    `yaml:"clocks,omitempty"`
	Trust  map[string]int `yaml:"trust,omitempty"`
}

type PCSeed struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Race            string `yaml:"race,omitempty"`
	Background      string `yaml:"background,omitempty"`
	StartingFaction string `yaml:"starting_faction,omitempty"`
}

type ClockSeed struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name,omitempty"`
	Segments int    `yaml:"segments,omitempty"`
	Current  int    `yaml:"current,omitempty"`
}

// Load reads and validates a worksheet.
func Load(r io.Reader) (*Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and validates a worksheet from disk.
func LoadFile(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (s *Seed) validate() error {
	if s.Name == "" {
		return fmt.Errorf("seed has no campaign name")
	}

	switch s.PlayerAlliance {
	case "", state.AllianceImperial, state.AllianceStormcloak, state.AllianceNeutral:
	default:
		return fmt.Errorf("unknown player_alliance %q", s.PlayerAlliance)
	}
	if s.NeutralSubfaction != "" && s.PlayerAlliance != state.AllianceNeutral {
		return fmt.Errorf("neutral_subfaction set for alliance %q", s.PlayerAlliance)
	}

	for arcID, questID := range s.Arcs {
		chain, ok := quest.ChainFor(arcID)
		if !ok {
			return fmt.Errorf("unknown arc %q", arcID)
		}
		if _, ok := chain.Catalog[quest.ID(questID)]; !ok {
			return fmt.Errorf("arc %q has no quest %q", arcID, questID)
		}
	}

	for _, c := range s.Clocks {
		if c.ID == "" {
			return fmt.Errorf("clock seed missing id")
		}
		if c.Segments < 0 || c.Current < 0 || (c.Segments > 0 && c.Current > c.Segments) {
			return fmt.Errorf("clock %q seeds %d/%d", c.ID, c.Current, c.Segments)
		}
	}
	return nil
}

// Apply builds the opening campaign document.
func (s *Seed) Apply() *state.CampaignState {
	cs := state.NewCampaignState(s.Name)

	if s.PlayerAlliance != "" {
		cw := cs.EnsureCivilWar()
		cw.PlayerAlliance = s.PlayerAlliance
		cw.NeutralSubfaction = s.NeutralSubfaction
	}

	for _, pc := range s.PCs {
		cs.PCs = append(cs.PCs, state.PC{
			ID:              pc.ID,
			Name:            pc.Name,
			Race:            pc.Race,
			Background:      pc.Background,
			StartingFaction: pc.StartingFaction,
		})
	}

	for arcID, questID := range s.Arcs {
		if chain, ok := quest.ChainFor(arcID); ok {
			quest.Activate(cs, chain, quest.ID(questID))
		}
	}

	for _, f := range s.Flags {
		cs.SetFlag(f)
	}
	for _, c := range s.Clocks {
		segments := c.Segments
		if segments == 0 {
			segments = state.DefaultClockSegments
		}
		clock := cs.EnsureClock(c.ID, c.Name, segments)
		clock.Current = c.Current
	}
	for npc, trust := range s.Trust {
		cs.AdjustTrust(npc, trust)
	}

	return cs
}
