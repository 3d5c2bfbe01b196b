package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockTickClamps(t *testing.T) {
	cs := NewCampaignState("test")

	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"advance", 2, 2},
		{"advance again", 3, 5},
		{"clamp at top", 4, 6},
		{"rewind", -2, 4},
		{"clamp at zero", -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cs.TickClock("schism", tt.delta)
			if got != tt.want {
				t.Errorf("TickClock() = %d, want %d", got, tt.want)
			}
		})
	}

	c, ok := cs.Clock("schism")
	require.True(t, ok)
	assert.Equal(t, DefaultClockSegments, c.Total)
}

func TestClockProgressUnknownDoesNotMutate(t *testing.T) {
	cs := NewCampaignState("test")

	if got := cs.ClockProgress("never_seen"); got != 0 {
		t.Errorf("ClockProgress() = %d, want 0", got)
	}
	if _, ok := cs.Clocks["never_seen"]; ok {
		t.Error("ClockProgress created a clock; read-only queries must not mutate")
	}
}

func TestEnsureClockIdempotent(t *testing.T) {
	cs := NewCampaignState("test")

	c := cs.EnsureClock("eye", "Eye of Magnus Instability", 10)
	c.Current = 7

	again := cs.EnsureClock("eye", "Renamed", 4)
	assert.Equal(t, 7, again.Current, "ensure must not overwrite an existing clock")
	assert.Equal(t, "Eye of Magnus Instability", again.Name)
	assert.Equal(t, 10, again.Total)
}

func TestLegacyClockReconciliation(t *testing.T) {
	t.Run("adopt legacy when clocks empty", func(t *testing.T) {
		cs := NewCampaignState("test")
		cs.LegacyClocks = map[string]*Clock{
			"schism": {Name: "Schism", Current: 3, Total: 6},
		}

		c, ok := cs.Clock("schism")
		require.True(t, ok)
		assert.Equal(t, 3, c.Current)
		assert.Nil(t, cs.LegacyClocks, "legacy key should be drained after merge")
	})

	t.Run("legacy fills gaps only", func(t *testing.T) {
		cs := NewCampaignState("test")
		cs.Clocks = map[string]*Clock{
			"schism": {Name: "Schism", Current: 5, Total: 6},
		}
		cs.LegacyClocks = map[string]*Clock{
			"schism": {Name: "Old Schism", Current: 1, Total: 6},
			"eye":    {Name: "Eye", Current: 2, Total: 10},
		}

		c, _ := cs.Clock("schism")
		assert.Equal(t, 5, c.Current, "existing clock must win over legacy")
		eye, ok := cs.Clock("eye")
		require.True(t, ok)
		assert.Equal(t, 2, eye.Current)
	})

	t.Run("legacy readable without migration", func(t *testing.T) {
		cs := NewCampaignState("test")
		cs.LegacyClocks = map[string]*Clock{
			"eye": {Name: "Eye", Current: 4, Total: 10},
		}
		assert.Equal(t, 4, cs.ClockProgress("eye"))
		assert.NotNil(t, cs.LegacyClocks, "read-only progress query must not migrate")
	})
}

func TestOnceReturnsTrueExactlyOnce(t *testing.T) {
	cs := NewCampaignState("test")

	if !cs.Once("jorrvaskr_first_visit") {
		t.Fatal("first Once() should return true")
	}
	for i := 0; i < 5; i++ {
		if cs.Once("jorrvaskr_first_visit") {
			t.Fatalf("Once() returned true again on call %d", i+2)
		}
	}
}

func TestAdjustTrustSaturates(t *testing.T) {
	cs := NewCampaignState("test")

	assert.Equal(t, 60, cs.AdjustTrust("aela", 60))
	assert.Equal(t, 100, cs.AdjustTrust("aela", 70))
	assert.Equal(t, 0, cs.AdjustTrust("aela", -150))
	assert.Equal(t, "0-100", cs.NPCTrust["aela"].Scale)
}

func TestEorlundTrustIsAClock(t *testing.T) {
	cs := NewCampaignState("test")

	got := cs.AdjustTrust("eorlund", 4)
	assert.Equal(t, 4, got)
	assert.Equal(t, 6, cs.AdjustTrust("eorlund", 10), "eorlund trust clamps at 6 segments")
	assert.Equal(t, 6, cs.TrustOf("eorlund"))
	if _, ok := cs.NPCTrust["eorlund"]; ok {
		t.Error("eorlund trust must live in the clock, not npc_trust")
	}
}

func TestUnknownFieldsSurviveRoundTrip(t *testing.T) {
	doc := []byte(`{
		"name": "winter_campaign",
		"scene_flags": {"jorrvaskr_first_visit": true},
		"homestead_upgrades": {"lakeview": ["cellar", "armory"]},
		"gm_notes": "keep an eye on Vilkas"
	}`)

	var cs CampaignState
	require.NoError(t, json.Unmarshal(doc, &cs))
	assert.True(t, cs.Flag("jorrvaskr_first_visit"))
	require.Contains(t, cs.Extra, "homestead_upgrades")
	require.Contains(t, cs.Extra, "gm_notes")

	out, err := json.Marshal(&cs)
	require.NoError(t, err)

	var round map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &round))
	assert.JSONEq(t, `{"lakeview": ["cellar", "armory"]}`, string(round["homestead_upgrades"]))
	assert.JSONEq(t, `"keep an eye on Vilkas"`, string(round["gm_notes"]))
}

func TestFirstImpressionLegacyMigration(t *testing.T) {
	doc := []byte(`{
		"name": "test",
		"npc_first_impressions": {
			"eorlund": "a stranger with a wolf's eyes",
			"aela": {
				"pc_sigrid": {
					"timestamp": "2026-08-01T18:00:00Z",
					"disposition": "wary",
					"line": "You smell of the road."
				}
			}
		}
	}`)

	var cs CampaignState
	require.NoError(t, json.Unmarshal(doc, &cs))

	assert.Equal(t, "a stranger with a wolf's eyes", cs.LegacyFirstImpressions["eorlund"])
	imp := cs.FirstImpressions["aela"]["pc_sigrid"]
	require.NotNil(t, imp)
	assert.Equal(t, "wary", imp.Disposition)

	// Nested records must survive a save.
	out, err := json.Marshal(&cs)
	require.NoError(t, err)
	var round CampaignState
	require.NoError(t, json.Unmarshal(out, &round))
	require.NotNil(t, round.FirstImpressions["aela"]["pc_sigrid"])
	assert.Equal(t, "a stranger with a wolf's eyes", round.LegacyFirstImpressions["eorlund"])
}

func TestRecordDecisionFirstWriteWins(t *testing.T) {
	cs := NewCampaignState("test")
	cs.RecordDecision("kodlak_funeral", "spoke")
	cs.RecordDecision("kodlak_funeral", "silent")
	assert.Equal(t, "spoke", cs.BranchingDecisions["kodlak_funeral"])
}

func TestAppendSessionDropsEmpty(t *testing.T) {
	cs := NewCampaignState("test")
	cs.AppendSession("whiterun", nil)
	cs.AppendSession("whiterun", []string{"The gates creak open."})
	require.Len(t, cs.SessionLog, 1)
	assert.Equal(t, "whiterun", cs.SessionLog[0].Location)
}
