package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skaldic/campaign-engine/pkg/quest"
	"github.com/skaldic/campaign-engine/pkg/state"
)

func TestLocationMatches(t *testing.T) {
	tests := []struct {
		query  string
		target string
		want   bool
	}{
		{"jorrvaskr_downstairs", "jorrvaskr", true},
		{"jorrvaskr", "jorrvaskr_downstairs", true},
		{"Whiterun Market", "whiterun market", true},
		{"rift", "riften", true},
		{"un", "whiterun", false}, // too short for substring matching
		{"", "whiterun", false},
		{"solitude", "markarth", false},
	}

	for _, tt := range tests {
		t.Run(tt.query+"/"+tt.target, func(t *testing.T) {
			if got := LocationMatches(tt.query, tt.target); got != tt.want {
				t.Errorf("LocationMatches(%q, %q) = %v, want %v", tt.query, tt.target, got, tt.want)
			}
		})
	}
}

func TestIsNight(t *testing.T) {
	hour := func(h int) *int { return &h }

	tests := []struct {
		name  string
		world *state.WorldState
		want  bool
	}{
		{"no world section", nil, false},
		{"keyword night", &state.WorldState{TimeOfDay: "night"}, true},
		{"keyword late evening", &state.WorldState{TimeOfDay: "late evening"}, true},
		{"keyword midnight", &state.WorldState{TimeOfDay: "midnight"}, true},
		{"keyword morning", &state.WorldState{TimeOfDay: "morning"}, false},
		{"hour 21", &state.WorldState{Hour: hour(21)}, true},
		{"hour 3", &state.WorldState{Hour: hour(3)}, true},
		{"hour 6", &state.WorldState{Hour: hour(6)}, false},
		{"hour 19", &state.WorldState{Hour: hour(19)}, false},
		{"hour 0", &state.WorldState{Hour: hour(0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := state.NewCampaignState("test")
			cs.World = tt.world
			if got := IsNight(cs); got != tt.want {
				t.Errorf("IsNight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOnceOnlySceneEmitsThenGoesQuiet(t *testing.T) {
	cs := state.NewCampaignState("test")

	first := SchismSecrecyArgumentScene(cs)
	require.NotEmpty(t, first)

	second := SchismSecrecyArgumentScene(cs)
	assert.Empty(t, second, "once-only scene must return an empty list on re-trigger")
}

func TestDispatchRoutesByRegion(t *testing.T) {
	cs := state.NewCampaignState("test")

	events := Dispatch("whiterun", cs)
	require.NotEmpty(t, events)
	assert.Contains(t, events[0], "Whiterun", "header comes first")

	assert.Empty(t, Dispatch("", cs))
	assert.Empty(t, Dispatch("akavir", cs), "unknown region yields nothing")
}

func TestDispatchJorrvaskrPullsSchismScenes(t *testing.T) {
	cs := state.NewCampaignState("test")
	quest.Activate(cs, quest.CompanionsChain(), quest.CompanionsSchismPressure)

	events := Dispatch("jorrvaskr", cs)
	var sawArgument bool
	for _, e := range events {
		if e == "Every whelp in the hall is suddenly very interested in the answer." {
			sawArgument = true
		}
	}
	assert.True(t, sawArgument, "schism scene should ride along with the region module")

	// The once-guard holds across dispatches.
	again := Dispatch("jorrvaskr", cs)
	for _, e := range again {
		assert.NotEqual(t, "Every whelp in the hall is suddenly very interested in the answer.", e)
	}
}

func TestWhiterunBattleStatusBeats(t *testing.T) {
	cs := state.NewCampaignState("test")
	cs.EnsureCivilWar().BattleStatus = state.BattleActive

	events := WhiterunTriggers("whiterun", cs)
	var sawBattle bool
	for _, e := range events {
		if e == "Smoke hangs over the walls. The Battle of Whiterun has begun." {
			sawBattle = true
		}
	}
	assert.True(t, sawBattle)
}

func TestWinterholdInstabilityEscalates(t *testing.T) {
	cs := state.NewCampaignState("test")
	arc := cs.EnsureArc(state.ArcCollege)

	base := len(WinterholdTriggers("winterhold", cs))

	arc.AddCounter(quest.CounterEyeInstability, 3)
	mid := WinterholdTriggers("winterhold", cs)
	assert.Greater(t, len(mid), base-1)
	assert.Contains(t, mid[len(mid)-1], "Light bends wrong")

	arc.AddCounter(quest.CounterEyeInstability, 3)
	high := WinterholdTriggers("winterhold", cs)
	assert.Contains(t, high[len(high)-1], "wearing through")
}

func TestAssaultActsAdvance(t *testing.T) {
	cs := state.NewCampaignState("test")
	quest.Activate(cs, quest.CompanionsChain(), quest.CompanionsSilverReprisal)

	actOne := AssaultTriggers("jorrvaskr", cs)
	require.NotEmpty(t, actOne)
	assert.Contains(t, actOne[0], "Silver Hand has come")
	require.NotNil(t, cs.Companions.DefensePool, "act one builds the pool")

	actTwo := AssaultTriggers("jorrvaskr", cs)
	require.NotEmpty(t, actTwo)
	assert.Contains(t, actTwo[0], "consequences")

	finale := AssaultTriggers("jorrvaskr", cs)
	require.NotEmpty(t, finale)
	assert.Contains(t, finale[0], "Jorrvaskr holds")

	assert.Empty(t, AssaultTriggers("jorrvaskr", cs), "finale fires once")
}

func TestAssaultAfterFinaleLeavesPoolAlone(t *testing.T) {
	cs := state.NewCampaignState("test")
	quest.Activate(cs, quest.CompanionsChain(), quest.CompanionsSilverReprisal)
	cs.SetFlag("assault_act_one")
	cs.SetFlag("assault_act_two")
	cs.SetFlag("assault_finale")

	assert.Empty(t, AssaultTriggers("jorrvaskr", cs))
	if cs.Companions != nil {
		assert.Nil(t, cs.Companions.DefensePool, "a settled assault must not build a pool")
	}
}

func TestAssaultRequiresArcAndLocation(t *testing.T) {
	cs := state.NewCampaignState("test")
	assert.Empty(t, AssaultTriggers("jorrvaskr", cs), "arc not active")

	quest.Activate(cs, quest.CompanionsChain(), quest.CompanionsSilverReprisal)
	assert.Empty(t, AssaultTriggers("windhelm", cs), "assault is anchored to Whiterun")
}
