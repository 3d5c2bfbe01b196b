package civilwar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skaldic/campaign-engine/pkg/state"
)

func TestGateBlocksThenUnlocks(t *testing.T) {
	cs := state.NewCampaignState("test")
	cs.EnsureCivilWar().PlayerAlliance = state.AllianceImperial

	err := StartBattleOfWhiterun(cs, state.AllianceImperial)
	var locked *LockedError
	require.True(t, errors.As(err, &locked))
	assert.Contains(t, locked.Reason, "imperial_intro_complete")
	assert.Equal(t, locked.Reason, cs.CivilWar.LockedReason)
	assert.NotEqual(t, state.BattleActive, cs.CivilWar.BattleStatus)

	MarkFactionIntroComplete(cs, state.AllianceImperial)
	require.NoError(t, StartBattleOfWhiterun(cs, state.AllianceImperial))

	cw := cs.CivilWar
	assert.Equal(t, state.BattleActive, cw.BattleStatus)
	assert.True(t, cw.Eligible)
	assert.Empty(t, cw.LockedReason)
	assert.Equal(t, state.AllianceImperial, cw.Allegiance)
	assert.Equal(t, state.AllianceImperial, cw.PlayerAlliance)
}

func TestNeutralSubfactionGate(t *testing.T) {
	tests := []struct {
		subfaction string
		flag       string
	}{
		{"companions", "companions_intro_complete"},
		{"college", "college_intro_complete"},
		{"thieves_guild", "tg_intro_complete"},
		{"dark_brotherhood", "db_intro_complete"},
	}

	for _, tt := range tests {
		t.Run(tt.subfaction, func(t *testing.T) {
			cs := state.NewCampaignState("test")
			cw := cs.EnsureCivilWar()
			cw.PlayerAlliance = state.AllianceNeutral
			cw.NeutralSubfaction = tt.subfaction

			ok, reason := CheckEligibility(cs, "")
			assert.False(t, ok)
			assert.Contains(t, reason, tt.flag)

			cs.SetFactionFlag(tt.flag, true)
			ok, _ = CheckEligibility(cs, "")
			assert.True(t, ok)
		})
	}
}

func TestNeutralSubfactionWinsOverOverride(t *testing.T) {
	cs := state.NewCampaignState("test")
	cw := cs.EnsureCivilWar()
	cw.PlayerAlliance = state.AllianceNeutral
	cw.NeutralSubfaction = "companions"
	cs.SetFactionFlag("imperial_intro_complete", true)

	ok, reason := CheckEligibility(cs, state.AllianceImperial)
	assert.False(t, ok, "override must not bypass a neutral player's subfaction flag")
	assert.Contains(t, reason, "companions_intro_complete")
}

func TestNeutralWithoutSubfactionNeedsCatalyst(t *testing.T) {
	cs := state.NewCampaignState("test")
	cs.EnsureCivilWar().PlayerAlliance = state.AllianceNeutral

	ok, reason := CheckEligibility(cs, "")
	assert.False(t, ok)
	assert.Contains(t, reason, "neutral_war_catalyst")

	cs.SetFactionFlag("neutral_war_catalyst_complete", true)
	ok, _ = CheckEligibility(cs, "")
	assert.True(t, ok)
}

func TestOverrideEvaluatesOtherAlliance(t *testing.T) {
	cs := state.NewCampaignState("test")
	cs.EnsureCivilWar().PlayerAlliance = state.AllianceImperial
	cs.SetFactionFlag("stormcloak_intro_complete", true)

	ok, _ := CheckEligibility(cs, state.AllianceStormcloak)
	assert.True(t, ok, "override lets a non-neutral player test the other side's flag")

	ok, _ = CheckEligibility(cs, "")
	assert.False(t, ok)
}

func TestEligibilityIsMonotone(t *testing.T) {
	cs := state.NewCampaignState("test")
	cs.EnsureCivilWar().PlayerAlliance = state.AllianceStormcloak
	cs.SetFactionFlag("stormcloak_intro_complete", true)

	ok, _ := CheckEligibility(cs, "")
	require.True(t, ok)

	// Piling on more flags can never close the gate.
	for _, flag := range []string{"imperial_intro_complete", "companions_intro_complete", "neutral_war_catalyst"} {
		cs.SetFactionFlag(flag, true)
		ok, _ := CheckEligibility(cs, "")
		assert.True(t, ok)
	}
}

func TestAdvanceBattleStage(t *testing.T) {
	cs := state.NewCampaignState("test")
	cs.EnsureCivilWar().PlayerAlliance = state.AllianceStormcloak
	cs.SetFactionFlag("stormcloak_intro_complete", true)

	assert.Nil(t, AdvanceBattleStage(cs), "battle not active yet")

	require.NoError(t, StartBattleOfWhiterun(cs, state.AllianceStormcloak))
	for i := 1; i < state.MaxBattleStage; i++ {
		events := AdvanceBattleStage(cs)
		require.NotEmpty(t, events)
		assert.Equal(t, i, cs.CivilWar.BattleStage)
		assert.Equal(t, state.BattleActive, cs.CivilWar.BattleStatus)
	}

	events := AdvanceBattleStage(cs)
	require.NotEmpty(t, events)
	assert.Equal(t, state.BattleCompleted, cs.CivilWar.BattleStatus)
	assert.Equal(t, state.MaxBattleStage, cs.CivilWar.BattleStage)
}
