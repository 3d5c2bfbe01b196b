package quest

import "github.com/skaldic/campaign-engine/pkg/state"

// Companions arc quest IDs.
const (
	CompanionsIntro             ID = "companions_intro"
	CompanionsTrialOfValor      ID = "companions_trial_of_valor"
	CompanionsProvingHonor      ID = "companions_proving_honor"
	CompanionsBloodOath         ID = "companions_blood_oath"
	CompanionsSchismPressure    ID = "companions_schism_pressure"
	CompanionsSchismBreakpoint  ID = "companions_schism_breakpoint"
	CompanionsSilverReprisal    ID = "companions_silver_hand_reprisal"
	CompanionsKodlakCure        ID = "companions_kodlak_cure_or_sacrifice"
	CompanionsDragonbreakEcho   ID = "companions_dragonbreak_echo"
	CompanionsPurityPathIgnites ID = "companions_purity_path_ignites"
)

// Companions arc state flags.
const (
	FlagSkjorAlive       = "skjor_alive"
	FlagEmbracedCurse    = "embraced_curse"
	FlagKodlakCured      = "kodlak_cured"
	FlagInternalCivilWar = "internal_civil_war"
	FlagWhelpsPolarized  = "whelps_polarized"
	FlagReconciled       = "reconciled"
	FlagHallShattered    = "hall_shattered_state"
)

// companionsDragonbreak holds when Skjor still lives in this timeline and
// the player embraced the curse: the cure quest fractures instead of
// resolving cleanly.
func companionsDragonbreak(arc *state.ArcState) bool {
	return arc.Flag(FlagSkjorAlive) && arc.Flag(FlagEmbracedCurse)
}

// CompanionsChain is the Companions arc: Jorrvaskr induction through the
// schism to the cure of Kodlak, with the dragonbreak echo spliced in when
// the timeline fractures.
func CompanionsChain() *Chain {
	return &Chain{
		Arc: state.ArcCompanions,
		Catalog: map[ID]Quest{
			CompanionsIntro:             {ID: CompanionsIntro, Name: "Take Up the Shield", Description: "Prove yourself to Kodlak Whitemane and join the Companions as a whelp."},
			CompanionsTrialOfValor:      {ID: CompanionsTrialOfValor, Name: "Trial of Valor", Description: "Run an errand of blood for the Circle and earn your first scar."},
			CompanionsProvingHonor:      {ID: CompanionsProvingHonor, Name: "Proving Honor", Description: "Retrieve the fragment of Wuuthrad from Dustman's Cairn."},
			CompanionsBloodOath:         {ID: CompanionsBloodOath, Name: "Blood Oath", Description: "The Circle makes its offer beneath the Underforge."},
			CompanionsSchismPressure:    {ID: CompanionsSchismPressure, Name: "Cracks in the Shield-Wall", Description: "The secrecy of the Circle strains Jorrvaskr toward open schism."},
			CompanionsSchismBreakpoint:  {ID: CompanionsSchismBreakpoint, Name: "The Shield Splits", Description: "The schism comes to a head; the hall must choose its shape."},
			CompanionsSilverReprisal:    {ID: CompanionsSilverReprisal, Name: "Silver Reprisal", Description: "The Silver Hand answers the Circle's blood with steel and fire."},
			CompanionsKodlakCure:        {ID: CompanionsKodlakCure, Name: "The Old Man's Burden", Description: "Seek the cure for Kodlak, or let the old wolf choose sacrifice."},
			CompanionsDragonbreakEcho:   {ID: CompanionsDragonbreakEcho, Name: "Echo of the Broken Hour", Description: "The timeline fractures: Skjor walks and the curse holds, and both cannot be."},
			CompanionsPurityPathIgnites: {ID: CompanionsPurityPathIgnites, Name: "The Purity Path Ignites", Description: "Carry the witch-heads to Ysgramor's Tomb and finish what was sworn."},
		},
		Order: map[ID]ID{
			CompanionsIntro:            CompanionsTrialOfValor,
			CompanionsTrialOfValor:     CompanionsProvingHonor,
			CompanionsProvingHonor:     CompanionsBloodOath,
			CompanionsBloodOath:        CompanionsSchismPressure,
			CompanionsSchismPressure:   CompanionsSchismBreakpoint,
			CompanionsSchismBreakpoint: CompanionsSilverReprisal,
			CompanionsSilverReprisal:   CompanionsKodlakCure,
			CompanionsKodlakCure:       CompanionsPurityPathIgnites,
			CompanionsDragonbreakEcho:  CompanionsPurityPathIgnites,
		},
		Branch: map[ID][]Branch{
			CompanionsKodlakCure: {
				{When: companionsDragonbreak, Next: CompanionsDragonbreakEcho},
			},
		},
		Dragonbreak: companionsDragonbreak,
	}
}

// CompleteCompanionsQuest completes the Companions arc's active quest and
// returns the promoted successor ("" when the arc ends).
func CompleteCompanionsQuest(cs *state.CampaignState) ID {
	return Complete(cs, CompanionsChain())
}
