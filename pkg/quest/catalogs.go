package quest

import "github.com/skaldic/campaign-engine/pkg/state"

// College arc quest IDs.
const (
	CollegeFirstLessons  ID = "college_first_lessons"
	CollegeUnderSaarthal ID = "college_under_saarthal"
	CollegeEyeUnsealed   ID = "college_eye_unsealed"
	CollegeContainment   ID = "college_containment"
	CollegeEyeOfMagnus   ID = "college_eye_of_magnus"
)

// CounterEyeInstability is the College arc's escalation counter.
const CounterEyeInstability = "eye_instability"

// CollegeChain is the Winterhold College arc. The Eye's instability counter
// climbs as the arc advances; Winterhold triggers read it.
func CollegeChain() *Chain {
	return &Chain{
		Arc: state.ArcCollege,
		Catalog: map[ID]Quest{
			CollegeFirstLessons:  {ID: CollegeFirstLessons, Name: "First Lessons", Description: "Cross the bridge and satisfy Faralda's test."},
			CollegeUnderSaarthal: {ID: CollegeUnderSaarthal, Name: "Under Saarthal", Description: "Dig beneath the old city and wake what sleeps there."},
			CollegeEyeUnsealed:   {ID: CollegeEyeUnsealed, Name: "The Eye Unsealed", Description: "The orb stands in the Hall of the Elements, humming wrong."},
			CollegeContainment:   {ID: CollegeContainment, Name: "Containment", Description: "Hold Winterhold together while the Eye pulls at its seams."},
			CollegeEyeOfMagnus:   {ID: CollegeEyeOfMagnus, Name: "The Eye of Magnus", Description: "End it, one way or the other, in the Hall of the Elements."},
		},
		Order: map[ID]ID{
			CollegeFirstLessons:  CollegeUnderSaarthal,
			CollegeUnderSaarthal: CollegeEyeUnsealed,
			CollegeEyeUnsealed:   CollegeContainment,
			CollegeContainment:   CollegeEyeOfMagnus,
		},
	}
}

// Silver Hand arc quest IDs.
const (
	SilverHandTrail      ID = "silver_hand_trail"
	SilverHandPurityRaid ID = "silver_hand_purity_raid"
	SilverHandLastLair   ID = "silver_hand_last_lair"
)

// SilverHandChain is the hunters' counter-arc to the Companions.
func SilverHandChain() *Chain {
	return &Chain{
		Arc: state.ArcSilverHand,
		Catalog: map[ID]Quest{
			SilverHandTrail:      {ID: SilverHandTrail, Name: "The Silver Trail", Description: "Track the beast-blood back to its den."},
			SilverHandPurityRaid: {ID: SilverHandPurityRaid, Name: "Purity Raid", Description: "Strike at the Circle where it sleeps."},
			SilverHandLastLair:   {ID: SilverHandLastLair, Name: "The Last Lair", Description: "Burn the final den and count the cost."},
		},
		Order: map[ID]ID{
			SilverHandTrail:      SilverHandPurityRaid,
			SilverHandPurityRaid: SilverHandLastLair,
		},
	}
}

// Main questline quest IDs.
const (
	MainUnbound       ID = "main_unbound"
	MainDragonRising  ID = "main_dragon_rising"
	MainWayOfTheVoice ID = "main_way_of_the_voice"
	MainHornOfJurgen  ID = "main_horn_of_jurgen"
)

// MainChain is the main questline catalog.
func MainChain() *Chain {
	return &Chain{
		Arc: state.ArcMain,
		Catalog: map[ID]Quest{
			MainUnbound:       {ID: MainUnbound, Name: "Unbound", Description: "Out of Helgen, alive, somehow."},
			MainDragonRising:  {ID: MainDragonRising, Name: "Dragon Rising", Description: "The western watchtower burns."},
			MainWayOfTheVoice: {ID: MainWayOfTheVoice, Name: "The Way of the Voice", Description: "Seven thousand steps to High Hrothgar."},
			MainHornOfJurgen:  {ID: MainHornOfJurgen, Name: "The Horn of Jurgen Windcaller", Description: "Ustengrav keeps the horn, and something else."},
		},
		Order: map[ID]ID{
			MainUnbound:       MainDragonRising,
			MainDragonRising:  MainWayOfTheVoice,
			MainWayOfTheVoice: MainHornOfJurgen,
		},
	}
}

// AllChains returns every registered arc chain. Chains are immutable
// catalogs; callers share them freely.
func AllChains() []*Chain {
	return []*Chain{MainChain(), CompanionsChain(), CollegeChain(), SilverHandChain()}
}

// ChainFor returns the chain for an arc id.
func ChainFor(arc string) (*Chain, bool) {
	for _, c := range AllChains() {
		if c.Arc == arc {
			return c, true
		}
	}
	return nil, false
}
