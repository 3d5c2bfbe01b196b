// Package trigger converts a location change into an ordered stream of
// narrative events. Each hold has a module keyed on its locations; the
// dispatcher routes a location to the modules that claim it and appends the
// orthogonal arc triggers (schism, assault) that fire anywhere.
package trigger

import (
	"strings"

	"github.com/skaldic/campaign-engine/pkg/state"
)

// Module is one region's trigger generator. Modules read state broadly but
// mutate only scene_flags and the arc state they own; event order is
// meaningful (header first, then scene body, then companion barks).
type Module func(loc string, cs *state.CampaignState) []string

// region binds a module to the location keys it answers to.
type region struct {
	name string
	keys []string
	fn   Module
}

// regions in dispatch order. Modules may share locations; their results
// concatenate.
func regions() []region {
	return []region{
		{"whiterun", []string{"whiterun", "jorrvaskr", "dragonsreach", "wind_district", "plains_district", "skyforge"}, WhiterunTriggers},
		{"windhelm", []string{"windhelm", "palace_of_the_kings", "grey_quarter"}, WindhelmTriggers},
		{"markarth", []string{"markarth", "understone", "cidhna", "karthspire"}, MarkarthTriggers},
		{"winterhold", []string{"winterhold", "college", "saarthal", "hall_of_the_elements"}, WinterholdTriggers},
		{"solitude", []string{"solitude", "blue_palace", "castle_dour", "katla"}, SolitudeTriggers},
		{"rift", []string{"riften", "rift", "ratway", "goldenglow", "ivarstead"}, RiftTriggers},
		{"hjaalmarch", []string{"morthal", "hjaalmarch", "movarth", "drajkmyr"}, HjaalmarchTriggers},
		{"falkreath", []string{"falkreath", "pinewatch", "half_moon", "dead_mans_drink"}, FalkreathTriggers},
	}
}

// Dispatch routes a location to every module that claims it, then consults
// the orthogonal arc triggers. The returned list is emitted verbatim.
func Dispatch(loc string, cs *state.CampaignState) []string {
	loc = strings.ToLower(strings.TrimSpace(loc))
	if loc == "" {
		return nil
	}

	var events []string
	for _, r := range regions() {
		for _, key := range r.keys {
			if strings.Contains(loc, key) {
				events = append(events, r.fn(loc, cs)...)
				break
			}
		}
	}

	// Arc triggers fire regardless of region when their arc is active.
	events = append(events, SchismTriggers(loc, cs)...)
	events = append(events, AssaultTriggers(loc, cs)...)
	events = append(events, CompanionArcTriggers(loc, cs)...)

	return events
}
