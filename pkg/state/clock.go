package state

// DefaultClockSegments is the segment count for clocks created implicitly
// by a tick, matching the table's usual 6-segment progress clocks.
const DefaultClockSegments = 6

// Clock is a bounded progress counter. current_progress stays within
// [0, total_segments]; ticks past either end are clamped.
type Clock struct {
	Name    string `json:"name"`
	Current int    `json:"current_progress"`
	Total   int    `json:"total_segments"`
}

// Full reports whether the clock has filled.
func (c *Clock) Full() bool {
	return c.Current >= c.Total
}

// reconcileClocks merges the legacy campaign_clocks key into clocks.
// If clocks is empty the legacy map is adopted wholesale; otherwise legacy
// entries only fill gaps. Nothing is discarded.
func (cs *CampaignState) reconcileClocks() {
	if len(cs.LegacyClocks) == 0 {
		return
	}
	if cs.Clocks == nil {
		cs.Clocks = make(map[string]*Clock)
	}
	for id, c := range cs.LegacyClocks {
		if _, ok := cs.Clocks[id]; !ok {
			cs.Clocks[id] = c
		}
	}
	cs.LegacyClocks = nil
}

// ClockProgress returns the current progress of a clock, or 0 for a clock
// that does not exist. It never mutates the document: the legacy key is
// consulted in place when the clock has not been migrated yet.
func (cs *CampaignState) ClockProgress(id string) int {
	if c, ok := cs.Clocks[id]; ok {
		return c.Current
	}
	if c, ok := cs.LegacyClocks[id]; ok {
		return c.Current
	}
	return 0
}

// Clock returns the clock for id after legacy reconciliation.
func (cs *CampaignState) Clock(id string) (*Clock, bool) {
	cs.reconcileClocks()
	c, ok := cs.Clocks[id]
	return c, ok
}

// EnsureClock creates a clock if it does not exist. Existing clocks are
// never overwritten, so the call is idempotent.
func (cs *CampaignState) EnsureClock(id, name string, total int) *Clock {
	cs.reconcileClocks()
	if cs.Clocks == nil {
		cs.Clocks = make(map[string]*Clock)
	}
	if c, ok := cs.Clocks[id]; ok {
		return c
	}
	if total <= 0 {
		total = DefaultClockSegments
	}
	c := &Clock{Name: name, Total: total}
	cs.Clocks[id] = c
	return c
}

// TickClock advances a clock by delta (negative deltas rewind) and returns
// the new clamped value. A missing clock is created with the default
// segment count.
func (cs *CampaignState) TickClock(id string, delta int) int {
	c := cs.EnsureClock(id, id, DefaultClockSegments)
	c.Current += delta
	if c.Current < 0 {
		c.Current = 0
	}
	if c.Current > c.Total {
		c.Current = c.Total
	}
	return c.Current
}
