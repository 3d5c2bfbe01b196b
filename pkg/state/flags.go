package state

// Flag returns a scene flag. Unset flags are false.
func (cs *CampaignState) Flag(key string) bool {
	return cs.SceneFlags[key]
}

// SetFlag sets a scene flag true.
func (cs *CampaignState) SetFlag(key string) {
	if cs.SceneFlags == nil {
		cs.SceneFlags = make(map[string]bool)
	}
	cs.SceneFlags[key] = true
}

// ClearFlag resets a scene flag. Only scene resolvers should call this;
// trigger modules treat set flags as permanent.
func (cs *CampaignState) ClearFlag(key string) {
	if cs.SceneFlags != nil {
		delete(cs.SceneFlags, key)
	}
}

// Once returns true exactly one time per (document, key), setting the flag
// on the first call. Narrative scenes that must not repeat gate on it; any
// scene emitter that skips the guard is repeatable on purpose.
func (cs *CampaignState) Once(key string) bool {
	if cs.SceneFlags[key] {
		return false
	}
	cs.SetFlag(key)
	return true
}
