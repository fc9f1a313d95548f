package region

// ActiveAt returns the regions covering the given frame index, preserving
// set order. The slice is freshly allocated on every call. The pipeline
// invokes this once per frame; region counts stay small (tens, not
// thousands), so a linear scan without an index is fine.
func (s *Set) ActiveAt(frame int) []Region {
	if frame < 0 {
		return nil
	}
	var active []Region
	for _, r := range s.regions {
		if r.Covers(frame) {
			active = append(active, r)
		}
	}
	return active
}

// FirstActivation returns the lowest frame index on which any region in the
// set becomes active, and false when the set is empty. Used by callers that
// want to skip work before the earliest region.
func (s *Set) FirstActivation() (int, bool) {
	if len(s.regions) == 0 {
		return 0, false
	}
	first := s.regions[0].StartFrame
	for _, r := range s.regions[1:] {
		if r.StartFrame < first {
			first = r.StartFrame
		}
	}
	return first, true
}
