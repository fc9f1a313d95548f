package region

import "fmt"

// Set is an ordered collection of regions. Insertion order is significant:
// it is the paint order used when regions overlap on a frame, with later
// regions applied on top of earlier ones.
//
// A Set is mutated only while a region list is being assembled or edited.
// The processing pipeline treats it as read-only for the whole run; mutating
// a Set concurrently with a run is undefined behavior, not detected.
type Set struct {
	regions []Region
}

// NewSet creates an empty region set.
func NewSet() *Set {
	return &Set{}
}

// Add validates the region and appends it to the set. Invalid regions are
// rejected here so they can never reach the pipeline.
func (s *Set) Add(r Region) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.regions = append(s.regions, r)
	return nil
}

// Remove deletes the region at index, preserving the order of the rest.
func (s *Set) Remove(index int) error {
	if index < 0 || index >= len(s.regions) {
		return fmt.Errorf("%w: %d (set has %d regions)", ErrIndexOutOfRange, index, len(s.regions))
	}
	s.regions = append(s.regions[:index], s.regions[index+1:]...)
	return nil
}

// Clear removes all regions.
func (s *Set) Clear() {
	s.regions = s.regions[:0]
}

// Len returns the number of regions in the set.
func (s *Set) Len() int {
	return len(s.regions)
}

// All returns the regions in insertion order. The slice is a copy; mutating
// it does not affect the set.
func (s *Set) All() []Region {
	out := make([]Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// Equal reports whether two sets hold the same regions in the same order.
func (s *Set) Equal(other *Set) bool {
	if other == nil || len(s.regions) != len(other.regions) {
		return false
	}
	for i := range s.regions {
		if s.regions[i] != other.regions[i] {
			return false
		}
	}
	return true
}
