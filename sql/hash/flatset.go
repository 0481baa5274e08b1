package hash

// FlatHashSet is the value-less counterpart of FlatHashMap (§3.5),
// used by COUNT(DISTINCT ...) per-group accumulators and Distinct.
type FlatHashSet struct {
	keys     []uint64
	occupied []bool
	size     int
}

// NewFlatHashSet creates an empty set.
func NewFlatHashSet() *FlatHashSet {
	return &FlatHashSet{
		keys:     make([]uint64, initialCapacity),
		occupied: make([]bool, initialCapacity),
	}
}

func (s *FlatHashSet) mask() uint64 {
	return uint64(len(s.keys) - 1)
}

// Insert adds h to the set, returning true if it was not already
// present (§3.5 "insert (returns true if newly inserted)").
func (s *FlatHashSet) Insert(h uint64) bool {
	if s.size*2 >= len(s.keys) {
		s.grow()
	}
	i := h & s.mask()
	for s.occupied[i] {
		if s.keys[i] == h {
			return false
		}
		i = (i + 1) & s.mask()
	}
	s.keys[i] = h
	s.occupied[i] = true
	s.size++
	return true
}

// Contains reports whether h is present.
func (s *FlatHashSet) Contains(h uint64) bool {
	i := h & s.mask()
	for s.occupied[i] {
		if s.keys[i] == h {
			return true
		}
		i = (i + 1) & s.mask()
	}
	return false
}

// Len returns the number of distinct hashes stored.
func (s *FlatHashSet) Len() int {
	return s.size
}

func (s *FlatHashSet) grow() {
	newCap := len(s.keys) * 2
	old := *s
	s.keys = make([]uint64, newCap)
	s.occupied = make([]bool, newCap)
	s.size = 0
	for i, occ := range old.occupied {
		if !occ {
			continue
		}
		idx := old.keys[i] & s.mask()
		for s.occupied[idx] {
			idx = (idx + 1) & s.mask()
		}
		s.keys[idx] = old.keys[i]
		s.occupied[idx] = true
		s.size++
	}
}
