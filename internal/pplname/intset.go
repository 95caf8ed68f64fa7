package pplname

import "sort"

// IntSet is a compact sorted-slice-backed set of non-negative ints, used to
// track the node indices produced by a single parsed statement and, in
// reverse, the node-index-to-statement lookup built at executable finalize
// time. A slice beats a map here: statement node-index sets are small
// (usually under a dozen entries) and are built once, then only ever
// range-scanned or membership-tested — never mutated after finalize.
type IntSet struct {
	sorted []int
}

// NewIntSet creates an IntSet containing the given members.
func NewIntSet(members ...int) *IntSet {
	s := &IntSet{}
	for _, m := range members {
		s.Add(m)
	}
	return s
}

// Add inserts v, keeping the backing slice sorted and duplicate-free.
func (s *IntSet) Add(v int) {
	i := sort.SearchInts(s.sorted, v)
	if i < len(s.sorted) && s.sorted[i] == v {
		return
	}
	s.sorted = append(s.sorted, 0)
	copy(s.sorted[i+1:], s.sorted[i:])
	s.sorted[i] = v
}

// Contains reports whether v is a member.
func (s *IntSet) Contains(v int) bool {
	i := sort.SearchInts(s.sorted, v)
	return i < len(s.sorted) && s.sorted[i] == v
}

// Min returns the smallest member and whether the set is non-empty.
func (s *IntSet) Min() (int, bool) {
	if len(s.sorted) == 0 {
		return 0, false
	}
	return s.sorted[0], true
}

// Max returns the largest member and whether the set is non-empty.
func (s *IntSet) Max() (int, bool) {
	if len(s.sorted) == 0 {
		return 0, false
	}
	return s.sorted[len(s.sorted)-1], true
}

// Len returns the number of members.
func (s *IntSet) Len() int {
	return len(s.sorted)
}

// Members returns the members in ascending order. The caller must not
// mutate the returned slice.
func (s *IntSet) Members() []int {
	return s.sorted
}
