package schedule

import (
	"fmt"
	"strings"

	"github.com/jiankangren/DeSyDe-meta/rng"
)

// New returns a schedule over elements with a uniformly shuffled rank
// assignment. The element slice is copied.
func New(elements []int, dummy int, src *rng.Source) *Schedule {
	return &Schedule{
		elements: append([]int(nil), elements...),
		ranks:    src.Perm(len(elements)),
		dummy:    dummy,
	}
}

// FromOrder returns a schedule whose elements run in the given order.
func FromOrder(order []int, dummy int) *Schedule {
	s := &Schedule{
		elements: append([]int(nil), order...),
		ranks:    make([]int, len(order)),
		dummy:    dummy,
	}
	for i := range s.ranks {
		s.ranks[i] = i
	}

	return s
}

// Len returns the number of elements.
func (s *Schedule) Len() int { return len(s.elements) }

// Dummy returns the terminal id.
func (s *Schedule) Dummy() int { return s.dummy }

// Elements returns a copy of the element set in positional order.
func (s *Schedule) Elements() []int { return append([]int(nil), s.elements...) }

// Ranks returns a copy of the rank vector in positional order.
func (s *Schedule) Ranks() []int { return append([]int(nil), s.ranks...) }

// Contains reports whether e belongs to the schedule.
func (s *Schedule) Contains(e int) bool {
	_, err := s.IndexOf(e)

	return err == nil
}

// IndexOf returns the positional index of element e.
func (s *Schedule) IndexOf(e int) (int, error) {
	for i, x := range s.elements {
		if x == e {
			return i, nil
		}
	}

	return -1, fmt.Errorf("element %d: %w", e, ErrElementNotFound)
}

// RankAt returns the rank of the element at positional index i.
func (s *Schedule) RankAt(i int) (int, error) {
	if i < 0 || i >= len(s.ranks) {
		return -1, fmt.Errorf("index %d: %w", i, ErrIndexOutOfRange)
	}

	return s.ranks[i], nil
}

// RankOf returns the rank of element e.
func (s *Schedule) RankOf(e int) (int, error) {
	i, err := s.IndexOf(e)
	if err != nil {
		return -1, err
	}

	return s.ranks[i], nil
}

// RelativeRankOf returns rank(e)/n, in [0,1).
func (s *Schedule) RelativeRankOf(e int) (float64, error) {
	r, err := s.RankOf(e)
	if err != nil {
		return -1, err
	}

	return float64(r) / float64(len(s.elements)), nil
}

// ElementAt returns the element holding rank r. Rank n maps to the dummy.
func (s *Schedule) ElementAt(r int) (int, error) {
	if r == len(s.ranks) {
		return s.dummy, nil
	}
	for i, x := range s.ranks {
		if x == r {
			return s.elements[i], nil
		}
	}

	return -1, fmt.Errorf("rank %d: %w", r, ErrElementNotFound)
}

// First returns the element of rank 0, or the dummy for an empty schedule.
func (s *Schedule) First() int {
	e, err := s.ElementAt(0)
	if err != nil {
		return s.dummy
	}

	return e
}

// Next returns the element following e, or the dummy if e is last.
func (s *Schedule) Next(e int) (int, error) {
	r, err := s.RankOf(e)
	if err != nil {
		return -1, err
	}

	return s.ElementAt(r + 1)
}

// Successors returns Next for every element, in positional order.
// Complexity: O(n).
func (s *Schedule) Successors() []int {
	byRank := s.Order()
	next := make([]int, len(s.elements))
	for i, r := range s.ranks {
		if r+1 < len(byRank) {
			next[i] = byRank[r+1]
		} else {
			next[i] = s.dummy
		}
	}

	return next
}

// Order returns the elements sorted by rank.
func (s *Schedule) Order() []int {
	out := make([]int, len(s.elements))
	for i, r := range s.ranks {
		if r >= 0 && r < len(out) {
			out[r] = s.elements[i]
		}
	}

	return out
}

// Swap exchanges the ranks of the elements at positional indices i and j.
func (s *Schedule) Swap(i, j int) error {
	if i < 0 || i >= len(s.ranks) || j < 0 || j >= len(s.ranks) {
		return fmt.Errorf("swap %d,%d: %w", i, j, ErrIndexOutOfRange)
	}
	s.ranks[i], s.ranks[j] = s.ranks[j], s.ranks[i]

	return nil
}

// SwapElements exchanges the ranks of elements a and b.
func (s *Schedule) SwapElements(a, b int) error {
	i, err := s.IndexOf(a)
	if err != nil {
		return err
	}
	j, err := s.IndexOf(b)
	if err != nil {
		return err
	}

	return s.Swap(i, j)
}

// SetRank assigns rank v to the element at index i without repair.
func (s *Schedule) SetRank(i, v int) error {
	if i < 0 || i >= len(s.ranks) {
		return fmt.Errorf("index %d: %w", i, ErrIndexOutOfRange)
	}
	s.ranks[i] = v

	return nil
}

// SetRankOf assigns rank v to element e without repair.
func (s *Schedule) SetRankOf(e, v int) error {
	i, err := s.IndexOf(e)
	if err != nil {
		return err
	}
	s.ranks[i] = v

	return nil
}

// SetRanks replaces the rank vector and repairs duplicates and
// out-of-range values.
func (s *Schedule) SetRanks(v []int, src *rng.Source) error {
	if len(v) != len(s.ranks) {
		return fmt.Errorf("got %d ranks for %d elements: %w", len(v), len(s.ranks), ErrRankLength)
	}
	copy(s.ranks, v)
	s.repairDist(src)

	return nil
}

// Clamp brings every rank into [0,n-1] and repairs duplicates.
func (s *Schedule) Clamp(src *rng.Source) {
	hi := len(s.ranks) - 1
	for i, r := range s.ranks {
		if r < 0 {
			s.ranks[i] = 0
		} else if r > hi {
			s.ranks[i] = hi
		}
	}
	s.repairDist(src)
}

// Move adds a stochastically rounded velocity to every rank, then clamps.
func (s *Schedule) Move(speed []float64, src *rng.Source) error {
	if len(speed) != len(s.ranks) {
		return fmt.Errorf("got %d speeds for %d elements: %w", len(speed), len(s.ranks), ErrRankLength)
	}
	for i, v := range speed {
		s.ranks[i] += src.Round(v)
	}
	s.Clamp(src)

	return nil
}

// RankDiff returns ranks[i] - other[i] for every index.
func (s *Schedule) RankDiff(other []int) ([]int, error) {
	if len(other) != len(s.ranks) {
		return nil, fmt.Errorf("got %d ranks for %d elements: %w", len(other), len(s.ranks), ErrRankLength)
	}
	diff := make([]int, len(s.ranks))
	for i, r := range s.ranks {
		diff[i] = r - other[i]
	}

	return diff, nil
}

// Rebuild returns a schedule over a new element set. Elements present in s
// keep their rank; the others and any resulting collisions are placed
// uniformly on the unused ranks.
func (s *Schedule) Rebuild(elements []int, dummy int, src *rng.Source) *Schedule {
	out := &Schedule{
		elements: append([]int(nil), elements...),
		ranks:    make([]int, len(elements)),
		dummy:    dummy,
	}
	for i, e := range elements {
		out.ranks[i] = -1
		if r, err := s.RankOf(e); err == nil {
			out.ranks[i] = r
		}
	}
	out.repairDist(src)

	return out
}

// Clone returns a deep copy.
func (s *Schedule) Clone() *Schedule {
	return &Schedule{
		elements: append([]int(nil), s.elements...),
		ranks:    append([]int(nil), s.ranks...),
		dummy:    s.dummy,
	}
}

// Equal reports whether both schedules hold the same elements, ranks and dummy.
func (s *Schedule) Equal(o *Schedule) bool {
	if s.dummy != o.dummy || len(s.elements) != len(o.elements) {
		return false
	}
	for i := range s.elements {
		if s.elements[i] != o.elements[i] || s.ranks[i] != o.ranks[i] {
			return false
		}
	}

	return true
}

// String renders the schedule in rank order, ending with the dummy:
// "[3 1 4 | 9]".
func (s *Schedule) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range s.Order() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", e)
	}
	fmt.Fprintf(&b, " | %d]", s.dummy)

	return b.String()
}

// repairDist reassigns every element whose rank is out of range or shared
// with an earlier-indexed element to a uniformly chosen unused rank.
func (s *Schedule) repairDist(src *rng.Source) {
	n := len(s.ranks)
	used := make([]bool, n)
	var bad []int
	for i, r := range s.ranks {
		if r < 0 || r >= n || used[r] {
			bad = append(bad, i)
			continue
		}
		used[r] = true
	}
	if len(bad) == 0 {
		return
	}
	free := make([]int, 0, len(bad))
	for r, u := range used {
		if !u {
			free = append(free, r)
		}
	}
	for _, i := range bad {
		k := src.Intn(len(free))
		s.ranks[i] = free[k]
		free[k] = free[len(free)-1]
		free = free[:len(free)-1]
	}
}
