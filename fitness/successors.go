package fitness

import (
	"fmt"

	"github.com/jiankangren/DeSyDe-meta/schedule"
)

// Successors flattens one schedule family into a successor array of length
// numElements+len(scheds). Entry e holds the element following e on its
// processor (or that processor's dummy). The dummy of processor i points to
// the first element of processor i+1, and the last dummy wraps to processor
// 0, so the array forms one ring through every processor.
func Successors(scheds []*schedule.Schedule, numElements int) ([]int, error) {
	n := len(scheds)
	next := make([]int, numElements+n)
	for i, s := range scheds {
		if s == nil {
			return nil, fmt.Errorf("processor %d has no schedule: %w", i, ErrShape)
		}
		for _, e := range s.Elements() {
			if e < 0 || e >= numElements {
				return nil, fmt.Errorf("processor %d element %d: %w", i, e, ErrShape)
			}
			nx, err := s.Next(e)
			if err != nil {
				return nil, err
			}
			next[e] = nx
		}
	}
	for i := range scheds {
		next[numElements+i] = scheds[(i+1)%n].First()
	}

	return next, nil
}
