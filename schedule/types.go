package schedule

import (
	"errors"
)

// Sentinel errors for schedule operations.
var (
	// ErrElementNotFound indicates an element or rank absent from the schedule.
	ErrElementNotFound = errors.New("schedule: element not in the set")

	// ErrRankLength indicates a bulk rank vector of the wrong length.
	ErrRankLength = errors.New("schedule: rank vector length mismatch")

	// ErrIndexOutOfRange indicates a positional index outside [0,n).
	ErrIndexOutOfRange = errors.New("schedule: index out of range")
)

// Schedule is a total order over a fixed element set plus a dummy terminal.
//
// elements[i] has rank ranks[i]. The zero value is an empty schedule with
// dummy 0; use New.
type Schedule struct {
	elements []int
	ranks    []int
	dummy    int
}
