// Package schedule implements the ordered permutation used for per-processor
// execution, send and receive orders.
//
// A Schedule holds a fixed element set (actor or channel ids) and a rank per
// element. Ranks are kept a bijection onto [0,n): every mutation that can
// introduce duplicates or out-of-range values is followed by a repair that
// moves offending elements to ranks chosen uniformly among the unused ones.
// The dummy id terminates the order: Next of the last element is the dummy.
//
// Elements are addressed either by value (RankOf, SetRankOf, Next) or by
// their positional index in Elements() (RankAt, SetRank, Swap). Numeric
// search moves work on the rank vector directly (Ranks, SetRanks, Move).
//
// Complexity (n elements):
//
//   - RankAt, SetRank, Swap:         O(1)
//   - RankOf, IndexOf, ElementAt:    O(n) linear scans; n is one processor's
//     share of actors or channels
//   - Next:                          O(n)
//   - Successors, Order:             O(n)
//   - SetRanks, Clamp:               O(n) including the duplicate repair
//   - New:                           O(n) shuffle
//
// Errors:
//
//   - ErrElementNotFound   element or rank absent from the schedule
//   - ErrIndexOutOfRange   positional index outside [0,n)
//   - ErrRankLength        bulk rank vector of the wrong length
package schedule
