// Package individual implements the genetic-style agent with opposition
// moves.
//
// An Individual maps actors through symmetry groups: application i belongs
// to group AppGroup[i] ≤ i, every processor belongs to one used group, and
// an actor may only run on the processors of its application's group. The
// representation removes most symmetric duplicates of a mapping.
//
// Each update either reinitialises the individual or applies the
// opposition move, which sends every actor to a processor none of its
// former neighbours occupies, then rebuilds the schedules and repairs.
// Reinitialisation happens after more than InvalidLimit successive invalid
// evaluations; an evaluation is invalid when its primary objective is
// negative or the position carries violations.
package individual
