// Package store persists search runs and their Pareto fronts in SQLite.
//
// Each swarm.Result becomes one Run row, keyed by its run identifier, and
// one Solution row per front member in objective order. The configuration
// the run used is kept as YAML on the Run row.
package store
