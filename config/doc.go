// Package config holds the run configuration of the exploration engine.
//
// A configuration is a YAML document decoded over Default, so a file only
// needs the keys it changes:
//
//	search:
//	  variant: particle
//	  particles: 40
//	  generations: 500
//	model:
//	  path: problems/two_apps.yaml
//	store:
//	  path: runs.db
//
// Unknown keys are rejected. Objective weights and penalties left empty are
// sized from the loaded model by ObjectiveWeights and Penalties.
package config
