// Package swarm runs a population of agents and keeps the Pareto front.
//
// Run evaluates every agent, then repeats for the configured number of
// generations: merge the evaluated positions into the front, hand every
// agent a copy of the front member for its objective, move every agent,
// and evaluate again. Evaluation and moves are spread over a fixed number
// of worker goroutines, each owning a contiguous slice of the agents.
//
// When the front has not changed for StagnationLimit generations, a random
// half of the population is reinitialised.
//
// Agents never share positions: the front stores clones and hands out
// clones.
package swarm
