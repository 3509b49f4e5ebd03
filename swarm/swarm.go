package swarm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/jiankangren/DeSyDe-meta/rng"
)

// New returns a swarm over agents. numObjectives sizes the front.
func New(cfg Config, agents []Agent, numObjectives int, opts ...Option) (*Swarm, error) {
	if len(agents) == 0 {
		return nil, ErrNoAgents
	}
	if cfg.Generations < 0 || cfg.Threads <= 0 || cfg.StagnationLimit < 0 {
		return nil, fmt.Errorf("%+v: %w", cfg, ErrConfig)
	}
	if cfg.Threads > len(agents) {
		cfg.Threads = len(agents)
	}
	s := &Swarm{
		cfg:    cfg,
		agents: agents,
		front:  NewParetoFront(numObjectives),
		src:    rng.New(rng.DefaultSeed),
		log:    discardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Front returns the swarm's Pareto front.
func (s *Swarm) Front() *ParetoFront { return s.front }

// Run executes the population loop. Cancelling ctx stops the run at the
// next generation boundary; the result then covers the generations
// completed so far.
func (s *Swarm) Run(ctx context.Context) (*Result, error) {
	res := &Result{RunID: uuid.New()}
	log := s.log.WithField("run", res.RunID.String())
	start := time.Now()
	log.WithFields(logrus.Fields{
		"agents":      len(s.agents),
		"threads":     s.cfg.Threads,
		"generations": s.cfg.Generations,
	}).Info("search started")

	if err := s.parallel(Agent.CalcFitness); err != nil {
		return nil, err
	}
	s.merge(log, 0)

	stagnant := 0
	for gen := 1; gen <= s.cfg.Generations; gen++ {
		if ctx.Err() != nil {
			res.Cancelled = true
			break
		}
		s.broadcast()
		if err := s.parallel(Agent.Update); err != nil {
			return nil, err
		}
		if err := s.parallel(Agent.CalcFitness); err != nil {
			return nil, err
		}
		res.Generations = gen

		if s.merge(log, gen) {
			stagnant = 0
			continue
		}
		stagnant++
		if s.cfg.StagnationLimit > 0 && stagnant >= s.cfg.StagnationLimit {
			if err := s.restart(log, gen); err != nil {
				return nil, err
			}
			res.Restarts++
			stagnant = 0
		}
	}

	res.Front = s.front.Members()
	res.Duration = time.Since(start)
	res.Stats = s.stats()
	log.WithFields(logrus.Fields{
		"generations": res.Generations,
		"front":       len(res.Front),
		"restarts":    res.Restarts,
		"duration":    res.Duration.String(),
		"cancelled":   res.Cancelled,
	}).Info("search finished")

	return res, nil
}

// parallel applies fn to every agent, one contiguous slice per worker, and
// returns the first error.
func (s *Swarm) parallel(fn func(Agent) error) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		fail error
	)
	per := (len(s.agents) + s.cfg.Threads - 1) / s.cfg.Threads
	for lo := 0; lo < len(s.agents); lo += per {
		hi := min(lo+per, len(s.agents))
		wg.Add(1)
		go func(part []Agent) {
			defer wg.Done()
			for _, a := range part {
				if err := fn(a); err != nil {
					mu.Lock()
					if fail == nil {
						fail = fmt.Errorf("agent %d: %w", a.ID(), err)
					}
					mu.Unlock()
					return
				}
			}
		}(s.agents[lo:hi])
	}
	wg.Wait()

	return fail
}

// merge offers every agent's current position to the front.
func (s *Swarm) merge(log logrus.FieldLogger, gen int) bool {
	changed := false
	for _, a := range s.agents {
		if s.front.Update(a.Current()) {
			changed = true
		}
	}
	if changed {
		log.WithFields(logrus.Fields{"generation": gen, "front": s.front.String()}).Debug("front updated")
	}

	return changed
}

// broadcast hands every agent the front member of its objective, or its
// own best when that slot is empty.
func (s *Swarm) broadcast() {
	for _, a := range s.agents {
		g := s.front.Best(a.Objective())
		if g == nil {
			g = a.BestLocal()
		}
		a.SetBestGlobal(g)
	}
}

// restart reinitialises a random half of the population.
func (s *Swarm) restart(log logrus.FieldLogger, gen int) error {
	perm := s.src.Perm(len(s.agents))
	n := len(s.agents) / 2
	for _, i := range perm[:n] {
		if err := s.agents[i].Reinit(); err != nil {
			return fmt.Errorf("agent %d: %w", s.agents[i].ID(), err)
		}
	}
	log.WithFields(logrus.Fields{"generation": gen, "reinitialised": n}).Info("stagnation restart")

	return nil
}

// stats summarises the primary objective of every evaluated agent.
func (s *Swarm) stats() Stats {
	var xs []float64
	for _, a := range s.agents {
		if p := a.Current(); !p.Empty() {
			xs = append(xs, float64(p.Fitness[0]))
		}
	}
	if len(xs) == 0 {
		return Stats{}
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if len(xs) == 1 {
		std = 0
	}

	return Stats{Mean: mean, StdDev: std, Min: floats.Min(xs)}
}
