package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jiankangren/DeSyDe-meta/config"
	"github.com/jiankangren/DeSyDe-meta/constraint"
	"github.com/jiankangren/DeSyDe-meta/fitness"
	"github.com/jiankangren/DeSyDe-meta/individual"
	"github.com/jiankangren/DeSyDe-meta/model"
	"github.com/jiankangren/DeSyDe-meta/particle"
	"github.com/jiankangren/DeSyDe-meta/rng"
	"github.com/jiankangren/DeSyDe-meta/sim"
	"github.com/jiankangren/DeSyDe-meta/store"
	"github.com/jiankangren/DeSyDe-meta/swarm"
)

var errNoModel = errors.New("no model path configured")

var (
	_ swarm.Agent = (*particle.Particle)(nil)
	_ swarm.Agent = (*individual.Individual)(nil)
)

// run parses args, performs one search and reports it on stdout. Logs go
// to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("desyde-meta", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfgPath   = fs.String("config", "", "run configuration (YAML)")
		modelPath = fs.String("model", "", "problem description (YAML), overrides model.path")
		dbPath    = fs.String("db", "", "result database, overrides store.path")
		seed      = fs.Int64("seed", 0, "random seed, overrides search.seed")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.Model.Path = *modelPath
		case "db":
			cfg.Store.Path = *dbPath
		case "seed":
			cfg.Search.Seed = *seed
		}
	})
	if cfg.Model.Path == "" {
		return errNoModel
	}

	log, err := cfg.Log.Logger(stderr)
	if err != nil {
		return err
	}
	m, err := model.Load(cfg.Model.Path)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"model":      cfg.Model.Path,
		"actors":     m.Apps.NumActors(),
		"channels":   m.Apps.NumChannels(),
		"apps":       m.Apps.NumApps(),
		"processors": m.Platform.NumProcessors(),
	}).Info("model loaded")

	root := rng.New(cfg.Search.Seed)
	agents, numObj, err := population(cfg.Search, m, root, log)
	if err != nil {
		return err
	}
	sw, err := swarm.New(swarm.Config{
		Generations:     cfg.Search.Generations,
		Threads:         cfg.Search.Threads,
		StagnationLimit: cfg.Search.StagnationLimit,
	}, agents, numObj,
		swarm.WithLogger(log),
		swarm.WithSource(root.Derive(uint64(len(agents)))))
	if err != nil {
		return err
	}

	res, err := sw.Run(ctx)
	if err != nil {
		return err
	}
	report(stdout, cfg, res, m.Apps.NumApps())

	if cfg.Store.Path == "" {
		return nil
	}
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	// the run is stored even when the search was interrupted
	if err := db.SaveResult(context.WithoutCancel(ctx), res, cfg); err != nil {
		return err
	}
	log.WithField("run", res.RunID.String()).Info("result stored")

	return nil
}

// population builds cfg.Particles agents of the configured variant, each
// with its own checker and random stream, and returns the number of
// objectives they spread over.
func population(s config.Search, m *model.Model, root *rng.Source, log logrus.FieldLogger) ([]swarm.Agent, int, error) {
	numApps := m.Apps.NumApps()
	layout := fitness.Swarm
	if s.Variant == config.Individual {
		layout = fitness.Genetic
	}
	numObj := layout.Len(numApps)
	engine := sim.New(m, sim.WithLogger(log))
	weights := s.ObjectiveWeights(numApps + 1)
	penalty := s.Penalties(numApps + 1)

	agents := make([]swarm.Agent, 0, s.Particles)
	for i := 0; i < s.Particles; i++ {
		alog := log.WithField("agent", i)
		checker := constraint.NewChecker(m.Apps, m.Platform, root.Derive(uint64(i)),
			constraint.WithLogger(alog),
			constraint.WithEstimate(s.EstimateViolations))
		eval, err := fitness.NewEvaluator(engine, checker, m.Apps, layout, penalty,
			fitness.WithCoMappingPenalty(s.CoMappingPenalty),
			fitness.WithLogger(alog))
		if err != nil {
			return nil, 0, err
		}

		var a swarm.Agent
		switch s.Variant {
		case config.Individual:
			a, err = individual.New(i, m.Apps, m.Platform, checker, eval, individual.Params{
				Objective:    i % numObj,
				InvalidLimit: s.InvalidLimit,
				Weights:      weights,
				MultiObj:     s.MultiObjective,
			}, individual.WithLogger(alog))
		default:
			a, err = particle.New(i, m.Apps, m.Platform, checker, eval, particle.Params{
				Objective:    i % numObj,
				Inertia:      s.Inertia,
				LocalWeight:  s.LocalWeight,
				GlobalWeight: s.GlobalWeight,
				InvalidLimit: s.InvalidLimit,
				Weights:      weights,
				MultiObj:     s.MultiObjective,
			}, particle.WithLogger(alog))
		}
		if err != nil {
			return nil, 0, fmt.Errorf("agent %d: %w", i, err)
		}
		agents = append(agents, a)
	}

	return agents, numObj, nil
}
