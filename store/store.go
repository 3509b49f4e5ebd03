package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jiankangren/DeSyDe-meta/config"
	"github.com/jiankangren/DeSyDe-meta/position"
	"github.com/jiankangren/DeSyDe-meta/schedule"
	"github.com/jiankangren/DeSyDe-meta/swarm"
)

// ErrNilResult indicates SaveResult was given no result.
var ErrNilResult = errors.New("store: nil result")

// Store is a handle on the result database.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at path and migrates
// its tables.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Run{}, &Solution{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// SaveResult stores res and its front in one transaction.
func (s *Store) SaveResult(ctx context.Context, res *swarm.Result, cfg config.Config) error {
	if res == nil {
		return ErrNilResult
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("store: encode config: %w", err)
	}
	run := Run{
		RunID:       res.RunID.String(),
		Variant:     string(cfg.Search.Variant),
		Seed:        cfg.Search.Seed,
		Generations: res.Generations,
		Restarts:    res.Restarts,
		DurationMS:  res.Duration.Milliseconds(),
		Cancelled:   res.Cancelled,
		Mean:        res.Stats.Mean,
		StdDev:      res.Stats.StdDev,
		Min:         res.Stats.Min,
		Config:      string(raw),
	}
	for i, p := range res.Front {
		run.Solutions = append(run.Solutions, solution(i, p))
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&run).Error
	})
	if err != nil {
		return fmt.Errorf("store: save run %s: %w", run.RunID, err)
	}

	return nil
}

func solution(rank int, p *position.Position) Solution {
	return Solution{
		Rank:       rank,
		Fitness:    append([]int64(nil), p.Fitness...),
		Violations: p.Violations,
		Processors: p.Processors(),
		Modes:      append([]int(nil), p.Modes...),
		TDMA:       append([]int(nil), p.TDMA...),
		ProcSched:  orders(p.ProcSched),
		SendSched:  orders(p.SendSched),
		RecSched:   orders(p.RecSched),
	}
}

func orders(fam []*schedule.Schedule) [][]int {
	out := make([][]int, len(fam))
	for i, s := range fam {
		if s != nil {
			out[i] = s.Order()
		}
	}

	return out
}

// Runs returns every stored run, newest first, without solutions.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	var runs []Run
	if err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}

	return runs, nil
}

// Solutions returns the front of run id in rank order.
func (s *Store) Solutions(ctx context.Context, id uuid.UUID) ([]Solution, error) {
	var sols []Solution
	err := s.db.WithContext(ctx).
		Where("run_id = ?", id.String()).
		Order("rank").
		Find(&sols).Error
	if err != nil {
		return nil, fmt.Errorf("store: solutions of %s: %w", id, err)
	}

	return sols, nil
}
