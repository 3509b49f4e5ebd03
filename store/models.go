package store

import "time"

// Run is one finished search.
type Run struct {
	ID        uint   `gorm:"primarykey,autoIncrement"`
	RunID     string `gorm:"size:36;uniqueIndex;not null"`
	CreatedAt time.Time

	Variant     string `gorm:"size:20;not null"`
	Seed        int64
	Generations int
	Restarts    int
	DurationMS  int64
	Cancelled   bool

	Mean   float64
	StdDev float64
	Min    float64

	// Config is the YAML form of the run configuration.
	Config string `gorm:"type:text"`

	Solutions []Solution `gorm:"foreignKey:RunID;references:RunID;constraint:OnDelete:CASCADE"`
}

// Solution is one member of a run's front.
type Solution struct {
	ID    uint   `gorm:"primarykey,autoIncrement"`
	RunID string `gorm:"size:36;index;not null"`
	Rank  int    `gorm:"not null"`

	Fitness    []int64 `gorm:"serializer:json"`
	Violations int
	Processors []int   `gorm:"serializer:json"`
	Modes      []int   `gorm:"serializer:json"`
	TDMA       []int   `gorm:"serializer:json"`
	ProcSched  [][]int `gorm:"serializer:json"`
	SendSched  [][]int `gorm:"serializer:json"`
	RecSched   [][]int `gorm:"serializer:json"`
}
