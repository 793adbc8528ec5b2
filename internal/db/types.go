package db

import (
	"time"

	"github.com/google/uuid"
)

// DefaultListLimit bounds ListRankingRuns when no limit is given
const DefaultListLimit = 20

// RunSummary is a ranking run without its results
type RunSummary struct {
	ID        uuid.UUID `json:"id"`
	JobTitle  string    `json:"job_title"`
	PoolSize  int       `json:"pool_size"`
	CreatedAt time.Time `json:"created_at"`
}
