//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// SkippedResume records a résumé left out of a batch and why
type SkippedResume struct {
	ResumeID string `json:"resume_id,omitempty"`
	Filename string `json:"filename,omitempty"`
	Reason   string `json:"reason"`
}

// RankingRun is the calibrated outcome of ranking a pool of résumés against one job
type RankingRun struct {
	ID        uuid.UUID         `json:"id"`
	Job       JobRequirement    `json:"job"`
	Results   []CandidateResult `json:"results"`
	Skipped   []SkippedResume   `json:"skipped"`
	CreatedAt time.Time         `json:"created_at"`
}
