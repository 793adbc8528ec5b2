package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ranker/internal/types"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test: DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.EnsureSchema(context.Background()))
	return db
}

func TestRankingRunRoundTrip_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	run := &types.RankingRun{
		ID: uuid.New(),
		Job: types.JobRequirement{
			Title:          "Backend Engineer",
			RequiredSkills: []string{"Go", "Kafka"},
			MinExperience:  3,
		},
		Results: []types.CandidateResult{
			{ResumeID: "a", Filename: "a.txt", RawScore: 80, Score: 91, RankPosition: 1, ComparativeRank: "Top Candidate"},
			{ResumeID: "b", Filename: "b.txt", RawScore: 40, Score: 33, RankPosition: 2, ComparativeRank: "Weak Candidate"},
		},
		Skipped:   []types.SkippedResume{{ResumeID: "c", Filename: "c.txt", Reason: "too short"}},
		CreatedAt: time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, db.SaveRankingRun(ctx, run))

	got, err := db.GetRankingRun(ctx, run.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, run.Job.Title, got.Job.Title)
	assert.Equal(t, run.Job.RequiredSkills, got.Job.RequiredSkills)
	assert.Equal(t, run.Skipped, got.Skipped)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Results, 2)
	assert.Equal(t, "a", got.Results[0].ResumeID)
	assert.Equal(t, 91, got.Results[0].Score)
	assert.Equal(t, 40, got.Results[1].RawScore)

	summaries, err := db.ListRankingRuns(ctx, 100)
	require.NoError(t, err)
	found := false
	for _, s := range summaries {
		if s.ID == run.ID {
			found = true
			assert.Equal(t, 2, s.PoolSize)
			assert.Equal(t, "Backend Engineer", s.JobTitle)
		}
	}
	assert.True(t, found)
}

func TestGetRankingRun_NotFound_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	got, err := db.GetRankingRun(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveRankingRun_RequiresID_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := db.SaveRankingRun(context.Background(), &types.RankingRun{})
	assert.Error(t, err)
}
