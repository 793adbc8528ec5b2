package ranking

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-ranker/internal/types"
)

// DefaultMinResumeChars is the shortest résumé text, after trimming, worth evaluating
const DefaultMinResumeChars = 20

// RankOptions controls batch ranking
type RankOptions struct {
	// Workers bounds concurrent evaluations; zero means GOMAXPROCS
	Workers int
	// MinResumeChars skips résumés with less text than this
	MinResumeChars int
	Logger         *zap.Logger
	// Now stamps the run; defaults to the wall clock
	Now func() time.Time
}

// RankCandidates scores every résumé against the job concurrently, then calibrates the
// complete pool. Résumés that are too short or whose evaluation panics are skipped and
// reported; the batch continues. Only context cancellation fails the run.
func RankCandidates(ctx context.Context, evaluator *Evaluator, job types.JobRequirement, resumes []types.ResumeInput, opts RankOptions) (*types.RankingRun, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	minChars := opts.MinResumeChars
	if minChars <= 0 {
		minChars = DefaultMinResumeChars
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	results := make([]*types.CandidateResult, len(resumes))
	skipped := make([]*types.SkippedResume, len(resumes))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, resume := range resumes {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			if len(strings.TrimSpace(resume.Text)) < minChars {
				skipped[i] = &types.SkippedResume{
					ResumeID: resume.ID,
					Filename: resume.Filename,
					Reason:   fmt.Sprintf("resume text shorter than %d characters", minChars),
				}
				return nil
			}

			result, err := evaluateSafely(evaluator, resume, job)
			if err != nil {
				skipped[i] = &types.SkippedResume{ResumeID: resume.ID, Filename: resume.Filename, Reason: err.Error()}
				return nil
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ranking cancelled: %w", err)
	}

	run := &types.RankingRun{
		ID:        uuid.New(),
		Job:       job,
		Results:   make([]types.CandidateResult, 0, len(resumes)),
		Skipped:   make([]types.SkippedResume, 0),
		CreatedAt: now().UTC(),
	}

	for i := range resumes {
		if skipped[i] != nil {
			logger.Warn("skipped resume",
				zap.String("resume_id", skipped[i].ResumeID),
				zap.String("filename", skipped[i].Filename),
				zap.String("reason", skipped[i].Reason))
			run.Skipped = append(run.Skipped, *skipped[i])
			continue
		}
		if results[i] != nil {
			logger.Debug("scored resume",
				zap.String("resume_id", results[i].ResumeID),
				zap.Int("raw_score", results[i].RawScore))
			run.Results = append(run.Results, *results[i])
		}
	}

	// Input order breaks ties
	sort.SliceStable(run.Results, func(i, j int) bool {
		return run.Results[i].RawScore > run.Results[j].RawScore
	})

	var swaps []Swap
	run.Results, swaps = Calibrate(run.Results)
	for _, swap := range swaps {
		logger.Info("consistency fix: swapped scores",
			zap.String("upper", swap.Upper),
			zap.String("lower", swap.Lower),
			zap.Int("upper_score", swap.UpperScore),
			zap.Int("lower_score", swap.LowerScore))
	}

	logger.Info("ranking complete",
		zap.String("run_id", run.ID.String()),
		zap.Int("ranked", len(run.Results)),
		zap.Int("skipped", len(run.Skipped)))

	return run, nil
}

// evaluateSafely turns a panic inside one evaluation into an error so the batch survives
func evaluateSafely(evaluator *Evaluator, resume types.ResumeInput, job types.JobRequirement) (result *types.CandidateResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("evaluation failed: %v", r)
		}
	}()

	evaluated := evaluator.Evaluate(resume.Text, job)
	evaluated.ResumeID = resume.ID
	evaluated.Filename = resume.Filename
	return &evaluated, nil
}
