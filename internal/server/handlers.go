package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ranker/internal/ranking"
	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/jonathan/resume-ranker/internal/types"
)

// evaluateBody is the wire form of types.EvaluateRequest; the job is schema-checked raw
type evaluateBody struct {
	Job        json.RawMessage `json:"job"`
	ResumeText string          `json:"resume_text"`
}

// rankBody is the wire form of types.RankRequest
type rankBody struct {
	Job     json.RawMessage     `json:"job"`
	Resumes []types.ResumeInput `json:"resumes"`
	Save    bool                `json:"save,omitempty"`
}

// RankResponse is the response for /rank
type RankResponse struct {
	*types.RankingRun
	Saved bool `json:"saved"`
}

// CalibrateResponse is the response for /calibrate
type CalibrateResponse struct {
	Results []types.CandidateResult `json:"results"`
	Swaps   []ranking.Swap          `json:"swaps"`
}

// pinger is implemented by stores that can report connectivity
type pinger interface {
	Ping(ctx context.Context) error
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":           "ok",
		"taxonomy_version": s.evaluator.Taxonomy.Version(),
	}
	if p, ok := s.store.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			s.logger.Warn("database ping failed", zap.Error(err))
			status["status"] = "degraded"
			status["database"] = "unavailable"
		} else {
			status["database"] = "ok"
		}
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// handleEvaluate scores one résumé against one job
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var body evaluateBody
	if err := decodeBody(w, r, &body); err != nil {
		s.handleError(w, r, err)
		return
	}

	job, err := parseJob(body.Job)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	req := types.EvaluateRequest{Job: job, ResumeText: body.ResumeText}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	result := s.evaluator.Evaluate(req.ResumeText, req.Job)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleRank scores and calibrates a pool of résumés, optionally persisting the run
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var body rankBody
	if err := decodeBody(w, r, &body); err != nil {
		s.handleError(w, r, err)
		return
	}

	job, err := parseJob(body.Job)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	req := types.RankRequest{Job: job, Resumes: body.Resumes, Save: body.Save}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}
	if req.Save && s.store == nil {
		s.handleError(w, r, &ErrStoreUnavailable{})
		return
	}

	run, err := ranking.RankCandidates(r.Context(), s.evaluator, req.Job, req.Resumes, ranking.RankOptions{
		Workers:        s.opts.Workers,
		MinResumeChars: s.opts.MinResumeChars,
		Logger:         s.logger,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if req.Save {
		if err := s.store.SaveRankingRun(r.Context(), run); err != nil {
			s.handleError(w, r, err)
			return
		}
		s.logger.Info("saved ranking run", zap.String("run_id", run.ID.String()))
	}

	s.jsonResponse(w, http.StatusOK, RankResponse{RankingRun: run, Saved: req.Save})
}

// handleCalibrate runs pool calibration over previously evaluated results
func (s *Server) handleCalibrate(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := schemas.Validate(schemas.Pool, data); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	var pool []types.CandidateResult
	if err := json.Unmarshal(data, &pool); err != nil {
		s.handleError(w, r, &ErrValidation{Message: "invalid pool: " + err.Error()})
		return
	}

	results, swaps := ranking.Calibrate(pool)
	s.jsonResponse(w, http.StatusOK, CalibrateResponse{Results: results, Swaps: swaps})
}

// handleGetRanking returns a stored ranking run
func (s *Server) handleGetRanking(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}
	if s.store == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "ranking run", ID: idStr})
		return
	}

	run, err := s.store.GetRankingRun(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if run == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "ranking run", ID: idStr})
		return
	}

	s.jsonResponse(w, http.StatusOK, run)
}

// handleTaxonomy resolves a skill term against the taxonomy
func (s *Server) handleTaxonomy(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.PathValue("term"))
	if term == "" {
		s.handleError(w, r, &ErrValidation{Field: "term", Message: "is required"})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.evaluator.Taxonomy.Lookup(term))
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrValidation{Message: "request body too large"}
		}
		return nil, err
	}
	return data, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	data, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	return nil
}

// parseJob validates the job document against its schema before decoding it
func parseJob(raw json.RawMessage) (types.JobRequirement, error) {
	var job types.JobRequirement
	if len(raw) == 0 || string(raw) == "null" {
		return job, &ErrValidation{Field: "job", Message: "is required"}
	}
	if err := schemas.Validate(schemas.Job, raw); err != nil {
		return job, validationError(err)
	}
	if err := json.Unmarshal(raw, &job); err != nil {
		return job, &ErrValidation{Field: "job", Message: err.Error()}
	}
	return job, nil
}
