// Package types provides type definitions for structured data used throughout the resume-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// JobRequirement describes one job that résumés are scored against.
// It is built once per ranking request and never mutated during scoring.
type JobRequirement struct {
	Title          string   `json:"title,omitempty" validate:"max=200"`
	RequiredSkills []string `json:"required_skills" validate:"max=100,dive,max=100"`
	// Priorities optionally overrides the position-derived tier of a skill (0.0 to 1.0)
	Priorities    map[string]float64 `json:"priorities,omitempty" validate:"omitempty,dive,keys,required,endkeys,gte=0,lte=1"`
	Keywords      []string           `json:"keywords,omitempty" validate:"max=100,dive,max=100"`
	MinExperience float64            `json:"min_experience" validate:"gte=0,lte=60"`
}

// Validate validates the JobRequirement using the validator and rejects priority keys
// that collide once case and surrounding space are ignored.
func (j *JobRequirement) Validate() error {
	validate := validator.New()
	if err := validate.Struct(j); err != nil {
		return err
	}
	return j.validatePriorityKeys()
}

func (j *JobRequirement) validatePriorityKeys() error {
	seen := make(map[string]string, len(j.Priorities))
	for _, name := range j.priorityNames() {
		key := priorityKey(name)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("duplicate priority for skill %q: %q and %q", key, prev, name)
		}
		seen[key] = name
	}
	return nil
}

// Priority returns the explicit priority declared for a skill, matched case-insensitively.
// Colliding keys resolve to the lexically first name.
func (j *JobRequirement) Priority(skill string) (float64, bool) {
	if len(j.Priorities) == 0 {
		return 0, false
	}
	key := priorityKey(skill)
	for _, name := range j.priorityNames() {
		if priorityKey(name) == key {
			return j.Priorities[name], true
		}
	}
	return 0, false
}

func (j *JobRequirement) priorityNames() []string {
	names := make([]string, 0, len(j.Priorities))
	for name := range j.Priorities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func priorityKey(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// ResumeInput is one résumé submitted for ranking, already reduced to plain text.
type ResumeInput struct {
	ID       string `json:"id,omitempty" validate:"max=200"`
	Filename string `json:"filename,omitempty" validate:"max=500"`
	Text     string `json:"text"`
}

// EvaluateRequest represents a request to score a single résumé.
type EvaluateRequest struct {
	Job        JobRequirement `json:"job"`
	ResumeText string         `json:"resume_text"`
}

// Validate validates the EvaluateRequest using the validator.
func (r *EvaluateRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return r.Job.validatePriorityKeys()
}

// RankRequest represents a request to score and calibrate a pool of résumés.
type RankRequest struct {
	Job     JobRequirement `json:"job"`
	Resumes []ResumeInput  `json:"resumes" validate:"required,min=1,max=500,dive"`
	Save    bool           `json:"save,omitempty"`
}

// Validate validates the RankRequest using the validator.
func (r *RankRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return r.Job.validatePriorityKeys()
}
