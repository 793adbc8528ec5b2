// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to limit runes, marking the cut with "..."
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// PrintJob outputs the job requirement being scored against.
func (p *Printer) PrintJob(job *types.JobRequirement) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:           %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Min experience:  %.1f yrs\n", job.MinExperience))
	sb.WriteString(fmt.Sprintf("Required skills: %s\n", strings.Join(job.RequiredSkills, ", ")))
	if len(job.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("Keywords:        %s\n", strings.Join(job.Keywords, ", ")))
	}

	p.printBox("JOB REQUIREMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCandidate outputs the score breakdown and insights of one evaluated résumé.
func (p *Printer) PrintCandidate(result *types.CandidateResult) {
	if result == nil {
		return
	}

	b := result.Breakdown
	in := result.Insights
	var sb strings.Builder

	name := result.Filename
	if name == "" {
		name = result.ResumeID
	}
	if name != "" {
		sb.WriteString(fmt.Sprintf("Candidate:  %s\n", name))
	}
	sb.WriteString(fmt.Sprintf("Score:      %d/100 (raw %d) [%s %s]\n", result.Score, result.RawScore, in.Tier, in.TierLabel))
	if result.ComparativeRank != "" {
		sb.WriteString(fmt.Sprintf("Rank:       #%d %s (%s)\n", result.RankPosition, result.ComparativeRank, result.RoleFit))
	}
	sb.WriteString(fmt.Sprintf("Recommend:  %s\n", in.Recommendation))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Skills %3d%%  Experience %3d%% (%.1f yrs)  Seniority %3d%%\n",
		b.SkillMatch, b.ExperienceScore, b.ExperienceYears, b.SeniorityScore))
	sb.WriteString(fmt.Sprintf("Role   %3d%%  Projects   %3d%%             Education %3d%%\n",
		b.RoleAlignment, b.ProjectScore, b.EducationScore))

	writeList(&sb, "Strengths", in.KeyStrengths)
	writeList(&sb, "Gaps", in.Gaps)
	writeList(&sb, "Adjustments", in.ScoreNotes)

	p.printBox("CANDIDATE EVALUATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankingRun outputs the calibrated leaderboard of a ranking run.
func (p *Printer) PrintRankingRun(run *types.RankingRun) {
	if run == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:  %s\n", run.ID))
	sb.WriteString(fmt.Sprintf("Job:  %s\n", run.Job.Title))
	sb.WriteString(fmt.Sprintf("Pool: %d ranked, %d skipped\n", len(run.Results), len(run.Skipped)))

	if len(run.Results) > 0 {
		sb.WriteString("\n")
	}
	for _, result := range run.Results {
		name := result.Filename
		if name == "" {
			name = result.ResumeID
		}
		sb.WriteString(fmt.Sprintf("#%-2d %3d (raw %3d)  %-18s %s\n",
			result.RankPosition, result.Score, result.RawScore, result.ComparativeRank, name))
	}

	if len(run.Skipped) > 0 {
		sb.WriteString("\nSkipped:\n")
		for _, s := range run.Skipped {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", s.Filename, s.Reason))
		}
	}

	p.printBox("RANKING", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", title))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
