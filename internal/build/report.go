package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// BuildOutcome classifies the end state of a build.
type BuildOutcome string

const (
	OutcomeSuccess BuildOutcome = "success"
	OutcomePartial BuildOutcome = "partial"
	OutcomeFailed  BuildOutcome = "failed"
)

// BuildReport captures counts, timings and errors for one build invocation.
type BuildReport struct {
	ID                string                   `json:"id"`
	Start             time.Time                `json:"start"`
	End               time.Time                `json:"end"`
	Sets              int                      `json:"sets"`
	Files             int                      `json:"files"`
	Emitted           int                      `json:"emitted"`
	SkippedDuplicates int                      `json:"skipped_duplicates"`
	StageDurations    map[string]time.Duration `json:"stage_durations"`
	Warnings          []string                 `json:"warnings,omitempty"`
	Errors            []string                 `json:"errors,omitempty"`
	Outcome           BuildOutcome             `json:"outcome"`
}

func newBuildReport() *BuildReport {
	return &BuildReport{
		ID:             uuid.NewString(),
		Start:          time.Now(),
		StageDurations: make(map[string]time.Duration),
	}
}

func (r *BuildReport) finish() {
	r.End = time.Now()
	r.deriveOutcome()
}

func (r *BuildReport) deriveOutcome() {
	switch {
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
	case len(r.Warnings) > 0:
		r.Outcome = OutcomePartial
	default:
		r.Outcome = OutcomeSuccess
	}
}

// Duration returns the wall time of the build.
func (r *BuildReport) Duration() time.Duration { return r.End.Sub(r.Start) }

// Persist writes the report as build-report.json inside the output directory.
func (r *BuildReport) Persist(outputDir string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	path := filepath.Join(outputDir, "build-report.json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("persist report: %w", err)
	}
	return nil
}
