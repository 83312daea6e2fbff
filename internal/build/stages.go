package build

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.home.luguber.info/inful/iconbuilder/internal/config"
)

// Stage names, in execution order.
const (
	StagePrepareOutput = "prepare_output"
	StageWriteLicense  = "write_license"
	StageWriteManifest = "write_manifest"
	StageEmitIcons     = "emit_icons"
)

// Stage is a discrete unit of work in the build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// BuildState carries mutable state across stages. The per-set seen-name set
// lives only inside the emit stage and is discarded between sets.
type BuildState struct {
	Sets   []config.IconSet
	Out    *Output
	Report *BuildReport
}

type namedStage struct {
	name string
	fn   Stage
}

// runStages executes stages in order, recording timing, continuing past
// warnings and stopping on the first fatal or canceled error.
func runStages(ctx context.Context, bs *BuildState, stages []namedStage) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.name, ctx.Err())
			bs.Report.Errors = append(bs.Report.Errors, se.Error())
			return se
		default:
		}
		t0 := time.Now()
		err := st.fn(ctx, bs)
		bs.Report.StageDurations[st.name] = time.Since(t0)
		if err == nil {
			continue
		}
		var se *StageError
		if !errors.As(err, &se) {
			se = newFatalStageError(st.name, err)
		}
		switch se.Kind {
		case StageErrorWarning:
			bs.Report.Warnings = append(bs.Report.Warnings, se.Error())
		default:
			bs.Report.Errors = append(bs.Report.Errors, se.Error())
			return se
		}
	}
	return nil
}
