package build

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState() *BuildState {
	return &BuildState{Report: newBuildReport()}
}

func TestRunStagesStopsOnFatal(t *testing.T) {
	var ran []string
	mk := func(name string, err error) namedStage {
		return namedStage{name, func(context.Context, *BuildState) error {
			ran = append(ran, name)
			return err
		}}
	}

	bs := newTestState()
	err := runStages(context.Background(), bs, []namedStage{
		mk("one", nil),
		mk("two", errors.New("boom")),
		mk("three", nil),
	})

	require.Error(t, err)
	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageErrorFatal, se.Kind, "plain errors are wrapped as fatal")
	assert.Equal(t, "two", se.Stage)
	assert.Equal(t, []string{"one", "two"}, ran, "later stages must not run")
	assert.Len(t, bs.Report.Errors, 1)
}

func TestRunStagesContinuesPastWarnings(t *testing.T) {
	var ran []string
	bs := newTestState()
	err := runStages(context.Background(), bs, []namedStage{
		{"warns", func(context.Context, *BuildState) error {
			ran = append(ran, "warns")
			return newWarnStageError("warns", errors.New("minor"))
		}},
		{"after", func(context.Context, *BuildState) error {
			ran = append(ran, "after")
			return nil
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"warns", "after"}, ran)
	assert.Len(t, bs.Report.Warnings, 1)
	bs.Report.finish()
	assert.Equal(t, OutcomePartial, bs.Report.Outcome)
}

func TestRunStagesRecordsDurations(t *testing.T) {
	bs := newTestState()
	err := runStages(context.Background(), bs, []namedStage{
		{"noop", func(context.Context, *BuildState) error { return nil }},
	})
	require.NoError(t, err)
	assert.Contains(t, bs.Report.StageDurations, "noop")
}

func TestRunStagesHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bs := newTestState()
	err := runStages(ctx, bs, []namedStage{
		{"never", func(context.Context, *BuildState) error {
			t.Fatal("stage ran despite canceled context")
			return nil
		}},
	})

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageErrorCanceled, se.Kind)
}
