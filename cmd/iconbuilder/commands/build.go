package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/iconbuilder/internal/build"
	"git.home.luguber.info/inful/iconbuilder/internal/config"
	"git.home.luguber.info/inful/iconbuilder/internal/history"
	"git.home.luguber.info/inful/iconbuilder/internal/logfields"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory for generated modules (overrides config)"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	outputDir := cfg.Output.Directory
	if b.Output != "" {
		outputDir = b.Output
	}
	RunBuild(context.Background(), cfg, outputDir)
	return nil
}

// RunBuild executes the build pipeline and records the outcome. Pipeline
// failures are logged to stderr but deliberately do not fail the process:
// the exit status stays 0 and stdout carries a completion marker only on
// success, matching the contract downstream packaging relies on.
func RunBuild(ctx context.Context, cfg *config.Config, outputDir string) {
	gen := build.NewGenerator(cfg, outputDir)
	report, err := gen.Build(ctx)
	recordHistory(ctx, cfg, report, err)
	if err != nil {
		slog.Error("Build failed", logfields.Error(err))
		return
	}
	fmt.Printf("Build completed: %d icons across %d sets -> %s\n", report.Emitted, report.Sets, outputDir)
}

// recordHistory appends the build outcome to the history store, best effort.
func recordHistory(ctx context.Context, cfg *config.Config, report *build.BuildReport, buildErr error) {
	if cfg.History.Path == "" || report == nil {
		return
	}
	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		slog.Warn("Failed to open history store", logfields.Error(err))
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close history store", logfields.Error(err))
		}
	}()

	rec := history.Record{
		ID:                report.ID,
		Started:           report.Start,
		Finished:          report.End,
		Sets:              report.Sets,
		Files:             report.Files,
		Emitted:           report.Emitted,
		SkippedDuplicates: report.SkippedDuplicates,
		Outcome:           string(report.Outcome),
	}
	if buildErr != nil {
		rec.Error = buildErr.Error()
	}
	if err := store.Append(ctx, rec); err != nil {
		slog.Warn("Failed to record build history", logfields.Error(err))
	}
}
