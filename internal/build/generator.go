// Package build sequences the icon build: output initialization, license and
// manifest writing, then per-set discovery, parsing and emission. The whole
// pipeline is a single-pass, sequential, write-once transformation.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/iconbuilder/internal/config"
	"git.home.luguber.info/inful/iconbuilder/internal/emit"
	"git.home.luguber.info/inful/iconbuilder/internal/logfields"
	"git.home.luguber.info/inful/iconbuilder/internal/manifest"
	"git.home.luguber.info/inful/iconbuilder/internal/naming"
	"git.home.luguber.info/inful/iconbuilder/internal/svg"
)

// ResolvedIcon pairs an exported name with its normalized tree. Created once
// per discovered file; never mutated afterwards.
type ResolvedIcon struct {
	Name string
	Tree *svg.Node
}

// Generator runs the build pipeline against one output directory handle.
type Generator struct {
	cfg *config.Config
	out *Output
}

// NewGenerator creates a generator writing to outputDir.
func NewGenerator(cfg *config.Config, outputDir string) *Generator {
	return &Generator{cfg: cfg, out: NewOutput(outputDir)}
}

// Output exposes the output handle (used by the preview generator).
func (g *Generator) Output() *Output { return g.out }

// Build runs all stages and returns the report. The returned error is the
// first fatal stage error, if any; the report is always populated and
// persisted best-effort.
func (g *Generator) Build(ctx context.Context) (*BuildReport, error) {
	report := newBuildReport()
	report.Sets = len(g.cfg.IconSets)
	slog.Info("Starting icon build",
		logfields.BuildID(report.ID),
		logfields.Path(g.out.Root()),
		logfields.Count(len(g.cfg.IconSets)))

	bs := &BuildState{Sets: g.cfg.IconSets, Out: g.out, Report: report}
	stages := []namedStage{
		{StagePrepareOutput, g.stagePrepareOutput},
		{StageWriteLicense, g.stageWriteLicense},
		{StageWriteManifest, g.stageWriteManifest},
		{StageEmitIcons, g.stageEmitIcons},
	}

	runErr := runStages(ctx, bs, stages)
	report.finish()

	if err := report.Persist(g.out.Root()); err != nil {
		slog.Warn("Failed to persist build report", logfields.Error(err))
	}

	slog.Info("Icon build finished",
		logfields.BuildID(report.ID),
		slog.String("outcome", string(report.Outcome)),
		slog.Int("files", report.Files),
		slog.Int("emitted", report.Emitted),
		slog.Int("skipped_duplicates", report.SkippedDuplicates),
		logfields.DurationMS(float64(report.Duration().Milliseconds())))
	return report, runErr
}

// stagePrepareOutput creates the output tree and seeds every generated file
// with its header so re-runs start from a clean slate without deleting
// anything pre-existing.
func (g *Generator) stagePrepareOutput(_ context.Context, bs *BuildState) error {
	if err := bs.Out.EnsureDir(); err != nil {
		return err
	}
	for _, set := range bs.Sets {
		if err := bs.Out.EnsureDir(set.ID); err != nil {
			return err
		}
		for _, target := range emit.Targets {
			if err := bs.Out.Seed(emit.Header(target), set.ID, target.FileName()); err != nil {
				return err
			}
		}
	}
	for _, name := range []string{"index.mjs", "index.d.ts", "all.mjs", "all.d.ts"} {
		if err := bs.Out.Seed(emit.Banner, name); err != nil {
			return err
		}
	}
	return bs.Out.Seed(ignoreFile(bs.Sets), ".gitignore")
}

func (g *Generator) stageWriteLicense(_ context.Context, bs *BuildState) error {
	return bs.Out.Seed(manifest.License(bs.Sets), "LICENSE")
}

func (g *Generator) stageWriteManifest(_ context.Context, bs *BuildState) error {
	for _, target := range emit.Targets {
		content, err := manifest.Render(bs.Sets, target)
		if err != nil {
			return err
		}
		if err := bs.Out.Seed(content, manifest.FileName(target)); err != nil {
			return err
		}
	}
	return nil
}

// stageEmitIcons processes icon sets in descriptor order. Any failure aborts
// the remaining sets; already-written output is left in place.
func (g *Generator) stageEmitIcons(ctx context.Context, bs *BuildState) error {
	for _, set := range bs.Sets {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageEmitIcons, ctx.Err())
		default:
		}
		if err := g.emitSet(set, bs); err != nil {
			return newFatalStageError(StageEmitIcons, err)
		}
	}
	return nil
}

func (g *Generator) emitSet(set config.IconSet, bs *BuildState) error {
	for _, row := range []struct{ file, content string }{
		{"index.mjs", emit.ReExport(set.ID, emit.TargetModule)},
		{"all.mjs", emit.ReExport(set.ID, emit.TargetModule)},
		{"index.d.ts", emit.ReExport(set.ID, emit.TargetDeclaration)},
		{"all.d.ts", emit.ReExport(set.ID, emit.TargetDeclaration)},
	} {
		if err := bs.Out.Append(row.content, row.file); err != nil {
			return err
		}
	}

	files, err := Discover(set.Files)
	if err != nil {
		return fmt.Errorf("discover %s: %w", set.ID, err)
	}
	slog.Info("Processing icon set", logfields.IconSet(set.ID), logfields.Count(len(files)))

	formatter := set.FormatterFunc()
	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		bs.Report.Files++
		icon, err := loadIcon(file, formatter)
		if err != nil {
			return err
		}
		if _, dup := seen[icon.Name]; dup {
			// First occurrence wins; later duplicates are dropped silently.
			bs.Report.SkippedDuplicates++
			slog.Debug("Skipping duplicate icon name",
				logfields.IconSet(set.ID), logfields.Icon(icon.Name), logfields.File(file))
			continue
		}
		seen[icon.Name] = struct{}{}

		for _, target := range emit.Targets {
			if err := bs.Out.Append(emit.Emit(icon.Name, icon.Tree, target), set.ID, target.FileName()); err != nil {
				return err
			}
		}
		bs.Report.Emitted++
	}
	return nil
}

// loadIcon reads and parses one SVG file and resolves its exported name.
func loadIcon(file string, formatter naming.Formatter) (ResolvedIcon, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return ResolvedIcon{}, fmt.Errorf("read %s: %w", file, err)
	}
	tree, err := svg.Parse(string(data))
	if err != nil {
		return ResolvedIcon{}, fmt.Errorf("parse %s: %w", file, err)
	}
	return ResolvedIcon{Name: naming.Resolve(file, formatter), Tree: tree}, nil
}

// ignoreFile lists every autogenerated path relative to the output root.
func ignoreFile(sets []config.IconSet) string {
	var b strings.Builder
	b.WriteString("# THIS FILE IS AUTO GENERATED\n")
	for _, set := range sets {
		b.WriteString(set.ID + "/\n")
	}
	for _, name := range []string{
		"index.mjs", "index.d.ts", "all.mjs", "all.d.ts",
		"manifest.mjs", "manifest.js", "manifest.d.ts",
		"LICENSE", "build-report.json", ".gitignore",
	} {
		b.WriteString(name + "\n")
	}
	return b.String()
}
