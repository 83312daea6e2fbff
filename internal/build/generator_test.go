package build

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.home.luguber.info/inful/iconbuilder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arrowSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="24" class="x"><path d="M1 2" fill-opacity="0.5"/></svg>`

func writeSVG(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func faConfig(t *testing.T) (*config.Config, string, string) {
	t.Helper()
	root := t.TempDir()
	srcDir := filepath.Join(root, "src")
	outDir := filepath.Join(root, "out")
	cfg := &config.Config{
		IconSets: []config.IconSet{{
			ID:         "fa",
			Name:       "Font Awesome",
			Files:      filepath.Join(srcDir, "**", "*.svg"),
			Prefix:     "Fa",
			ProjectURL: "https://fontawesome.com/",
			License:    "CC BY 4.0 License",
			LicenseURL: "https://creativecommons.org/licenses/by/4.0/",
		}},
		Output: config.OutputConfig{Directory: outDir},
	}
	return cfg, srcDir, outDir
}

func readOut(t *testing.T, outDir string, parts ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(append([]string{outDir}, parts...)...))
	require.NoError(t, err)
	return string(data)
}

func TestBuildEndToEnd(t *testing.T) {
	cfg, srcDir, outDir := faConfig(t)
	writeSVG(t, filepath.Join(srcDir, "solid", "arrow-left.svg"), arrowSVG)
	// Duplicate base name in another directory: dropped silently.
	writeSVG(t, filepath.Join(srcDir, "regular", "arrow-left.svg"), arrowSVG)

	gen := NewGenerator(cfg, outDir)
	report, err := gen.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeSuccess, report.Outcome)
	assert.Equal(t, 2, report.Files)
	assert.Equal(t, 1, report.Emitted)
	assert.Equal(t, 1, report.SkippedDuplicates)

	mjs := readOut(t, outDir, "fa", "index.mjs")
	wantTree := `{"tag":"svg","attr":{},"child":[{"tag":"path","attr":{"d":"M1 2","fillOpacity":"0.5"}}]}`
	assert.Equal(t, 1, strings.Count(mjs, "FaArrowLeft"), "exactly one emitted row")
	assert.Contains(t, mjs, "GenIcon("+wantTree+")")
	assert.True(t, strings.HasPrefix(mjs, "// THIS FILE IS AUTO GENERATED\nimport { GenIcon } from '../lib';\n"))

	cjs := readOut(t, outDir, "fa", "index.js")
	assert.Contains(t, cjs, "module.exports.FaArrowLeft = function FaArrowLeft (props)")

	dts := readOut(t, outDir, "fa", "index.d.ts")
	assert.Contains(t, dts, "export declare const FaArrowLeft: IconType;")
	assert.NotContains(t, dts, "GenIcon")
}

func TestBuildWritesAggregates(t *testing.T) {
	cfg, srcDir, outDir := faConfig(t)
	cfg.IconSets = append(cfg.IconSets, config.IconSet{
		ID:         "fi",
		Name:       "Feather",
		Files:      filepath.Join(srcDir, "feather", "*.svg"),
		Prefix:     "Fi",
		ProjectURL: "https://feathericons.com/",
		License:    "MIT",
		LicenseURL: "https://example.com/LICENSE",
	})
	writeSVG(t, filepath.Join(srcDir, "solid", "alert.svg"), arrowSVG)
	writeSVG(t, filepath.Join(srcDir, "feather", "alert.svg"), arrowSVG)

	_, err := NewGenerator(cfg, outDir).Build(context.Background())
	require.NoError(t, err)

	// Barrels accumulate re-exports in icon-set processing order.
	allMJS := readOut(t, outDir, "all.mjs")
	fa := strings.Index(allMJS, "export * from './fa/index.mjs';")
	fi := strings.Index(allMJS, "export * from './fi/index.mjs';")
	require.GreaterOrEqual(t, fa, 0)
	require.Greater(t, fi, fa)

	assert.Contains(t, readOut(t, outDir, "index.d.ts"), "export * from './fa';")
	assert.Contains(t, readOut(t, outDir, "all.d.ts"), "export * from './fi';")

	// Manifest contains one entry per set, metadata only.
	man := readOut(t, outDir, "manifest.mjs")
	assert.Contains(t, man, `"id": "fa"`)
	assert.Contains(t, man, `"id": "fi"`)
	assert.NotContains(t, man, "files")
	assert.Contains(t, readOut(t, outDir, "manifest.js"), "module.exports.IconsManifest")
	assert.Contains(t, readOut(t, outDir, "manifest.d.ts"), "IconsManifestType")

	// License concatenates per-set paragraphs after the header.
	license := readOut(t, outDir, "LICENSE")
	assert.Contains(t, license, "Font Awesome - https://fontawesome.com/")
	assert.Contains(t, license, "License: MIT https://example.com/LICENSE")

	// Ignore file lists all autogenerated paths.
	ignore := readOut(t, outDir, ".gitignore")
	for _, line := range []string{"fa/", "fi/", "all.mjs", "manifest.d.ts", "LICENSE", "build-report.json"} {
		assert.Contains(t, ignore, line+"\n")
	}
}

func TestBuildIsIdempotentAcrossReruns(t *testing.T) {
	cfg, srcDir, outDir := faConfig(t)
	writeSVG(t, filepath.Join(srcDir, "solid", "arrow-left.svg"), arrowSVG)

	gen := NewGenerator(cfg, outDir)
	_, err := gen.Build(context.Background())
	require.NoError(t, err)
	first := readOut(t, outDir, "fa", "index.mjs")

	// Re-running against the unchanged output directory must not fail and
	// must not duplicate rows.
	_, err = gen.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, readOut(t, outDir, "fa", "index.mjs"))
	assert.Equal(t, 1, strings.Count(readOut(t, outDir, "all.mjs"), "export * from './fa/index.mjs';"))
}

func TestBuildMalformedSVGAbortsRemainder(t *testing.T) {
	cfg, srcDir, outDir := faConfig(t)
	cfg.IconSets[0].Files = filepath.Join(srcDir, "*.svg")
	cfg.IconSets = append(cfg.IconSets, config.IconSet{
		ID: "never", Name: "Never", Files: filepath.Join(srcDir, "other", "*.svg"),
	})
	writeSVG(t, filepath.Join(srcDir, "broken.svg"), "<div>not an svg</div>")
	writeSVG(t, filepath.Join(srcDir, "other", "ok.svg"), arrowSVG)

	report, err := NewGenerator(cfg, outDir).Build(context.Background())
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, report.Outcome)
	assert.Zero(t, report.Emitted, "later icon sets are not processed after a fatal error")

	// The never set's files were seeded but received no rows.
	never := readOut(t, outDir, "never", "index.mjs")
	assert.NotContains(t, never, "export function")
}

func TestBuildEmptyRootAttrSerialization(t *testing.T) {
	cfg, srcDir, outDir := faConfig(t)
	writeSVG(t, filepath.Join(srcDir, "a", "dot.svg"), `<svg width="1" height="1"><circle cx="0"/></svg>`)

	_, err := NewGenerator(cfg, outDir).Build(context.Background())
	require.NoError(t, err)

	mjs := readOut(t, outDir, "fa", "index.mjs")
	assert.Contains(t, mjs, `GenIcon({"tag":"svg","attr":{},"child":[{"tag":"circle","attr":{"cx":"0"}}]})`)
}

func TestBuildPersistsReport(t *testing.T) {
	cfg, srcDir, outDir := faConfig(t)
	writeSVG(t, filepath.Join(srcDir, "s", "a.svg"), arrowSVG)

	report, err := NewGenerator(cfg, outDir).Build(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, report.ID)

	data := readOut(t, outDir, "build-report.json")
	assert.Contains(t, data, report.ID)
	assert.Contains(t, data, `"outcome": "success"`)
}
