// Package manifest serializes per-icon-set metadata into the shipped
// manifest modules and the concatenated LICENSE file.
package manifest

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/iconbuilder/internal/config"
	"git.home.luguber.info/inful/iconbuilder/internal/emit"
)

// The declaration stub is a fixed template, not generated from the live
// manifest shape. Keeping it in sync with Entry's fields is a manual,
// documented responsibility.
//
//go:embed templates/manifest.d.ts
var declarationTemplate []byte

//go:embed templates/LICENSE_HEADER
var licenseHeader []byte

// Entry is the projection of an icon-set descriptor shipped in the manifest.
// Discovery patterns and formatters never leak into it.
type Entry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ProjectURL string `json:"projectUrl"`
	License    string `json:"license"`
	LicenseURL string `json:"licenseUrl"`
}

// Project maps descriptors to manifest entries in descriptor order.
func Project(sets []config.IconSet) []Entry {
	entries := make([]Entry, 0, len(sets))
	for _, s := range sets {
		entries = append(entries, Entry{
			ID:         s.ID,
			Name:       s.Name,
			ProjectURL: s.ProjectURL,
			License:    s.License,
			LicenseURL: s.LicenseURL,
		})
	}
	return entries
}

// Render emits the manifest source for one target. The declaration target
// returns the fixed template verbatim.
func Render(sets []config.IconSet, target emit.Target) (string, error) {
	if target == emit.TargetDeclaration {
		return string(declarationTemplate), nil
	}
	literal, err := json.MarshalIndent(Project(sets), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	switch target {
	case emit.TargetModule:
		return fmt.Sprintf("%sexport const IconsManifest = %s;\n", emit.Banner, literal), nil
	case emit.TargetCommonModule:
		return fmt.Sprintf("%smodule.exports.IconsManifest = %s;\n", emit.Banner, literal), nil
	}
	return "", fmt.Errorf("unknown manifest target %q", target)
}

// FileName returns the root-level manifest file name for a target.
func FileName(target emit.Target) string {
	switch target {
	case emit.TargetModule:
		return "manifest.mjs"
	case emit.TargetCommonModule:
		return "manifest.js"
	case emit.TargetDeclaration:
		return "manifest.d.ts"
	}
	return ""
}

// License concatenates the embedded header with one two-line paragraph per
// icon set, blank-line separated, in descriptor order.
func License(sets []config.IconSet) string {
	var b strings.Builder
	b.Write(licenseHeader)
	for _, s := range sets {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%s - %s\n", s.Name, s.ProjectURL)
		fmt.Fprintf(&b, "License: %s %s\n", s.License, s.LicenseURL)
	}
	return b.String()
}
