// Package emit renders icons and barrels as generated JavaScript and
// TypeScript source. All functions are pure and deterministic: the same name
// and tree always produce the same bytes.
package emit

import (
	"fmt"

	"git.home.luguber.info/inful/iconbuilder/internal/svg"
)

// Target selects one of the three output representations.
type Target string

const (
	// TargetModule is ES-module syntax (index.mjs).
	TargetModule Target = "module"
	// TargetCommonModule is CommonJS syntax (index.js).
	TargetCommonModule Target = "common"
	// TargetDeclaration is the type-only stub (index.d.ts).
	TargetDeclaration Target = "declaration"
)

// Targets lists every emission target in output order.
var Targets = []Target{TargetModule, TargetCommonModule, TargetDeclaration}

// Banner is the first line of every generated file.
const Banner = "// THIS FILE IS AUTO GENERATED\n"

// FileName returns the per-icon-set output file name for a target.
func (t Target) FileName() string {
	switch t {
	case TargetModule:
		return "index.mjs"
	case TargetCommonModule:
		return "index.js"
	case TargetDeclaration:
		return "index.d.ts"
	}
	return ""
}

// Header returns the banner plus import/require preamble seeded at the top
// of each per-icon-set output file.
func Header(t Target) string {
	switch t {
	case TargetModule:
		return Banner + "import { GenIcon } from '../lib';\n"
	case TargetCommonModule:
		return Banner + "var GenIcon = require('../lib').GenIcon;\n"
	case TargetDeclaration:
		return Banner + "import { IconType } from '../lib';\n"
	}
	return Banner
}

// Emit renders one icon row for the given target. The tree is embedded as a
// JSON literal whose bytes round-trip losslessly (see svg.Node.JSON).
func Emit(name string, tree *svg.Node, target Target) string {
	switch target {
	case TargetModule:
		return fmt.Sprintf("export function %s (props) {\n  return GenIcon(%s)(props);\n};\n", name, tree.JSON())
	case TargetCommonModule:
		return fmt.Sprintf("module.exports.%s = function %s (props) {\n  return GenIcon(%s)(props);\n};\n", name, name, tree.JSON())
	case TargetDeclaration:
		return fmt.Sprintf("export declare const %s: IconType;\n", name)
	}
	return ""
}

// ReExport renders the aggregate-barrel row for one icon set.
func ReExport(setID string, target Target) string {
	switch target {
	case TargetModule:
		return fmt.Sprintf("export * from './%s/index.mjs';\n", setID)
	case TargetDeclaration:
		return fmt.Sprintf("export * from './%s';\n", setID)
	}
	return ""
}
