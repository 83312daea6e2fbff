// Package naming derives stable exported identifiers from icon file names.
package naming

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Formatter transforms a pascal-cased icon name into its final exported
// form. It is a pure string-to-string transformation with no other
// capability.
type Formatter func(string) string

// Prefixed returns a Formatter that prepends prefix, the usual icon-set
// convention (e.g. "Fa" + "ArrowLeft").
func Prefixed(prefix string) Formatter {
	return func(name string) string { return prefix + name }
}

// Affixed returns a Formatter applying both a prefix and a suffix.
func Affixed(prefix, suffix string) Formatter {
	return func(name string) string { return prefix + name + suffix }
}

// Pascal converts s to pascal case, splitting on '-', '_', '.' and spaces.
// Characters are otherwise passed through unchanged; identifier safety of the
// result is the caller's responsibility.
func Pascal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upper := true
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == '.' || r == ' ':
			upper = true
		case upper:
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve derives the exported identifier for an icon file: the extension is
// stripped, the base name pascal-cased, and the formatter (when non-nil)
// applied to the result.
func Resolve(fileName string, f Formatter) string {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name := Pascal(base)
	if f != nil {
		return f(name)
	}
	return name
}
