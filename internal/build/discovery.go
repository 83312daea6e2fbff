package build

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Discover expands an icon set's glob pattern relative to the working
// directory. Plain patterns go through filepath.Glob; patterns containing a
// "**" segment are matched by walking from the fixed prefix. Results are
// sorted so discovery order (and therefore emission order) is stable.
func Discover(pattern string) ([]string, error) {
	if !strings.Contains(pattern, "**") {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		sort.Strings(matches)
		return matches, nil
	}

	pattern = filepath.ToSlash(pattern)
	base, rest := splitPattern(pattern)

	var matches []string
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && p == base {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(base, p)
		if err != nil {
			return err
		}
		if matchSegments(strings.Split(rest, "/"), strings.Split(filepath.ToSlash(rel), "/")) {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", base, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// PatternBase returns the literal directory prefix of a glob pattern — the
// deepest directory that can be watched or walked without expanding any
// wildcard.
func PatternBase(pattern string) string {
	base, _ := splitPattern(filepath.ToSlash(pattern))
	return filepath.FromSlash(base)
}

// splitPattern separates the literal directory prefix from the wildcard tail.
func splitPattern(pattern string) (base, rest string) {
	segments := strings.Split(pattern, "/")
	i := 0
	for ; i < len(segments); i++ {
		if strings.ContainsAny(segments[i], "*?[") {
			break
		}
	}
	base = strings.Join(segments[:i], "/")
	if base == "" {
		base = "."
	}
	return base, strings.Join(segments[i:], "/")
}

// matchSegments matches path segments against pattern segments where "**"
// spans zero or more segments and everything else uses path.Match semantics.
func matchSegments(pat, name []string) bool {
	if len(pat) == 0 {
		return len(name) == 0
	}
	if pat[0] == "**" {
		if matchSegments(pat[1:], name) {
			return true
		}
		if len(name) == 0 {
			return false
		}
		return matchSegments(pat, name[1:])
	}
	if len(name) == 0 {
		return false
	}
	ok, err := path.Match(pat[0], name[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(pat[1:], name[1:])
}
