package build

import (
	"fmt"
	"os"
	"path/filepath"
)

// Output is an explicit handle on the generated output root. Every write the
// pipeline performs is scoped to it: seeding truncates, rows append. There is
// exactly one writer during a build, so no locking is needed.
type Output struct {
	root string
}

// NewOutput creates a handle rooted at dir.
func NewOutput(dir string) *Output {
	return &Output{root: filepath.Clean(dir)}
}

// Root returns the output root directory.
func (o *Output) Root() string { return o.root }

// Path joins parts under the output root.
func (o *Output) Path(parts ...string) string {
	return filepath.Join(append([]string{o.root}, parts...)...)
}

// EnsureDir idempotently creates a directory under the root. Pre-existing
// directories are not an error; re-runs tolerate whatever is already there.
func (o *Output) EnsureDir(parts ...string) error {
	path := o.Path(parts...)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// Seed writes content to a file, truncating any previous run's output so
// repeated builds never accumulate duplicate rows.
func (o *Output) Seed(content string, parts ...string) error {
	path := o.Path(parts...)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}
	return nil
}

// Append appends content to a previously seeded file.
func (o *Output) Append(content string, parts ...string) error {
	path := o.Path(parts...)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s for append: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("append to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
