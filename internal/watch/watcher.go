// Package watch rebuilds generated output whenever source SVG files change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/iconbuilder/internal/build"
	"git.home.luguber.info/inful/iconbuilder/internal/config"
	"git.home.luguber.info/inful/iconbuilder/internal/logfields"
	"github.com/fsnotify/fsnotify"
)

// Watcher monitors icon source directories and triggers debounced rebuilds.
type Watcher struct {
	cfg      *config.Config
	gen      *build.Generator
	debounce time.Duration
}

// NewWatcher creates a watcher driving gen.
func NewWatcher(cfg *config.Config, gen *build.Generator) *Watcher {
	return &Watcher{cfg: cfg, gen: gen, debounce: 500 * time.Millisecond}
}

// Roots returns the deduplicated, sorted set of directories to watch: the
// literal prefix of every icon set's glob pattern plus its subdirectories.
func Roots(sets []config.IconSet) []string {
	seen := make(map[string]struct{})
	for _, set := range sets {
		base := build.PatternBase(set.Files)
		if _, ok := seen[base]; ok {
			continue
		}
		seen[base] = struct{}{}
	}
	roots := make([]string, 0, len(seen))
	for r := range seen {
		roots = append(roots, r)
	}
	sort.Strings(roots)
	return roots
}

// Run builds once, then watches until ctx is canceled. File events are
// debounced so a burst of writes (e.g. a fetch) triggers one rebuild.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fsw.Close()

	for _, root := range Roots(w.cfg.IconSets) {
		if err := addRecursive(fsw, root); err != nil {
			return err
		}
	}

	if _, err := w.gen.Build(ctx); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	var timer *time.Timer
	rebuild := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			slog.Debug("Source change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if event.Op.Has(fsnotify.Create) {
				// New directories need to be picked up for further events.
				_ = addRecursive(fsw, event.Name)
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})
		case <-rebuild:
			if _, err := w.gen.Build(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", logfields.Error(err))
		}
	}
}

// relevant filters events down to SVG content changes and new directories.
func relevant(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) {
		return false
	}
	if strings.EqualFold(filepath.Ext(event.Name), ".svg") {
		return true
	}
	// Creations without an extension are likely directories.
	return event.Op.Has(fsnotify.Create) && filepath.Ext(event.Name) == ""
}

// addRecursive watches dir and every directory below it. Missing directories
// are tolerated; they may appear later via create events.
func addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return filepath.SkipAll
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
