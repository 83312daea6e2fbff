// Package fetch vendors upstream icon-set repositories into a local
// directory so their SVG files can be discovered by the build.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/iconbuilder/internal/config"
	"git.home.luguber.info/inful/iconbuilder/internal/logfields"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Client handles Git operations against the vendor directory.
type Client struct {
	vendorDir string
}

// NewClient creates a client vendoring into vendorDir.
func NewClient(vendorDir string) *Client { return &Client{vendorDir: vendorDir} }

// SetPath returns the checkout path for an icon set.
func (c *Client) SetPath(set config.IconSet) string {
	return filepath.Join(c.vendorDir, set.ID)
}

// FetchAll fetches every icon set that declares a source, in descriptor
// order. Sets without a source are skipped with a debug log.
func (c *Client) FetchAll(ctx context.Context, sets []config.IconSet) error {
	if err := os.MkdirAll(c.vendorDir, 0o755); err != nil {
		return fmt.Errorf("create vendor directory: %w", err)
	}
	for _, set := range sets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if set.Source == nil {
			slog.Debug("Icon set has no source, skipping", logfields.IconSet(set.ID))
			continue
		}
		if _, err := c.FetchSet(ctx, set); err != nil {
			return fmt.Errorf("fetch %s: %w", set.ID, err)
		}
	}
	return nil
}

// FetchSet clones the set's source repository, or updates an existing
// checkout, and returns its path.
func (c *Client) FetchSet(ctx context.Context, set config.IconSet) (string, error) {
	if set.Source == nil {
		return "", fmt.Errorf("icon set %s has no source", set.ID)
	}
	path := c.SetPath(set)
	if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
		return path, c.update(ctx, path, set)
	}
	return path, c.clone(ctx, path, set)
}

func (c *Client) clone(ctx context.Context, path string, set config.IconSet) error {
	src := set.Source
	slog.Info("Cloning icon source", logfields.IconSet(set.ID), logfields.URL(src.URL), logfields.Path(path))

	opts := &git.CloneOptions{URL: src.URL, SingleBranch: true}
	if src.Branch != "" {
		opts.ReferenceName = plumbing.ReferenceName("refs/heads/" + src.Branch)
	}
	if src.Depth > 0 {
		opts.Depth = src.Depth
	}
	repo, err := git.PlainCloneContext(ctx, path, false, opts)
	if err != nil {
		return fmt.Errorf("clone %s: %w", src.URL, err)
	}
	if ref, herr := repo.Head(); herr == nil {
		slog.Info("Icon source cloned", logfields.IconSet(set.ID), slog.String("commit", ref.Hash().String()[:8]))
	}
	return nil
}

func (c *Client) update(ctx context.Context, path string, set config.IconSet) error {
	src := set.Source
	slog.Info("Updating icon source", logfields.IconSet(set.ID), logfields.Path(path))

	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree %s: %w", path, err)
	}
	opts := &git.PullOptions{SingleBranch: true}
	if src.Branch != "" {
		opts.ReferenceName = plumbing.ReferenceName("refs/heads/" + src.Branch)
	}
	if src.Depth > 0 {
		opts.Depth = src.Depth
	}
	if err := wt.PullContext(ctx, opts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("pull %s: %w", path, err)
	}
	return nil
}
