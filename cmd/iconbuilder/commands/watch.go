package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/iconbuilder/internal/build"
	"git.home.luguber.info/inful/iconbuilder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output string `short:"o" help:"Output directory for generated modules (overrides config)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	outputDir := cfg.Output.Directory
	if w.Output != "" {
		outputDir = w.Output
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gen := build.NewGenerator(cfg, outputDir)
	watcher := watch.NewWatcher(cfg, gen)
	return watcher.Run(ctx)
}
