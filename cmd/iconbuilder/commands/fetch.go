package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/iconbuilder/internal/fetch"
)

// FetchCmd implements the 'fetch' command.
type FetchCmd struct {
	Set string `short:"s" help:"Fetch a single icon set id"`
}

func (f *FetchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := fetch.NewClient(cfg.Vendor.Directory)
	sets := cfg.IconSets
	if f.Set != "" {
		sets = nil
		for _, set := range cfg.IconSets {
			if set.ID == f.Set {
				sets = append(sets, set)
			}
		}
		if len(sets) == 0 {
			return fmt.Errorf("icon set %q not found in configuration", f.Set)
		}
	}
	if err := client.FetchAll(ctx, sets); err != nil {
		return err
	}
	fmt.Println("Fetch completed")
	return nil
}
