package commands

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"git.home.luguber.info/inful/iconbuilder/internal/preview"
)

// PreviewCmd implements the 'preview' command.
type PreviewCmd struct {
	Output string `short:"o" help:"Output directory containing generated modules (overrides config)"`
	Serve  bool   `help:"Serve the generated gallery over HTTP"`
	Addr   string `help:"Listen address when serving" default:"127.0.0.1:8970"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	outputDir := cfg.Output.Directory
	if p.Output != "" {
		outputDir = p.Output
	}

	page, err := preview.Generate(cfg, outputDir)
	if err != nil {
		return fmt.Errorf("generate preview: %w", err)
	}
	fmt.Printf("Preview written to %s\n", page)

	if !p.Serve {
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	fmt.Printf("Serving preview on http://%s\n", p.Addr)
	return preview.Serve(ctx, filepath.Dir(page), p.Addr)
}
