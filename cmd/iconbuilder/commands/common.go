// Package commands defines the iconbuilder CLI.
package commands

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/iconbuilder/internal/config"
	"github.com/alecthomas/kong"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"iconbuilder.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Generate icon modules from configured icon sets"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
	Discover DiscoverCmd `cmd:"" help:"List discovered SVG files and resolved names without writing output"`
	Fetch    FetchCmd    `cmd:"" help:"Vendor upstream icon sources into the vendor directory"`
	Watch    WatchCmd    `cmd:"" help:"Rebuild automatically when source SVG files change"`
	Preview  PreviewCmd  `cmd:"" help:"Generate (and optionally serve) an HTML gallery of all icons"`
	History  HistoryCmd  `cmd:"" help:"List recent builds from the history store"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.Config)
}
