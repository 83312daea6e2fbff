package main

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/iconbuilder/cmd/iconbuilder/commands"
	"github.com/alecthomas/kong"
)

var version = "dev"

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("iconbuilder"),
		kong.Description("Convert third-party SVG icon sets into importable JavaScript modules."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := ctx.Run(&commands.Global{Logger: slog.Default()}, &cli); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
