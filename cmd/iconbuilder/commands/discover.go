package commands

import (
	"fmt"

	"git.home.luguber.info/inful/iconbuilder/internal/build"
	"git.home.luguber.info/inful/iconbuilder/internal/naming"
)

// DiscoverCmd implements the 'discover' command: dry-run file discovery and
// name resolution without touching the output directory.
type DiscoverCmd struct {
	Set string `short:"s" help:"Limit discovery to a single icon set id"`
}

func (d *DiscoverCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	total := 0
	for _, set := range cfg.IconSets {
		if d.Set != "" && set.ID != d.Set {
			continue
		}
		files, err := build.Discover(set.Files)
		if err != nil {
			return fmt.Errorf("discover %s: %w", set.ID, err)
		}

		fmt.Printf("%s (%s): %d files\n", set.ID, set.Name, len(files))
		formatter := set.FormatterFunc()
		seen := make(map[string]struct{}, len(files))
		for _, file := range files {
			name := naming.Resolve(file, formatter)
			marker := ""
			if _, dup := seen[name]; dup {
				marker = "  (duplicate, would be skipped)"
			}
			seen[name] = struct{}{}
			fmt.Printf("  %-30s %s%s\n", name, file, marker)
		}
		total += len(files)
	}
	if d.Set != "" && total == 0 {
		return fmt.Errorf("icon set %q not found or empty", d.Set)
	}
	fmt.Printf("Total: %d files\n", total)
	return nil
}
