package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/iconbuilder/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" help:"Maximum number of builds to list" default:"20"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.History.Path == "" {
		return fmt.Errorf("no history store configured (set history.path)")
	}

	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	records, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No builds recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tOUTCOME\tSETS\tFILES\tEMITTED\tSKIPPED\tDURATION")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			rec.Started.Format("2006-01-02 15:04:05"),
			rec.Outcome,
			rec.Sets,
			rec.Files,
			rec.Emitted,
			rec.SkippedDuplicates,
			rec.Finished.Sub(rec.Started).Round(time.Millisecond),
		)
	}
	return w.Flush()
}
