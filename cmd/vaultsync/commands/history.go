package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/vaultsync/internal/config"
	verrors "git.home.luguber.info/inful/vaultsync/internal/errors"
	"git.home.luguber.info/inful/vaultsync/internal/ledger"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int    `short:"n" help:"Number of runs to show" default:"10"`
	RunID string `name:"run" help:"Show the documents of this run instead of the run list"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	return RunHistory(context.Background(), cfg, h.Limit, h.RunID, os.Stdout)
}

// RunHistory prints the most recent runs, or the documents of runID when it
// is set.
func RunHistory(ctx context.Context, cfg *config.Config, limit int, runID string, w io.Writer) error {
	if _, err := os.Stat(cfg.Ledger.Path); err != nil {
		return verrors.LedgerError("open", err).WithContext("path", cfg.Ledger.Path)
	}
	store, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		return verrors.LedgerError("open", err).WithContext("path", cfg.Ledger.Path)
	}
	defer func() { _ = store.Close() }()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if runID != "" {
		docs, err := store.Documents(ctx, runID)
		if err != nil {
			return verrors.LedgerError("documents", err)
		}
		_, _ = fmt.Fprintln(tw, "SOURCE\tRESULT\tDESTINATION\tMESSAGE")
		for _, d := range docs {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Source, d.Result, d.Destination, d.Message)
		}
		return tw.Flush()
	}

	runs, err := store.RecentRuns(ctx, limit)
	if err != nil {
		return verrors.LedgerError("runs", err)
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "no runs recorded")
		return err
	}
	_, _ = fmt.Fprintln(tw, "RUN\tSTARTED\tDURATION\tTOTAL\tSYNCED\tSKIPPED\tFAILED")
	for _, r := range runs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), runDuration(r),
			r.Total, r.Synced, r.Skipped, r.Failed)
	}
	return tw.Flush()
}

func runDuration(r ledger.Run) string {
	if r.FinishedAt.IsZero() {
		return "running"
	}
	return r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String()
}
