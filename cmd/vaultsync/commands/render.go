package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/vaultsync/internal/logfields"
	"git.home.luguber.info/inful/vaultsync/internal/vaultsync"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	File   string `arg:"" help:"Markdown note to convert" type:"existingfile"`
	Output string `short:"o" help:"Write the result to this file instead of stdout" type:"path"`
}

func (r *RenderCmd) Run(_ *Global, _ *CLI) error {
	out, shared, err := vaultsync.RenderFile(r.File, time.Now())
	if err != nil {
		return err
	}
	if !shared {
		slog.Warn("Note is not marked for sharing; a sync would skip it", logfields.Path(r.File))
	}

	if r.Output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(r.Output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.Output, err)
	}
	return nil
}
