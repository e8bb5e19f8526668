package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/vaultsync/internal/logfields"
	"git.home.luguber.info/inful/vaultsync/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Source      string `short:"s" help:"Vault directory (overrides source.path)" type:"path"`
	Destination string `short:"d" help:"Posts directory (overrides destination.path)" type:"path"`
	Pull        bool   `help:"Refresh the vault from source.git on start and on every interval"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	applyPathOverrides(cfg, w.Source, w.Destination)

	ctx, cancel := signalContext()
	defer cancel()

	// The first pull has to happen before the watcher stats the vault root.
	if err := PullVault(ctx, cfg, w.Pull); err != nil {
		return err
	}

	syncer, closeSinks, err := NewSyncer(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer closeSinks()

	run := func(ctx context.Context, reason string) error {
		if reason == watch.ReasonInterval {
			if err := PullVault(ctx, cfg, w.Pull); err != nil {
				return err
			}
		}
		_, err := syncer.Run(ctx)
		return err
	}

	slog.Info("Watching vault", logfields.Source(cfg.Source.Path), logfields.Destination(cfg.Destination.Path))
	err = watch.New(cfg.Source.Path, cfg.Watch.Debounce, cfg.Watch.Interval, run).Run(ctx)
	if errors.Is(err, context.Canceled) {
		slog.Info("Watch stopped")
		return nil
	}
	return err
}
