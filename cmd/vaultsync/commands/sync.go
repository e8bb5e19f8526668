package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/vaultsync/internal/config"
	verrors "git.home.luguber.info/inful/vaultsync/internal/errors"
	"git.home.luguber.info/inful/vaultsync/internal/git"
	"git.home.luguber.info/inful/vaultsync/internal/ledger"
	"git.home.luguber.info/inful/vaultsync/internal/logfields"
	"git.home.luguber.info/inful/vaultsync/internal/metrics"
	"git.home.luguber.info/inful/vaultsync/internal/notify"
	"git.home.luguber.info/inful/vaultsync/internal/vaultsync"
)

// SyncCmd implements the 'sync' command.
type SyncCmd struct {
	Source      string `short:"s" help:"Vault directory (overrides source.path)" type:"path"`
	Destination string `short:"d" help:"Posts directory (overrides destination.path)" type:"path"`
	Pull        bool   `help:"Clone or fast-forward the vault from source.git before syncing"`
}

func (s *SyncCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	applyPathOverrides(cfg, s.Source, s.Destination)

	ctx, cancel := signalContext()
	defer cancel()

	_, err = RunSync(ctx, cfg, s.Pull, os.Stdout)
	return err
}

// RunSync optionally refreshes the vault checkout, then performs one sync run
// with every sink cfg enables.
func RunSync(ctx context.Context, cfg *config.Config, pull bool, out io.Writer) (vaultsync.Stats, error) {
	if err := PullVault(ctx, cfg, pull); err != nil {
		return vaultsync.Stats{}, err
	}

	syncer, closeSinks, err := NewSyncer(cfg, out)
	if err != nil {
		return vaultsync.Stats{}, err
	}
	defer closeSinks()

	return syncer.Run(ctx)
}

// PullVault clones or fast-forwards the vault when force is set or
// source.git.pull is enabled. It is a no-op otherwise.
func PullVault(ctx context.Context, cfg *config.Config, force bool) error {
	gc := cfg.Source.Git
	if gc == nil {
		if force {
			return verrors.ConfigRequired("source.git")
		}
		return nil
	}
	if !force && !gc.Pull {
		return nil
	}

	head, err := git.NewClient(*gc).Sync(ctx, cfg.Source.Path)
	if err != nil {
		return verrors.GitSyncError(gc.URL, err)
	}
	slog.Info("Vault checkout ready", logfields.Path(cfg.Source.Path), slog.String("commit", head.String()))
	return nil
}

// NewSyncer builds a Syncer wired to the ledger, metrics textfile and NATS
// publisher configured in cfg. The returned func releases them.
//
// A ledger that cannot be opened is fatal; an unreachable NATS server only
// disables notifications.
func NewSyncer(cfg *config.Config, out io.Writer) (*vaultsync.Syncer, func(), error) {
	opts := []vaultsync.Option{vaultsync.WithOutput(out)}
	var closers []func() error

	if cfg.Ledger.Enabled {
		store, err := ledger.Open(cfg.Ledger.Path)
		if err != nil {
			return nil, func() {}, verrors.LedgerError("open", err).
				WithContext("path", cfg.Ledger.Path)
		}
		opts = append(opts, vaultsync.WithLedger(store))
		closers = append(closers, store.Close)
	}

	if cfg.Metrics.Textfile != "" {
		opts = append(opts,
			vaultsync.WithRecorder(metrics.NewPrometheusRecorder(nil)),
			vaultsync.WithTextfile(cfg.Metrics.Textfile))
	}

	if cfg.Notify.NATSURL != "" {
		pub, err := notify.NewNATSPublisher(cfg.Notify.NATSURL, cfg.Notify.Subject)
		if err != nil {
			slog.Warn("Run notifications disabled",
				logfields.URL(cfg.Notify.NATSURL),
				logfields.Error(verrors.NotifyError(cfg.Notify.Subject, err)))
		} else {
			opts = append(opts, vaultsync.WithPublisher(pub))
			closers = append(closers, pub.Close)
		}
	}

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				slog.Warn("Failed to close sink", logfields.Error(err))
			}
		}
	}
	return vaultsync.New(cfg, opts...), closeAll, nil
}

func applyPathOverrides(cfg *config.Config, source, destination string) {
	if source != "" {
		cfg.Source.Path = source
	}
	if destination != "" {
		cfg.Destination.Path = destination
	}
}
