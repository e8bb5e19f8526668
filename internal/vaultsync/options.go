package vaultsync

import (
	"context"
	"io"
	"time"

	"git.home.luguber.info/inful/vaultsync/internal/ledger"
	"git.home.luguber.info/inful/vaultsync/internal/metrics"
	"git.home.luguber.info/inful/vaultsync/internal/notify"
)

// Ledger records run history. *ledger.Store implements it.
type Ledger interface {
	BeginRun(ctx context.Context, runID string, startedAt time.Time) error
	RecordDocument(ctx context.Context, runID string, rec ledger.DocumentRecord) error
	FinishRun(ctx context.Context, runID string, finishedAt time.Time, totals ledger.Totals) error
	LastFingerprint(ctx context.Context, source string) (string, bool, error)
}

// textfileWriter is implemented by recorders that can export to the
// node_exporter textfile collector.
type textfileWriter interface {
	WriteTextfile(path string) error
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Syncer) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithTextfile writes the recorder's metrics to path after every run. The
// recorder must support textfile export.
func WithTextfile(path string) Option {
	return func(s *Syncer) { s.textfile = path }
}

// WithLedger records every run in l.
func WithLedger(l Ledger) Option {
	return func(s *Syncer) { s.ledger = l }
}

// WithPublisher announces finished runs through p.
func WithPublisher(p notify.Publisher) Option {
	return func(s *Syncer) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithClock overrides the time source used for generated dates.
func WithClock(now func() time.Time) Option {
	return func(s *Syncer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithOutput redirects the per-document messages and the run summary.
func WithOutput(w io.Writer) Option {
	return func(s *Syncer) {
		if w != nil {
			s.out = w
		}
	}
}

// WithRunID fixes the id of the next runs instead of generating one per run.
func WithRunID(id string) Option {
	return func(s *Syncer) { s.runID = id }
}
