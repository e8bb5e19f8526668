package vaultsync

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/vaultsync/internal/ledger"
	"git.home.luguber.info/inful/vaultsync/internal/logfields"
	"git.home.luguber.info/inful/vaultsync/internal/markdown"
	"git.home.luguber.info/inful/vaultsync/internal/metrics"
	"git.home.luguber.info/inful/vaultsync/internal/notify"
)

// afterRun feeds the finished run to the optional sinks. Sink failures are
// logged and never change the run result.
func (s *Syncer) afterRun(ctx context.Context, log *slog.Logger, start time.Time, stats Stats, outcomes []Outcome, canceled bool) {
	// Sinks still run for a cancelled run.
	ctx = context.WithoutCancel(ctx)

	outcome := stats.outcome()
	if canceled {
		outcome = metrics.RunOutcomeCanceled
	}
	s.recorder.ObserveRunDuration(stats.Duration)
	s.recorder.IncRunOutcome(outcome)

	s.reportDanglingLinks(log, stats, outcomes)
	s.recordLedger(ctx, log, start, stats, outcomes)
	s.writeTextfile(log)

	event := notify.RunEvent{
		RunID:     stats.RunID,
		Source:    s.source,
		Dest:      s.destination,
		Total:     stats.Total,
		Synced:    stats.Synced,
		Skipped:   stats.Skipped,
		Failed:    stats.Failed,
		Documents: stats.Published,
		Timestamp: s.now(),
	}
	if err := s.publisher.PublishRun(ctx, event); err != nil {
		log.Warn("Failed to publish run event", logfields.Error(err))
	}
}

func (s *Syncer) recordLedger(ctx context.Context, log *slog.Logger, start time.Time, stats Stats, outcomes []Outcome) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.BeginRun(ctx, stats.RunID, start); err != nil {
		log.Warn("Failed to record run", logfields.Stage("ledger"), logfields.Error(err))
		return
	}
	for _, o := range outcomes {
		rec := ledger.DocumentRecord{
			Source:      o.Source,
			Destination: o.Destination,
			Result:      string(o.Result),
			Fingerprint: o.Fingerprint,
			Message:     o.Message,
		}
		if err := s.ledger.RecordDocument(ctx, stats.RunID, rec); err != nil {
			log.Warn("Failed to record document", logfields.Stage("ledger"), logfields.Path(o.Source), logfields.Error(err))
		}
	}
	totals := ledger.Totals{Total: stats.Total, Synced: stats.Synced, Skipped: stats.Skipped, Failed: stats.Failed}
	if err := s.ledger.FinishRun(ctx, stats.RunID, start.Add(stats.Duration), totals); err != nil {
		log.Warn("Failed to finish run", logfields.Stage("ledger"), logfields.Error(err))
	}
}

func (s *Syncer) writeTextfile(log *slog.Logger) {
	if s.textfile == "" {
		return
	}
	w, ok := s.recorder.(textfileWriter)
	if !ok {
		log.Warn("Metrics recorder cannot write a textfile", logfields.Path(s.textfile))
		return
	}
	if err := w.WriteTextfile(s.textfile); err != nil {
		log.Warn("Failed to write metrics textfile", logfields.Path(s.textfile), logfields.Error(err))
	}
}

// reportDanglingLinks warns about links from published notes to notes that
// were not published in this run; those links will not resolve on the site.
func (s *Syncer) reportDanglingLinks(log *slog.Logger, stats Stats, outcomes []Outcome) {
	published := make(map[string]bool, len(stats.Published))
	for _, name := range stats.Published {
		published[name] = true
	}
	for _, o := range outcomes {
		if o.Result != ResultSynced {
			continue
		}
		if dangling := markdown.DanglingLinks(o.body, published); len(dangling) > 0 {
			log.Warn("Published note links to unpublished notes",
				logfields.Path(o.Source),
				slog.Any("targets", dangling))
		}
	}
}
