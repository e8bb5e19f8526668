// Package vaultsync publishes the notes of an Obsidian vault that are marked
// for sharing as Hugo posts.
//
// A run walks the vault, decides per note whether it is shared, rewrites the
// front matter of shared notes into a `+++` TOML block and writes them flat
// into the destination directory, keyed by base name.
package vaultsync

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/vaultsync/internal/config"
	"git.home.luguber.info/inful/vaultsync/internal/docs"
	verrors "git.home.luguber.info/inful/vaultsync/internal/errors"
	"git.home.luguber.info/inful/vaultsync/internal/frontmatter"
	"git.home.luguber.info/inful/vaultsync/internal/frontmatterops"
	"git.home.luguber.info/inful/vaultsync/internal/logfields"
	"git.home.luguber.info/inful/vaultsync/internal/metrics"
	"git.home.luguber.info/inful/vaultsync/internal/notify"
)

// Syncer runs vault syncs. It is not safe for concurrent Runs.
type Syncer struct {
	source      string
	destination string

	recorder  metrics.Recorder
	textfile  string
	ledger    Ledger
	publisher notify.Publisher
	now       func() time.Time
	out       io.Writer
	runID     string
}

// New creates a Syncer for the source and destination in cfg.
func New(cfg *config.Config, opts ...Option) *Syncer {
	s := &Syncer{
		source:      cfg.Source.Path,
		destination: cfg.Destination.Path,
		recorder:    metrics.NoopRecorder{},
		publisher:   notify.NoopPublisher{},
		now:         time.Now,
		out:         os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run performs one sync. Per-document failures are counted, never returned;
// the error is non-nil only when the run could not start (missing vault,
// unusable destination) or ctx was cancelled mid-run.
func (s *Syncer) Run(ctx context.Context) (Stats, error) {
	start := s.now()
	runID := s.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	stats := Stats{RunID: runID}
	log := slog.With(logfields.RunID(runID))
	rep := reporter{w: s.out}

	rep.header(s.source, s.destination)

	stage := time.Now()
	files, err := docs.Discover(s.source)
	s.recorder.ObserveStageDuration("discover", time.Since(stage))
	if err != nil {
		s.recorder.IncRunOutcome(metrics.RunOutcomeFatal)
		return stats, err
	}
	if err := os.MkdirAll(s.destination, 0o755); err != nil {
		s.recorder.IncRunOutcome(metrics.RunOutcomeFatal)
		return stats, verrors.DestinationError("mkdir", err).WithContext("path", s.destination)
	}
	log.Info("Starting sync run", logfields.Source(s.source), logfields.Destination(s.destination), logfields.Count(len(files)))

	stage = time.Now()
	outcomes := make([]Outcome, 0, len(files))
	var runErr error
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		o := s.ProcessFile(ctx, f)
		outcomes = append(outcomes, o)
		stats.add(o)
		s.recorder.IncDocument(o.Result.label())
		rep.outcome(o)
	}
	s.recorder.ObserveStageDuration("process", time.Since(stage))

	rep.summary(stats)
	stats.Duration = s.now().Sub(start)

	s.afterRun(ctx, log, start, stats, outcomes, runErr != nil)

	log.Info("Sync run complete",
		slog.Int("total", stats.Total),
		slog.Int("synced", stats.Synced),
		slog.Int("skipped", stats.Skipped),
		slog.Int("failed", stats.Failed),
		logfields.DurationMS(float64(stats.Duration.Milliseconds())))
	return stats, runErr
}

// ProcessFile handles one note: read, extract, decide, convert, write.
func (s *Syncer) ProcessFile(ctx context.Context, f docs.DocFile) Outcome {
	o := Outcome{Source: f.RelativePath, Name: f.Name}
	log := slog.With(logfields.Path(f.RelativePath))

	if err := f.LoadContent(); err != nil {
		return s.fail(o, err)
	}

	doc, err := frontmatter.Extract(f.Content)
	if err != nil {
		// Treated as a note without front matter, hence not shared.
		log.Warn("Ignoring unparsable front matter", logfields.Convention(conventionOf(err)), logfields.Error(err))
	}

	if !frontmatterops.ShouldShare(doc.Metadata) {
		o.Result = ResultSkipped
		o.Message = skippedMessage(f.RelativePath)
		log.Debug("Note not marked for sharing")
		return o
	}

	converted := frontmatterops.Convert(doc, frontmatterops.TitleFromFilename(f.Name), s.now())

	if err := os.MkdirAll(s.destination, 0o755); err != nil {
		return s.fail(o, err)
	}
	target := filepath.Join(s.destination, f.Name)
	if err := os.WriteFile(target, converted, 0o644); err != nil {
		return s.fail(o, err)
	}

	o.Result = ResultSynced
	o.Message = syncedMessage(f.Name)
	o.Destination = target
	o.Fingerprint = frontmatterops.ComputeFingerprint(doc)
	o.body = doc.Body
	if s.ledger != nil {
		prev, ok, err := s.ledger.LastFingerprint(ctx, f.RelativePath)
		if err != nil {
			log.Debug("Ledger lookup failed", logfields.Error(err))
		}
		o.Unchanged = ok && prev == o.Fingerprint
	}
	log.Debug("Note synced", logfields.Name(f.Name), slog.Bool("unchanged", o.Unchanged))
	return o
}

func (s *Syncer) fail(o Outcome, cause error) Outcome {
	o.Result = ResultFailed
	o.Message = failedMessage(o.Source, cause)
	o.Err = verrors.DocumentProcessingFailure(o.Source, cause)
	slog.Warn("Failed to process note", logfields.Path(o.Source), logfields.Error(cause))
	return o
}

func conventionOf(err error) string {
	if vErr, ok := verrors.As(err); ok {
		if c, ok := vErr.Context["convention"].(string); ok {
			return c
		}
	}
	return ""
}

// RenderFile converts the note at path the way a run would, without writing
// anything. shared reports whether a run would publish it.
func RenderFile(path string, now time.Time) (out []byte, shared bool, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false, verrors.DocumentProcessingFailure(path, err)
	}
	doc, err := frontmatter.Extract(content)
	if err != nil {
		slog.Warn("Ignoring unparsable front matter", logfields.Path(path), logfields.Error(err))
	}
	out = frontmatterops.Convert(doc, frontmatterops.TitleFromFilename(filepath.Base(path)), now)
	return out, frontmatterops.ShouldShare(doc.Metadata), nil
}
