package metrics

import "time"

// ResultLabel enumerates per-document result categories for counters.
type ResultLabel string

const (
	ResultSynced  ResultLabel = "synced"
	ResultSkipped ResultLabel = "skipped"
	ResultFailed  ResultLabel = "failed"
)

// RunOutcomeLabel enumerates final run outcomes.
type RunOutcomeLabel string

const (
	RunOutcomeSuccess  RunOutcomeLabel = "success" // at least one document synced, none failed
	RunOutcomeEmpty    RunOutcomeLabel = "empty"   // nothing synced, none failed
	RunOutcomePartial  RunOutcomeLabel = "partial" // some documents failed
	RunOutcomeFatal    RunOutcomeLabel = "fatal"   // run aborted before processing
	RunOutcomeCanceled RunOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for sync runs. Implementations may
// forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	IncDocument(result ResultLabel)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome RunOutcomeLabel)
	ObserveStageDuration(stage string, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncDocument(ResultLabel)                    {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncRunOutcome(RunOutcomeLabel)              {}
func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
