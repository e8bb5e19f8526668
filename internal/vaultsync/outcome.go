package vaultsync

import (
	"time"

	"git.home.luguber.info/inful/vaultsync/internal/metrics"
)

// Result classifies how a document was handled.
type Result string

const (
	ResultSynced  Result = "synced"
	ResultSkipped Result = "skipped"
	ResultFailed  Result = "failed"
)

func (r Result) label() metrics.ResultLabel {
	switch r {
	case ResultSynced:
		return metrics.ResultSynced
	case ResultSkipped:
		return metrics.ResultSkipped
	default:
		return metrics.ResultFailed
	}
}

// Outcome is the result of processing one document.
type Outcome struct {
	Result  Result
	Message string // User-facing line printed for the document
	Source  string // Path relative to the vault root
	Name    string // Output base name
	// Destination is the written file; empty unless synced.
	Destination string
	Fingerprint string
	// Unchanged is set when the ledger saw the same source content synced before.
	Unchanged bool
	Err       error

	body []byte
}

// Stats are the counters of one run. Total always equals Synced + Skipped + Failed.
type Stats struct {
	RunID     string
	Total     int
	Synced    int
	Skipped   int
	Failed    int
	Published []string // Output names written, in processing order
	Duration  time.Duration
}

func (s *Stats) add(o Outcome) {
	s.Total++
	switch o.Result {
	case ResultSynced:
		s.Synced++
		s.Published = append(s.Published, o.Name)
	case ResultSkipped:
		s.Skipped++
	default:
		s.Failed++
	}
}

func (s Stats) outcome() metrics.RunOutcomeLabel {
	switch {
	case s.Failed > 0:
		return metrics.RunOutcomePartial
	case s.Synced > 0:
		return metrics.RunOutcomeSuccess
	default:
		return metrics.RunOutcomeEmpty
	}
}
