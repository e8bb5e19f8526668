package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyName       = "name"
	KeyConvention = "convention"
	KeyResult     = "result"
	KeySource     = "source"
	KeyDest       = "destination"
	KeyURL        = "url"
	KeyBranch     = "branch"
	KeySubject    = "subject"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Name(n string) slog.Attr          { return slog.String(KeyName, n) }
func Convention(c string) slog.Attr    { return slog.String(KeyConvention, c) }
func Result(r string) slog.Attr        { return slog.String(KeyResult, r) }
func Source(dir string) slog.Attr      { return slog.String(KeySource, dir) }
func Destination(dir string) slog.Attr { return slog.String(KeyDest, dir) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Branch(b string) slog.Attr        { return slog.String(KeyBranch, b) }
func Subject(s string) slog.Attr       { return slog.String(KeySubject, s) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
