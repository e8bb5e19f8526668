package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "r-1", RunID("r-1")},
		{"Stage", KeyStage, "discover", Stage("discover")},
		{"Path", KeyPath, "notes/a.md", Path("notes/a.md")},
		{"Name", KeyName, "a.md", Name("a.md")},
		{"Convention", KeyConvention, "yaml", Convention("yaml")},
		{"Result", KeyResult, "synced", Result("synced")},
		{"Source", KeySource, "vault", Source("vault")},
		{"Destination", KeyDest, "content/posts", Destination("content/posts")},
		{"URL", KeyURL, "https://example", URL("https://example")},
		{"Branch", KeyBranch, "main", Branch("main")},
		{"Subject", KeySubject, "vaultsync.runs", Subject("vaultsync.runs")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for numeric & float helpers.
func TestNumericHelpers(t *testing.T) {
	if v := DurationMS(12.5); v.Key != KeyDurationMS || v.Value.Float64() != 12.5 {
		t.Fatalf("DurationMS mismatch: %v", v)
	}
	if v := Count(3); v.Key != KeyCount || v.Value.Int64() != 3 {
		t.Fatalf("Count mismatch: %v", v)
	}
}

func TestErrorHelper(t *testing.T) {
	if v := Error(nil); v.Key != KeyError || v.Value.String() != "" {
		t.Fatalf("nil error should render empty, got %v", v)
	}
	if v := Error(errors.New("boom")); v.Value.String() != "boom" {
		t.Fatalf("expected boom, got %v", v.Value)
	}
}
