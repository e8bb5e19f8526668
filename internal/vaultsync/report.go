package vaultsync

import (
	"fmt"
	"io"
	"strings"
)

var separator = strings.Repeat("-", 60)

// reporter writes the user-facing run transcript.
type reporter struct {
	w io.Writer
}

func (r reporter) header(source, destination string) {
	r.printf("syncing Obsidian notes into Hugo posts\n")
	r.printf("source:      %s\n", source)
	r.printf("destination: %s\n", destination)
	r.printf("%s\n", separator)
}

func (r reporter) outcome(o Outcome) {
	r.printf("%s\n", o.Message)
}

func (r reporter) summary(s Stats) {
	r.printf("%s\n", separator)
	r.printf("summary:\n")
	r.printf("  total:   %d\n", s.Total)
	r.printf("  synced:  %d\n", s.Synced)
	r.printf("  skipped: %d\n", s.Skipped)
	r.printf("  failed:  %d\n", s.Failed)
	r.printf("%s\n", separator)
	if s.Synced > 0 {
		r.printf("sync complete: %d document(s) synced\n", s.Synced)
	} else {
		r.printf("nothing to sync\n")
	}
}

func (r reporter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func syncedMessage(name string) string { return "synced: " + name }

func skippedMessage(rel string) string { return "skipped (not marked for sharing): " + rel }

func failedMessage(rel string, err error) string {
	return fmt.Sprintf("failed to process %s: %v", rel, err)
}
