package frontmatterops

import (
	"strings"

	"git.home.luguber.info/inful/vaultsync/internal/frontmatter"
	"github.com/inful/mdfp"
)

// ComputeFingerprint computes the content fingerprint of a source note from
// its raw front matter block (one trailing newline trimmed) and its body.
func ComputeFingerprint(doc frontmatter.Document) string {
	return mdfp.CalculateFingerprintFromParts(trimSingleTrailingNewline(string(doc.Raw)), string(doc.Body))
}

func trimSingleTrailingNewline(s string) string {
	if before, ok := strings.CutSuffix(s, "\r\n"); ok {
		return before
	}
	if before, ok := strings.CutSuffix(s, "\n"); ok {
		return before
	}
	return s
}
