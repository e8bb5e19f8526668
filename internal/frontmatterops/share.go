package frontmatterops

import (
	"strings"

	"git.home.luguber.info/inful/vaultsync/internal/frontmatter"
)

// ShouldShare reports whether a note is marked for publication.
//
// Absent metadata and a missing share key mean no. String values are true
// only for "true", "yes" or "1" (any case); other kinds use their natural
// truthiness.
func ShouldShare(md *frontmatter.Metadata) bool {
	if md == nil {
		return false
	}

	v, ok := md.Get(FieldShare)
	if !ok {
		return false
	}

	if v.Kind() == frontmatter.KindString {
		switch strings.ToLower(v.AsString()) {
		case "true", "yes", "1":
			return true
		default:
			return false
		}
	}
	return v.Truthy()
}
