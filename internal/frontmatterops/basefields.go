// Package frontmatterops holds the operations applied to extracted front
// matter before it is written to the site: the share decision, base field
// normalization, nested key partitioning and conversion to TOML.
package frontmatterops

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/vaultsync/internal/frontmatter"
)

// Field names with special handling.
const (
	FieldDate  = "date"
	FieldDraft = "draft"
	FieldTitle = "title"
	FieldShare = "share"
)

// DatePlaceholder is the template text left in unfilled note templates.
const DatePlaceholder = "YYYY-MM-DDTHH:mm:ssZ"

// DateLayout is the layout of generated dates. Dates are always rendered in
// the fixed UTC+08:00 zone.
const DateLayout = "2006-01-02T15:04:05-07:00"

var dateZone = time.FixedZone("UTC+8", 8*60*60)

// FormatDate renders t in the generated date format.
func FormatDate(t time.Time) string {
	return t.In(dateZone).Format(DateLayout)
}

// EnsureDate sets date to now when missing, absent, empty or still the
// template placeholder.
func EnsureDate(fields *frontmatter.Metadata, now time.Time) (changed bool) {
	if v, ok := fields.Get(FieldDate); ok {
		switch v.Kind() {
		case frontmatter.KindAbsent:
		case frontmatter.KindString:
			if s := v.AsString(); s != "" && s != DatePlaceholder {
				return false
			}
		default:
			return false
		}
	}

	fields.Set(FieldDate, frontmatter.String(FormatDate(now)))
	return true
}

// EnsureDraft sets draft: false when the key is missing. An explicit null is
// left alone.
func EnsureDraft(fields *frontmatter.Metadata) (changed bool) {
	if fields.Has(FieldDraft) {
		return false
	}
	fields.Set(FieldDraft, frontmatter.Bool(false))
	return true
}

// EnsureTitle sets title to fallback when missing or not truthy.
func EnsureTitle(fields *frontmatter.Metadata, fallback string) (changed bool) {
	if v, ok := fields.Get(FieldTitle); ok && v.Truthy() {
		return false
	}
	fields.Set(FieldTitle, frontmatter.String(fallback))
	return true
}

// Normalize returns a copy of md with date, draft and title guaranteed and
// share removed. md itself is never modified; nil is treated as empty.
func Normalize(md *frontmatter.Metadata, fallbackTitle string, now time.Time) *frontmatter.Metadata {
	out := md.Clone()
	EnsureDate(out, now)
	EnsureDraft(out)
	EnsureTitle(out, fallbackTitle)
	out.Delete(FieldShare)
	return out
}

// TitleFromFilename derives the fallback title: the base name without its
// final extension.
func TitleFromFilename(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}
