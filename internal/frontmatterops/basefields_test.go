package frontmatterops

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/vaultsync/internal/frontmatter"
)

var fixedNow = time.Date(2026, 10, 17, 4, 30, 0, 0, time.UTC)

const fixedDate = "2026-10-17T12:30:00+08:00"

func TestFormatDate_UsesFixedOffset(t *testing.T) {
	require.Equal(t, fixedDate, FormatDate(fixedNow))

	ny := time.FixedZone("EST", -5*60*60)
	require.Equal(t, fixedDate, FormatDate(fixedNow.In(ny)))
}

func TestEnsureDate(t *testing.T) {
	tests := []struct {
		name    string
		value   *frontmatter.Value
		changed bool
		want    string
	}{
		{"missing", nil, true, fixedDate},
		{"null", ptr(frontmatter.Absent()), true, fixedDate},
		{"empty", ptr(frontmatter.String("")), true, fixedDate},
		{"placeholder", ptr(frontmatter.String(DatePlaceholder)), true, fixedDate},
		{"set", ptr(frontmatter.String("2024-01-02")), false, "2024-01-02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := frontmatter.NewMetadata()
			if tt.value != nil {
				md.Set(FieldDate, *tt.value)
			}
			require.Equal(t, tt.changed, EnsureDate(md, fixedNow))
			v, _ := md.Get(FieldDate)
			require.Equal(t, tt.want, v.AsString())
		})
	}
}

func TestEnsureDate_KeepsPosition(t *testing.T) {
	md := frontmatter.NewMetadata()
	md.Set(FieldDate, frontmatter.String(DatePlaceholder))
	md.Set(FieldTitle, frontmatter.String("x"))

	EnsureDate(md, fixedNow)
	require.Equal(t, []string{FieldDate, FieldTitle}, md.Keys())
}

func TestEnsureDraft(t *testing.T) {
	md := frontmatter.NewMetadata()
	require.True(t, EnsureDraft(md))
	v, _ := md.Get(FieldDraft)
	require.Equal(t, frontmatter.Bool(false), v)

	md = frontmatter.NewMetadata()
	md.Set(FieldDraft, frontmatter.Bool(true))
	require.False(t, EnsureDraft(md))

	md = frontmatter.NewMetadata()
	md.Set(FieldDraft, frontmatter.Absent())
	require.False(t, EnsureDraft(md))
}

func TestEnsureTitle(t *testing.T) {
	md := frontmatter.NewMetadata()
	require.True(t, EnsureTitle(md, "note"))
	v, _ := md.Get(FieldTitle)
	require.Equal(t, "note", v.AsString())

	md = frontmatter.NewMetadata()
	md.Set(FieldTitle, frontmatter.String(""))
	require.True(t, EnsureTitle(md, "note"))

	md = frontmatter.NewMetadata()
	md.Set(FieldTitle, frontmatter.String("Already"))
	require.False(t, EnsureTitle(md, "note"))
	v, _ = md.Get(FieldTitle)
	require.Equal(t, "Already", v.AsString())
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	md := frontmatter.NewMetadata()
	md.Set(FieldShare, frontmatter.Bool(true))
	md.Set("tags", frontmatter.List([]string{"a"}))

	out := Normalize(md, "fallback", fixedNow)

	require.Equal(t, []string{FieldShare, "tags"}, md.Keys())
	require.Equal(t, []string{"tags", FieldDate, FieldDraft, FieldTitle}, out.Keys())
}

func TestNormalize_NilMetadata(t *testing.T) {
	out := Normalize(nil, "fallback", fixedNow)
	require.Equal(t, []string{FieldDate, FieldDraft, FieldTitle}, out.Keys())
}

func TestTitleFromFilename(t *testing.T) {
	require.Equal(t, "My Note", TitleFromFilename("My Note.md"))
	require.Equal(t, "v1.2 notes", TitleFromFilename("v1.2 notes.md"))
	require.Equal(t, "README", TitleFromFilename("README"))
	require.Equal(t, ".hidden", TitleFromFilename(".hidden"))
}

func ptr(v frontmatter.Value) *frontmatter.Value { return &v }
