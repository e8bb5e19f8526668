package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks_InlineLink(t *testing.T) {
	links := ExtractLinks([]byte("See [API](api.md) for details."))
	require.Len(t, links, 1)
	require.Equal(t, LinkKindInline, links[0].Kind)
	require.Equal(t, "api.md", links[0].Destination)
}

func TestExtractLinks_ImageLink(t *testing.T) {
	links := ExtractLinks([]byte("![Diagram](diagram.png)"))
	require.Len(t, links, 1)
	require.Equal(t, LinkKindImage, links[0].Kind)
	require.Equal(t, "diagram.png", links[0].Destination)
}

func TestExtractLinks_AutoLink(t *testing.T) {
	links := ExtractLinks([]byte("<https://example.com/path>"))
	require.Len(t, links, 1)
	require.Equal(t, LinkKindAuto, links[0].Kind)
	require.Equal(t, "https://example.com/path", links[0].Destination)
}

func TestExtractLinks_ReferenceLinkUsageAndDefinition(t *testing.T) {
	links := ExtractLinks([]byte("See [API][ref].\n\n[ref]: api.md\n"))

	// One resolved link and one reference definition.
	require.Len(t, links, 2)
	require.Equal(t, LinkKindInline, links[0].Kind)
	require.Equal(t, "api.md", links[0].Destination)
	require.Equal(t, LinkKindReferenceDefinition, links[1].Kind)
	require.Equal(t, "api.md", links[1].Destination)
}

func TestExtractLinks_WikiLinks(t *testing.T) {
	src := []byte("Read [[Other Note]] and [[folder/Deep|alias]] plus ![[image.png]] and [[#Heading]].\n")

	links := ExtractLinks(src)
	require.Len(t, links, 4)
	for _, l := range links {
		assert.Equal(t, LinkKindWiki, l.Kind)
	}
	assert.Equal(t, "Other Note", links[0].Destination)
	assert.Equal(t, "folder/Deep", links[1].Destination)
	assert.Equal(t, "image.png", links[2].Destination)
	assert.Equal(t, "#Heading", links[3].Destination)
}

func TestExtractLinks_SkipsInlineCodeAndCodeBlocks(t *testing.T) {
	src := []byte("" +
		"Inline code: `[[ignored-inline]]`\n" +
		"\n" +
		"```\n" +
		"[Link](./ignored-fence.md) [[ignored-fence]]\n" +
		"```\n" +
		"\n" +
		"Real: [OK](./real.md)\n")

	links := ExtractLinks(src)
	require.Len(t, links, 1)
	require.Equal(t, "./real.md", links[0].Destination)
}

func TestDanglingLinks(t *testing.T) {
	src := []byte("" +
		"[shared](shared.md) [private](../notes/private.md#top)\n" +
		"[[Private]] [[shared]] [[private]] [[Other#Section]]\n" +
		"[web](https://example.com/x.md) [anchor](#local) ![img](pic.png) [[diagram.png]]\n" +
		"[again](private.md)\n")

	published := map[string]bool{"shared.md": true}

	got := DanglingLinks(src, published)
	assert.Equal(t, []string{"private.md", "Private.md", "Other.md"}, got)
}

func TestDanglingLinksNoneWhenAllPublished(t *testing.T) {
	got := DanglingLinks([]byte("[[a]] [b](b.md)"), map[string]bool{"a.md": true, "b.md": true})
	assert.Empty(t, got)
}

func TestDanglingLinksWikiTargetsWithDots(t *testing.T) {
	src := []byte("[[v1.2 release notes]] [[2026.10.17]] [[done.md]] ![[scan.PDF]] [[board.canvas]]\n")

	got := DanglingLinks(src, map[string]bool{"2026.10.17.md": true})
	assert.Equal(t, []string{"v1.2 release notes.md", "done.md"}, got)
}
