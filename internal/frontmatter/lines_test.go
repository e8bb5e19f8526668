package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLines(t *testing.T) {
	raw := []byte(`title = "Hello"
draft = False
weight = 5
 url = 'https://example.com/?a=b'
quote = "'mixed'"
no equals here
[cover]
image = "x"
`)

	md := ParseLines(raw)
	require.Equal(t, []string{"title", "draft", "weight", "url", "quote", "image"}, md.Keys())

	title, _ := md.Get("title")
	require.Equal(t, String("Hello"), title)
	draft, _ := md.Get("draft")
	require.Equal(t, Bool(false), draft)
	weight, _ := md.Get("weight")
	require.Equal(t, String("5"), weight)
	url, _ := md.Get("url")
	require.Equal(t, "https://example.com/?a=b", url.AsString())
	quote, _ := md.Get("quote")
	require.Equal(t, "mixed", quote.AsString())
}

func TestParseLines_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	md := ParseLines([]byte("a = 1\nb = 2\na = 3\n"))
	require.Equal(t, []string{"a", "b"}, md.Keys())
	a, _ := md.Get("a")
	require.Equal(t, "3", a.AsString())
}

func TestParseLines_Empty(t *testing.T) {
	md := ParseLines(nil)
	require.NotNil(t, md)
	require.Equal(t, 0, md.Len())
}
