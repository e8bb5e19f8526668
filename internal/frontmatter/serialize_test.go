package frontmatter

import (
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
)

func TestSerializeTOML_ValueRendering(t *testing.T) {
	top := NewMetadata()
	top.Set("title", String("It's"))
	top.Set("draft", Bool(false))
	top.Set("weight", Int(3))
	top.Set("ratio", Float(0.5))
	top.Set("tags", List([]string{"a", `b "q"`}))
	top.Set("empty", String(""))
	top.Set("none", String("None"))
	top.Set("null", Absent())

	got := string(SerializeTOML(top, nil))
	want := "+++\n" +
		"title = 'It\\'s'\n" +
		"draft = false\n" +
		"weight = 3\n" +
		"ratio = 0.5\n" +
		"tags = [\"a\", \"b \\\"q\\\"\"]\n" +
		"+++\n"
	require.Equal(t, want, got)
}

func TestSerializeTOML_Tables(t *testing.T) {
	top := NewMetadata()
	top.Set("title", String("Post"))

	cover := NewMetadata()
	cover.Set("image", String("x.png"))
	cover.Set("hidden", Bool(true))

	got := string(SerializeTOML(top, []Table{{Name: "cover", Fields: cover}}))
	want := "+++\ntitle = 'Post'\n\n[cover]\nimage = 'x.png'\nhidden = true\n+++\n"
	require.Equal(t, want, got)
}

func TestSerializeTOML_OutputIsValidTOML(t *testing.T) {
	top := NewMetadata()
	top.Set("title", String("My Post"))
	top.Set("draft", Bool(false))
	top.Set("weight", Int(10))
	top.Set("tags", List([]string{"go", "hugo"}))

	cover := NewMetadata()
	cover.Set("image", String("cover.png"))

	block := string(SerializeTOML(top, []Table{{Name: "cover", Fields: cover}}))
	inner := strings.TrimSuffix(strings.TrimPrefix(block, "+++\n"), "+++\n")

	var decoded map[string]any
	require.NoError(t, toml.Unmarshal([]byte(inner), &decoded))
	require.Equal(t, "My Post", decoded["title"])
	require.Equal(t, false, decoded["draft"])
	require.Equal(t, int64(10), decoded["weight"])
	require.Equal(t, []any{"go", "hugo"}, decoded["tags"])
	require.Equal(t, map[string]any{"image": "cover.png"}, decoded["cover"])
}

func TestRenderValue_Omissions(t *testing.T) {
	for _, v := range []Value{Absent(), String(""), String("None")} {
		_, ok := RenderValue(v)
		require.False(t, ok, v.Text())
	}
}
