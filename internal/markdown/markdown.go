// Package markdown analyses note bodies for links between notes.
package markdown

import (
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ExtractLinks parses a Markdown body (front matter already removed) and
// extracts link-like constructs, including Obsidian wikilinks.
//
// This is an analysis API; it does not attempt to re-render Markdown.
func ExtractLinks(body []byte) []Link {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			// Goldmark resolves reference-style links to a Link node with a Destination.
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions are stored in the parse context (not represented as AST nodes).
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}

	// CommonMark has no wikilinks; goldmark leaves them as literal text.
	links = append(links, extractWikiLinks(body)...)

	return links
}

// DanglingLinks returns the note targets linked from body that are not in
// published, a set of output base names ("post.md"). Only relative links to
// notes are considered; external URLs, anchors and assets are ignored. The
// result is deduplicated and in first-seen order.
func DanglingLinks(body []byte, published map[string]bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range ExtractLinks(body) {
		name, ok := noteTarget(l)
		if !ok || published[name] || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// noteTarget returns the base name of the note l points to.
func noteTarget(l Link) (string, bool) {
	dest := strings.TrimSpace(l.Destination)
	switch l.Kind {
	case LinkKindWiki:
		dest, _, _ = strings.Cut(dest, "#")
		dest = strings.TrimSpace(dest)
		if dest == "" {
			return "", false
		}
		if !hasNoteOrAttachmentExt(dest) {
			dest += ".md"
		}
	case LinkKindInline, LinkKindReferenceDefinition:
		if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
			return "", false
		}
		u, err := url.Parse(dest)
		if err != nil || u.Scheme != "" || u.Host != "" {
			return "", false
		}
		dest = u.Path
	default:
		return "", false
	}

	name := path.Base(strings.ReplaceAll(dest, "\\", "/"))
	if path.Ext(name) != ".md" {
		return "", false
	}
	return name, true
}

// attachmentExts are the file types a wikilink may embed instead of a note.
var attachmentExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".svg": true, ".webp": true, ".avif": true,
	".mp3": true, ".wav": true, ".m4a": true, ".ogg": true, ".flac": true, ".3gp": true,
	".mp4": true, ".webm": true, ".ogv": true, ".mov": true, ".mkv": true,
	".pdf": true, ".canvas": true, ".base": true,
}

// hasNoteOrAttachmentExt reports whether a wikilink target already names a
// file. Targets such as "v1.2 release notes" are note names with a dot.
func hasNoteOrAttachmentExt(target string) bool {
	ext := strings.ToLower(path.Ext(target))
	return ext == ".md" || attachmentExts[ext]
}
