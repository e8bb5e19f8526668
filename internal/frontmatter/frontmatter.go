// Package frontmatter detects, parses and re-serializes the metadata block at
// the top of a Markdown note.
//
// Two delimiter conventions are recognized: `+++` (line-structured key = value
// pairs) and `---` (YAML). Output is always written with `+++` delimiters.
package frontmatter

import (
	"bytes"

	verrors "git.home.luguber.info/inful/vaultsync/internal/errors"
)

// Convention identifies the delimiter convention of a front matter block.
type Convention uint8

const (
	ConventionNone Convention = iota
	ConventionTOML
	ConventionYAML
)

// detectionOrder is the order in which conventions are tried.
var detectionOrder = []Convention{ConventionTOML, ConventionYAML}

func (c Convention) String() string {
	switch c {
	case ConventionTOML:
		return "toml"
	case ConventionYAML:
		return "yaml"
	default:
		return "none"
	}
}

// Delimiter returns the delimiter line for c, or "" for ConventionNone.
func (c Convention) Delimiter() string {
	switch c {
	case ConventionTOML:
		return "+++"
	case ConventionYAML:
		return "---"
	default:
		return ""
	}
}

// Document is the result of extraction.
//
// Metadata is nil when no block was recognized or the block could not be
// parsed; in that case Body holds the full original content.
type Document struct {
	Metadata   *Metadata
	Body       []byte
	Convention Convention
	// Raw is the text enclosed by the delimiters.
	Raw []byte
}

// HasMetadata reports whether a metadata mapping is present (possibly empty).
func (d Document) HasMetadata() bool { return d.Metadata != nil }

// Detect reports which convention opens content and splits the enclosed block
// from the body. The opening delimiter must be the very first line. If no
// convention matches, conv is ConventionNone and body is content.
func Detect(content []byte) (conv Convention, raw []byte, body []byte) {
	for _, c := range detectionOrder {
		if raw, body, ok := splitBlock(content, c.Delimiter()); ok {
			return c, raw, body
		}
	}
	return ConventionNone, nil, content
}

// Extract locates and parses the front matter block of content.
//
// A block that matches a delimiter pair but fails to parse yields an absent
// document together with a metadata-category error; callers treat that as a
// per-document diagnostic, not a fatal condition.
func Extract(content []byte) (Document, error) {
	conv, raw, body := Detect(content)
	if conv == ConventionNone {
		return Document{Body: content}, nil
	}

	var (
		md  *Metadata
		err error
	)
	switch conv {
	case ConventionYAML:
		md, err = ParseYAML(raw)
	case ConventionTOML:
		md = ParseLines(raw)
	}
	if err != nil {
		return Document{Body: content}, verrors.MetadataParseFailure(conv.String(), err)
	}

	return Document{Metadata: md, Body: body, Convention: conv, Raw: raw}, nil
}

// splitBlock splits content when it opens with delim on its own line and a
// later line holds delim alone. Trailing spaces, tabs and CR on delimiter
// lines are tolerated. The closing line may be the last line without a
// newline.
func splitBlock(content []byte, delim string) (raw []byte, body []byte, ok bool) {
	first, next, hasNL := cutLine(content, 0)
	if !hasNL || !isDelimiterLine(first, delim) {
		return nil, nil, false
	}

	start := next
	for pos := start; pos < len(content); {
		line, after, _ := cutLine(content, pos)
		if isDelimiterLine(line, delim) {
			return content[start:pos], content[after:], true
		}
		pos = after
	}
	return nil, nil, false
}

// cutLine returns the line starting at pos (without its newline), the offset
// of the following line, and whether a newline terminated the line.
func cutLine(content []byte, pos int) (line []byte, next int, hasNL bool) {
	idx := bytes.IndexByte(content[pos:], '\n')
	if idx < 0 {
		return content[pos:], len(content), false
	}
	return content[pos : pos+idx], pos + idx + 1, true
}

func isDelimiterLine(line []byte, delim string) bool {
	return string(bytes.TrimRight(line, " \t\r")) == delim
}
