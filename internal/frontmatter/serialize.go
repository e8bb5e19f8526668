package frontmatter

import (
	"bytes"
	"strings"
)

// Table is a named group of fields emitted under a `[name]` header.
type Table struct {
	Name   string
	Fields *Metadata
}

// SerializeTOML renders top-level fields followed by tables as a `+++`
// delimited block, including the trailing newline after the closing
// delimiter. Fields whose value renders to nothing are omitted.
func SerializeTOML(top *Metadata, tables []Table) []byte {
	delim := ConventionTOML.Delimiter()

	var buf bytes.Buffer
	buf.WriteString(delim + "\n")
	writeFields(&buf, top)
	for _, t := range tables {
		buf.WriteString("\n[" + t.Name + "]\n")
		writeFields(&buf, t.Fields)
	}
	buf.WriteString(delim + "\n")
	return buf.Bytes()
}

func writeFields(buf *bytes.Buffer, fields *Metadata) {
	for key, v := range fields.All() {
		rendered, ok := RenderValue(v)
		if !ok {
			continue
		}
		buf.WriteString(key)
		buf.WriteString(" = ")
		buf.WriteString(rendered)
		buf.WriteByte('\n')
	}
}

// RenderValue renders v as the right-hand side of a `key = value` line.
//
// Booleans and numbers are bare literals, lists are double-quoted arrays, and
// other values are single-quoted with embedded single quotes backslash
// escaped. ok is false for absent values, empty strings and the string "None",
// which are omitted from output.
func RenderValue(v Value) (rendered string, ok bool) {
	switch v.Kind() {
	case KindBool, KindNumber, KindList:
		return v.Text(), true
	case KindString:
		s := v.AsString()
		if s == "" || s == "None" {
			return "", false
		}
		return "'" + strings.ReplaceAll(s, "'", `\'`) + "'", true
	case KindAbsent:
		return "", false
	default:
		return "", false
	}
}

var listEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func renderList(items []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('"')
		b.WriteString(listEscaper.Replace(item))
		b.WriteByte('"')
	}
	b.WriteByte(']')
	return b.String()
}
