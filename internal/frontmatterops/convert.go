package frontmatterops

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/vaultsync/internal/frontmatter"
)

// Partition splits dotted keys into tables. A key containing '.' is split at
// its first '.' into table name and child key; later duplicates of a child
// overwrite earlier ones. Tables appear in first-encounter order and other
// keys stay at the top level in their original order.
func Partition(md *frontmatter.Metadata) (top *frontmatter.Metadata, tables []frontmatter.Table) {
	top = frontmatter.NewMetadata()
	index := make(map[string]int)

	for key, v := range md.All() {
		parent, child, nested := strings.Cut(key, ".")
		if !nested {
			top.Set(key, v)
			continue
		}

		i, ok := index[parent]
		if !ok {
			i = len(tables)
			index[parent] = i
			tables = append(tables, frontmatter.Table{Name: parent, Fields: frontmatter.NewMetadata()})
		}
		tables[i].Fields.Set(child, v)
	}
	return top, tables
}

// Convert rewrites doc for the site: normalizes its metadata, renders it as a
// `+++` block and appends the original body unchanged.
func Convert(doc frontmatter.Document, fallbackTitle string, now time.Time) []byte {
	fields := Normalize(doc.Metadata, fallbackTitle, now)
	top, tables := Partition(fields)

	block := frontmatter.SerializeTOML(top, tables)
	out := make([]byte, 0, len(block)+len(doc.Body))
	out = append(out, block...)
	out = append(out, doc.Body...)
	return out
}
