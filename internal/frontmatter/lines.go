package frontmatter

import "strings"

// ParseLines parses a `+++` block as flat `key = value` lines.
//
// Each line containing '=' is split on its first '='. Key and value are
// trimmed, then every leading and trailing quote character (' or ") is
// stripped from the value. "true" and "false" (any case) become booleans;
// everything else stays a string. Lines without '=' are ignored, and tables
// or arrays are not interpreted. ParseLines never fails.
func ParseLines(raw []byte) *Metadata {
	md := NewMetadata()
	for _, line := range strings.Split(string(raw), "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		switch strings.ToLower(value) {
		case "true":
			md.Set(key, Bool(true))
		case "false":
			md.Set(key, Bool(false))
		default:
			md.Set(key, String(value))
		}
	}
	return md
}
