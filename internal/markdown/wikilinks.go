package markdown

import "strings"

// extractWikiLinks finds [[target]], [[target|alias]] and ![[embed]] outside
// code blocks and code spans.
func extractWikiLinks(body []byte) []Link {
	lines := strings.Split(string(body), "\n")

	inCodeBlock := false
	activeFence := ""

	out := make([]Link, 0)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock, activeFence = toggleFencedBlock(inCodeBlock, activeFence, "```")
			continue
		}
		if strings.HasPrefix(trimmed, "~~~") {
			inCodeBlock, activeFence = toggleFencedBlock(inCodeBlock, activeFence, "~~~")
			continue
		}
		if inCodeBlock || strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
			continue
		}

		rest := stripInlineCodeSpans(line)
		for {
			start := strings.Index(rest, "[[")
			if start == -1 {
				break
			}
			end := strings.Index(rest[start+2:], "]]")
			if end == -1 {
				break
			}
			inner := rest[start+2 : start+2+end]
			rest = rest[start+2+end+2:]

			target, _, _ := strings.Cut(inner, "|")
			target = strings.TrimSpace(target)
			if target == "" {
				continue
			}
			out = append(out, Link{Kind: LinkKindWiki, Destination: target})
		}
	}

	return out
}

func toggleFencedBlock(inCodeBlock bool, activeFence string, fence string) (bool, string) {
	if !inCodeBlock {
		return true, fence
	}
	if activeFence == fence {
		return false, ""
	}
	return inCodeBlock, activeFence
}

func stripInlineCodeSpans(s string) string {
	if !strings.Contains(s, "`") {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '`' {
			out.WriteByte(s[i])
			i++
			continue
		}

		run := 1
		for i+run < len(s) && s[i+run] == '`' {
			run++
		}

		marker := strings.Repeat("`", run)
		closeRel := strings.Index(s[i+run:], marker)
		if closeRel == -1 {
			// Unclosed code span; keep the backticks and continue.
			out.WriteString(marker)
			i += run
			continue
		}

		// Skip the entire code span, including delimiters.
		i = i + run + closeRel + run
	}

	return out.String()
}
