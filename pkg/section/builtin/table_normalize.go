package builtin

import (
	"context"
	"strings"

	"github.com/fluxdoc/fluxdoc/pkg/props"
	"github.com/fluxdoc/fluxdoc/pkg/section"
)

// TableNormalize scans each section's content for Markdown pipe-table
// blocks and demotes any table whose row column counts vary to a fenced
// code block, so the chunker treats it as an atomic pre-formatted unit
// instead of trying to parse it as a structured table.
func TableNormalize() section.Transform {
	return func(ctx context.Context, _ props.View, s *section.Section) error {
		content := s.Content()
		if !strings.Contains(content, "|") {
			return nil
		}

		lines := strings.Split(content, "\n")
		var out []string
		i := 0
		for i < len(lines) {
			if !looksLikeTableRow(lines[i]) {
				out = append(out, lines[i])
				i++
				continue
			}

			start := i
			width := columnCount(lines[i])
			uniform := true
			for i < len(lines) && looksLikeTableRow(lines[i]) {
				if columnCount(lines[i]) != width {
					uniform = false
				}
				i++
			}
			block := lines[start:i]

			if uniform {
				out = append(out, block...)
			} else {
				out = append(out, "```text")
				out = append(out, "<!-- malformed table: ragged column counts, demoted to text -->")
				out = append(out, block...)
				out = append(out, "```")
			}
		}

		s.SetContent(strings.Join(out, "\n"))
		return nil
	}
}

func looksLikeTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|")
}

func columnCount(line string) int {
	trimmed := strings.Trim(strings.TrimSpace(line), "|")
	return len(strings.Split(trimmed, "|"))
}
