package builtin

import (
	"context"
	"strings"

	"github.com/fluxdoc/fluxdoc/pkg/props"
	"github.com/fluxdoc/fluxdoc/pkg/section"
)

// NormalizeNewlinesTransform converts all "\r\n" and "\r" to "\n" within section.Content.
// This transform is idempotent by definition.
func NormalizeNewlinesTransform() section.Transform {
	return func(ctx context.Context, _ props.View, s *section.Section) error {
		content := s.Content()

		// Replace \r\n first, then \r
		content = strings.ReplaceAll(content, "\r\n", "\n")
		content = strings.ReplaceAll(content, "\r", "\n")

		s.SetContent(content)
		return nil
	}
}
