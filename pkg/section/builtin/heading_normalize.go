package builtin

import (
	"context"
	"regexp"
	"strings"

	"github.com/fluxdoc/fluxdoc/pkg/props"
	"github.com/fluxdoc/fluxdoc/pkg/section"
)

var annotationLinePattern = regexp.MustCompile(`^\s*\(.{1,40}\)\s*$|^\s*\[\[.{1,40}\]\]\s*$`)

// HeadingNormalize promotes the first encountered heading to at most level
// 2, caps every subsequent level jump to 1 relative to the previous
// heading actually emitted, and removes headings with no title text
// entirely rather than keeping a ghost section around. It relies on
// ApplyTransform's depth-first, declared-order walk to see every heading
// exactly once, so the closure's running state (whether a heading has been
// seen yet, and the last normalized level) stays valid across the whole
// tree.
func HeadingNormalize() section.Transform {
	seenFirst := false
	lastLevel := 0

	return func(ctx context.Context, _ props.View, s *section.Section) error {
		if s.IsRoot() || s.Level() == 0 {
			return nil
		}

		title := strings.TrimSpace(s.Title())
		if title == "" {
			removeEmptyHeading(s)
			return nil
		}
		s.SetTitle(title)

		level := s.Level()
		if !seenFirst {
			if level > 2 {
				level = 2
			}
			seenFirst = true
		} else if level > lastLevel+1 {
			level = lastLevel + 1
		}

		s.SetLevel(level)
		lastLevel = level

		demoteAnnotationLines(s)

		return nil
	}
}

// removeEmptyHeading splices an untitled heading out of the tree: its body
// text folds into its parent's content in place, and any subsections it
// had are reparented onto the parent at the same position, so the empty
// heading disappears without losing the text or subtree it carried. A
// root section (no parent) is never removed.
func removeEmptyHeading(s *section.Section) {
	parent := s.Parent()
	if parent == nil {
		return
	}
	if content := s.Content(); content != "" {
		parent.AppendContent(content)
	}
	parent.ReplaceChildWithChildren(s)
}

// demoteAnnotationLines rewrites lines that look like parenthetical
// annotations or wiki-style tags rather than prose, leaving them as plain
// text rather than stripping them outright.
func demoteAnnotationLines(s *section.Section) {
	content := s.Content()
	if content == "" {
		return
	}
	lines := strings.Split(content, "\n")
	changed := false
	for i, line := range lines {
		if annotationLinePattern.MatchString(line) {
			lines[i] = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "()[]"))
			changed = true
		}
	}
	if changed {
		s.SetContent(strings.Join(lines, "\n"))
	}
}
