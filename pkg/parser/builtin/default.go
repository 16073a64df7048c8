package builtin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/fluxdoc/fluxdoc/pkg/doccontext"
	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/lang"
	"github.com/fluxdoc/fluxdoc/pkg/log"
	"github.com/fluxdoc/fluxdoc/pkg/props"
	propsbuiltin "github.com/fluxdoc/fluxdoc/pkg/props/builtin"
	"github.com/fluxdoc/fluxdoc/pkg/section"
	sectionbuiltin "github.com/fluxdoc/fluxdoc/pkg/section/builtin"
)

// DefaultParser turns RawContent into ParsedContent. Every Reader in
// pkg/reader/builtin already normalizes its format to Markdown-flavored
// text (HTML is converted, spreadsheets become tables, slide decks become
// headed sections), so a single Markdown-oriented pipeline covers every
// supported format:
//
//  1. Extract optional YAML frontmatter from the document header
//  2. Parse the remaining text into a Markdown AST using goldmark
//  3. Walk the AST to identify heading locations, levels, and titles
//  4. Fold the headings and intervening text into a nested Section tree
//  5. Run heading and table normalization over the tree
//  6. Detect the primary language and compute a structure-confidence score
//
// Parsing problems never abort the pipeline: they are recorded as
// warnings on the returned ParsedContent instead of being returned as an
// error. An error return means extraction could not proceed at all (e.g.
// a malformed goldmark AST), which should be rare.
func DefaultParser(ctx context.Context, raw docmodel.RawContent) (docmodel.ParsedContent, error) {
	w := &worker{ctx: ctx, raw: raw}
	return w.parse()
}

type worker struct {
	ctx      context.Context
	raw      docmodel.RawContent
	src      []byte
	doc      ast.Node
	spans    []headingSpan
	cursor   int
	stack    []sectionFrame
	root     *section.Section
	warnings []string
}

type sectionFrame struct{ s *section.Section }

type headingSpan struct {
	Node  *ast.Heading
	Start int
	End   int
	Level int
	Title string
}

func (w *worker) parse() (docmodel.ParsedContent, error) {
	logger := log.Logger(w.ctx)

	title := w.raw.SourceName
	if fi, ok := doccontext.FileInfoFrom(w.ctx); ok && fi.Title != "" {
		title = fi.Title
	}
	if title == "" {
		title = "Untitled"
	}

	logger.Debug("starting document parse",
		slog.String("title", title),
		slog.Int("source_size", len(w.raw.Text)))

	var fmData map[string]any
	body, err := frontmatter.Parse(bytes.NewReader([]byte(w.raw.Text)), &fmData)
	if err != nil {
		return docmodel.ParsedContent{}, fmt.Errorf("frontmatter parse: %w", err)
	}
	w.src = body
	bag := props.Bag(fmData)
	if bag == nil {
		bag = props.EmptyBag()
	}
	if err := props.ApplyTransform(w.ctx, bag, propsbuiltin.InjectSourcePath("source_path")); err != nil {
		w.warnings = append(w.warnings, "props: "+err.Error())
	}

	if err := w.parseDoc(); err != nil {
		return docmodel.ParsedContent{}, fmt.Errorf("markdown parse: %w", err)
	}

	w.extractHeadings()

	if err := w.fold(title); err != nil {
		return docmodel.ParsedContent{}, fmt.Errorf("section fold: %w", err)
	}

	if err := section.ApplyTransform(w.ctx, bag, w.root,
		sectionbuiltin.NormalizeNewlinesTransform(),
		sectionbuiltin.CollapseBlankLinesTransform(),
		sectionbuiltin.HeadingNormalize(),
		sectionbuiltin.TableNormalize(),
	); err != nil {
		w.warnings = append(w.warnings, "section normalization: "+err.Error())
	}

	stampSpans(w.root, len(w.src))

	langResult := lang.Detect(w.raw.Text)
	structureScore := w.computeStructureScore()

	warnings := append(append([]string{}, w.raw.Warnings...), w.warnings...)

	return docmodel.ParsedContent{
		Body:             string(w.src),
		Sections:         w.root,
		Language:         docmodel.LanguageInfo{Code: langResult.Code, Confidence: langResult.Confidence},
		Topics:           collectTopics(w.root),
		StructureScore:   structureScore,
		Warnings:         warnings,
		SourceFormat:     w.raw.Format,
		OriginalByteSize: w.raw.ByteSize,
	}, nil
}

func (w *worker) parseDoc() error {
	md := goldmark.New(
		goldmark.WithParserOptions(
			gparser.WithAutoHeadingID(),
		),
	)
	w.doc = md.Parser().Parse(text.NewReader(w.src))
	if w.doc == nil {
		return errors.New("goldmark: empty document root")
	}
	return nil
}

func (w *worker) extractHeadings() {
	var spans []headingSpan
	ast.Walk(w.doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		lines := h.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}
		seg := lines.At(0)
		spans = append(spans, headingSpan{
			Node:  h,
			Start: seg.Start,
			End:   seg.Stop,
			Level: h.Level,
			Title: inlineText(h, w.src),
		})
		return ast.WalkContinue, nil
	})
	w.spans = spans
}

func inlineText(h *ast.Heading, src []byte) string {
	var buf bytes.Buffer
	for n := h.FirstChild(); n != nil; n = n.NextSibling() {
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
		default:
			buf.WriteString(extractInlineText(t, src))
		}
	}
	return buf.String()
}

func extractInlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
		default:
			buf.WriteString(extractInlineText(t, src))
		}
	}
	return buf.String()
}

func (w *worker) fold(docTitle string) error {
	w.root = section.NewRoot(docTitle)
	w.root.SetSpan(0, len(w.src))
	w.stack = []sectionFrame{{s: w.root}}
	w.cursor = 0

	for i, h := range w.spans {
		if h.Start > w.cursor {
			pre, next := spliceText(w.src, w.cursor, h.Start)
			w.stack[len(w.stack)-1].s.AppendContent(pre)
			w.cursor = next
		}

		pi, err := parentForLevel(w.stack, h.Level)
		if err != nil {
			return fmt.Errorf("invalid section stack at heading %d (%q): %w", i, h.Title, err)
		}

		w.stack = w.stack[:pi+1]
		parent := w.stack[pi].s

		sec := parent.CreateChild(h.Title, h.Level, "")
		w.stack = append(w.stack, sectionFrame{s: sec})
		w.cursor = h.End
		sec.SetSpan(h.Start, h.Start)
	}

	if w.cursor < len(w.src) {
		pre, _ := spliceText(w.src, w.cursor, len(w.src))
		w.stack[len(w.stack)-1].s.AppendContent(pre)
	}

	return nil
}

// stampSpans assigns an [start, end) byte span to every non-root section
// by treating its content length as its extent starting at its heading
// offset, clamped to the document length. Used downstream by chunk
// construction to derive each chunk's heading path from its start offset.
func stampSpans(s *section.Section, docLen int) {
	for _, c := range s.Children() {
		start, _ := c.Span()
		end := start + len(c.Content())
		if end > docLen {
			end = docLen
		}
		c.SetSpan(start, end)
		stampSpans(c, docLen)
	}
}

func spliceText(src []byte, start, stop int) (string, int) {
	if start < 0 {
		start = 0
	}
	if stop > len(src) {
		stop = len(src)
	}
	if stop <= start {
		return "", start
	}
	return string(src[start:stop]), stop
}

func parentForLevel(stack []sectionFrame, target int) (int, error) {
	i := len(stack) - 1
	for i >= 0 && stack[i].s.Level() >= target {
		i--
	}
	if i < 0 {
		return -1, errors.New("no valid parent section")
	}
	return i, nil
}

// computeStructureScore rewards documents with a clear, reasonably deep
// heading hierarchy and penalizes flat or heading-free ones, yielding a
// value in [0, 1].
func (w *worker) computeStructureScore() float64 {
	total := countSections(w.root)
	if total == 0 {
		return 0.3
	}
	depth := maxDepth(w.root, 0)
	score := 0.4 + 0.15*float64(min(depth, 4))
	if score > 1 {
		score = 1
	}
	return score
}

func countSections(s *section.Section) int {
	n := 0
	if !s.IsRoot() {
		n = 1
	}
	for _, c := range s.Children() {
		n += countSections(c)
	}
	return n
}

func maxDepth(s *section.Section, depth int) int {
	best := depth
	for _, c := range s.Children() {
		if d := maxDepth(c, depth+1); d > best {
			best = d
		}
	}
	return best
}

func collectTopics(s *section.Section) []string {
	var topics []string
	for _, c := range s.Children() {
		if t := strings.TrimSpace(c.Title()); t != "" {
			topics = append(topics, t)
		}
		topics = append(topics, collectTopics(c)...)
	}
	return topics
}
