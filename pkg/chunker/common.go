package chunker

import (
	"context"
	"strings"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/section"
	"github.com/fluxdoc/fluxdoc/pkg/tokenizer"
)

// Unit is a single span of source text with a precomputed token count, the
// smallest piece a strategy is willing to split on (a paragraph, a
// sentence, a whole section, a table row group). Boundary marks the unit
// as a structural edge (heading, fence, table start) that overlap carry-
// over must not cross.
type Unit struct {
	Text     string
	Start    int
	End      int
	Tokens   int
	Boundary bool
}

// Builder greedily packs Units into DocumentChunks within a token budget,
// generalizing the teacher's chunkBuilder/appendUnit algorithm from a
// single frontmatter+body document to arbitrary strategies sharing the
// same packing discipline. Units exceeding MaxChunkSize alone get a
// dedicated ("jumbo") chunk. Completed chunks seed the next chunk's
// leading overlap with their own trailing units, stopping at a Boundary
// unit so overlap never straddles a structural edge.
type Builder struct {
	opts     docmodel.ChunkingOptions
	strategy string
	root     *section.Section

	pending      []Unit
	pendingTokens int
	chunks       []docmodel.DocumentChunk
}

// NewBuilder creates a Builder for one document's chunking run.
func NewBuilder(opts docmodel.ChunkingOptions, strategyName string, root *section.Section) *Builder {
	return &Builder{opts: opts, strategy: strategyName, root: root}
}

// Add appends one unit, flushing a chunk first if the unit would overflow
// the budget, or immediately emitting it alone if it overflows the budget
// by itself.
func (b *Builder) Add(u Unit) {
	if u.Tokens <= 0 && u.Text == "" {
		return
	}

	if u.Tokens > b.opts.MaxChunkSize {
		b.Flush()
		b.pending = []Unit{u}
		b.pendingTokens = u.Tokens
		b.Flush()
		return
	}

	if b.pendingTokens+u.Tokens > b.opts.MaxChunkSize && len(b.pending) > 0 {
		b.Flush()
	}

	b.pending = append(b.pending, u)
	b.pendingTokens += u.Tokens
}

// Flush emits the pending units as a chunk (if any), then seeds the next
// chunk's pending list with trailing overlap units from the chunk just
// emitted.
func (b *Builder) Flush() {
	if len(b.pending) == 0 {
		return
	}

	var text strings.Builder
	start := b.pending[0].Start
	end := b.pending[len(b.pending)-1].End
	for _, u := range b.pending {
		text.WriteString(u.Text)
	}

	chunk := docmodel.DocumentChunk{
		Content:     text.String(),
		Start:       start,
		End:         end,
		HeadingPath: HeadingPathAt(b.root, start),
		Strategy:    b.strategy,
		Tokens:      b.pendingTokens,
		Props:       b.opts.Props.Clone(),
	}
	b.chunks = append(b.chunks, chunk)

	b.pending = overlapCarry(b.pending, b.opts.OverlapSize)
	b.pendingTokens = 0
	for _, u := range b.pending {
		b.pendingTokens += u.Tokens
	}
}

// Finish flushes any remaining pending content and stamps sequence/total
// and deterministic IDs across the finished chunk slice.
func (b *Builder) Finish(contentFingerprint, optionsFingerprint string) []docmodel.DocumentChunk {
	return StampChunks(b.Chunks(), contentFingerprint, optionsFingerprint)
}

// Chunks flushes any remaining pending content and returns the chunks built
// so far, unstamped (no Sequence, Total, or ID). Callers that need to merge
// chunks from several Builder runs before assigning a single document-wide
// sequence (Hierarchical's parent/child chunks, for instance) use this
// instead of Finish.
func (b *Builder) Chunks() []docmodel.DocumentChunk {
	b.Flush()
	return b.chunks
}

// StampChunks assigns Sequence, Total, and a deterministic ID across a
// finished chunk slice, in the slice's existing order.
func StampChunks(chunks []docmodel.DocumentChunk, contentFingerprint, optionsFingerprint string) []docmodel.DocumentChunk {
	total := len(chunks)
	for i := range chunks {
		chunks[i].Sequence = i + 1
		chunks[i].Total = total
		chunks[i].ID = docmodel.ChunkID(contentFingerprint, optionsFingerprint, i+1)
	}
	return chunks
}

// overlapCarry returns the trailing units of a finished chunk whose
// combined token count is closest to (without exceeding) targetTokens,
// stopping before crossing a Boundary unit so overlap never straddles a
// heading, fence, or table start.
func overlapCarry(units []Unit, targetTokens int) []Unit {
	if targetTokens <= 0 {
		return nil
	}

	var carried []Unit
	tokens := 0
	for i := len(units) - 1; i >= 0; i-- {
		u := units[i]
		if u.Boundary && len(carried) > 0 {
			break
		}
		if tokens+u.Tokens > targetTokens {
			break
		}
		carried = append([]Unit{u}, carried...)
		tokens += u.Tokens
		if u.Boundary {
			break
		}
	}
	return carried
}

// HeadingPathAt returns the breadcrumb of the deepest section whose span
// contains byte offset pos, per the invariant that a chunk's heading path
// equals the path of the section containing its start offset.
func HeadingPathAt(root *section.Section, pos int) []string {
	if root == nil {
		return nil
	}
	best := root
	var walk func(s *section.Section)
	walk = func(s *section.Section) {
		for _, c := range s.Children() {
			start, end := c.Span()
			if pos >= start && (pos < end || end == start) {
				best = c
				walk(c)
				return
			}
		}
	}
	walk(root)
	if best.IsRoot() {
		return nil
	}
	return best.Path()[1:]
}

// TokenizeSections renders a tokenizer.Tokenizer across a section tree.
func TokenizeSections(ctx context.Context, tok tokenizer.Tokenizer, root *section.Section) (*tokenizer.TokenizedSection, error) {
	return tok.Tokenize(ctx, root)
}
