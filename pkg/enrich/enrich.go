// Package enrich optionally annotates a finished chunk list with
// LLM-generated summaries, keywords, and contextual prefixes (the
// Contextual Retrieval pattern: a one-sentence placement of the chunk
// within the whole document), and builds the chunk relationship graph
// defined in graph.go. Every LLM call is bounded by a semaphore and a
// per-chunk failure downgrades to an unenriched chunk rather than failing
// the batch, mirroring how pkg/parallel isolates one document's failure
// from the rest of a run.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/llmsvc"
	"github.com/fluxdoc/fluxdoc/pkg/log"
	"github.com/fluxdoc/fluxdoc/pkg/props"
	propsbuiltin "github.com/fluxdoc/fluxdoc/pkg/props/builtin"
)

// Options configures an Enricher.
type Options struct {
	// MaxConcurrency bounds in-flight LLM calls.
	MaxConcurrency int64
	// BuildGraphAfter, when true, also computes the structural relationship
	// graph once enrichment finishes.
	BuildGraphAfter bool
	Graph           GraphOptions
}

// DefaultOptions returns a 5-way concurrency bound and the default graph
// options, with graph building enabled.
func DefaultOptions() Options {
	return Options{MaxConcurrency: 5, BuildGraphAfter: true, Graph: DefaultGraphOptions()}
}

// RelationshipFinder discovers non-structural edges (Semantic/Reference/
// Contrast) across a chunk list, typically backed by an LLM prompt. It is
// separate from TextCompletionService's fixed method set because the
// prompt shape and parsing are enricher-internal, not part of the narrow
// injected-capability contract.
type RelationshipFinder func(ctx context.Context, chunks []docmodel.DocumentChunk) ([]ChunkEdge, error)

// Enricher annotates chunks with LLM-generated metadata.
type Enricher struct {
	completion llmsvc.TextCompletionService
	opts       Options
	sem        *semaphore.Weighted
}

// New creates an Enricher bound to completion. A nil completion makes
// Enrich a no-op that still builds the structural graph when
// opts.BuildGraphAfter is set, so callers without an LLM can still get
// Sequential/Hierarchical/SharedEntity edges.
func New(completion llmsvc.TextCompletionService, opts Options) *Enricher {
	concurrency := opts.MaxConcurrency
	if concurrency <= 0 {
		concurrency = DefaultOptions().MaxConcurrency
	}
	return &Enricher{completion: completion, opts: opts, sem: semaphore.NewWeighted(concurrency)}
}

// Result is Enrich's output: the (possibly partially) enriched chunks,
// how many were successfully enriched, and the relationship graph if
// requested.
type Result struct {
	Chunks        []docmodel.DocumentChunk
	EnrichedCount int
	Graph         Graph
	GraphBuilt    bool
}

// Enrich annotates each chunk's Props with "summary", "keywords", and
// "contextual_prefix" where the completion service succeeds. A per-chunk
// failure leaves that chunk's Props untouched and is logged, never
// returned as a batch-level error — matching spec.md §7's LlmUnavailable/
// LlmTimeout degrade-to-unenriched behavior.
func (e *Enricher) Enrich(ctx context.Context, chunks []docmodel.DocumentChunk) (Result, error) {
	out := make([]docmodel.DocumentChunk, len(chunks))
	copy(out, chunks)

	if e.completion != nil {
		g, gctx := errgroup.WithContext(ctx)
		var enrichedCount int

		for i := range out {
			i := i
			g.Go(func() error {
				if err := e.sem.Acquire(gctx, 1); err != nil {
					return nil
				}
				defer e.sem.Release(1)

				if err := e.enrichOne(gctx, &out[i], out); err != nil {
					log.Logger(gctx).Warn("chunk enrichment failed, leaving chunk unenriched", "chunk_id", out[i].ID, "error", err)
					return nil
				}
				enrichedCount++
				return nil
			})
		}
		_ = g.Wait()
		result := Result{Chunks: out, EnrichedCount: enrichedCount}
		if e.opts.BuildGraphAfter {
			result.Graph = BuildGraph(out, e.opts.Graph)
			result.GraphBuilt = true
		}
		return result, nil
	}

	result := Result{Chunks: out}
	if e.opts.BuildGraphAfter {
		result.Graph = BuildGraph(out, e.opts.Graph)
		result.GraphBuilt = true
	}
	return result, nil
}

func (e *Enricher) enrichOne(ctx context.Context, chunk *docmodel.DocumentChunk, all []docmodel.DocumentChunk) error {
	callCtx := func() (context.Context, context.CancelFunc) {
		if _, ok := ctx.Deadline(); ok {
			return ctx, func() {}
		}
		return context.WithTimeout(ctx, llmsvc.DefaultCallTimeout)
	}

	sctx, cancel := callCtx()
	summary, err := e.completion.Summarize(sctx, summarizePrompt(chunk.Content))
	cancel()
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	mctx, cancel := callCtx()
	meta, err := e.completion.ExtractMetadata(mctx, keywordPrompt(chunk.Content))
	cancel()
	if err != nil {
		return fmt.Errorf("extract keywords: %w", err)
	}
	pctx, cancel := callCtx()
	prefix, err := e.completion.Generate(pctx, contextualPrefixPrompt(chunk, all))
	cancel()
	if err != nil {
		return fmt.Errorf("contextual prefix: %w", err)
	}

	bag := props.EmptyBag()
	bag["summary"] = summary
	bag["keywords"] = meta
	bag["contextual_prefix"] = strings.TrimSpace(prefix)

	if err := props.ApplyTransform(ctx, bag, propsbuiltin.RequireNonEmptyString("summary")); err != nil {
		return fmt.Errorf("validate enriched props: %w", err)
	}

	if chunk.Props == nil {
		chunk.Props = props.EmptyBag()
	}
	for k, v := range bag {
		chunk.Props[k] = v
	}
	return nil
}

func summarizePrompt(content string) string {
	return "Summarize the following passage in one sentence:\n\n" + content
}

func keywordPrompt(content string) string {
	return "List the most salient keywords in the following passage, one per line, as \"keyword: relevance score\":\n\n" + content
}

func contextualPrefixPrompt(chunk *docmodel.DocumentChunk, all []docmodel.DocumentChunk) string {
	var b strings.Builder
	b.WriteString("In one sentence, situate this chunk (")
	b.WriteString(strings.Join(chunk.HeadingPath, " > "))
	b.WriteString(fmt.Sprintf(", chunk %d of %d) within the overall document:\n\n", chunk.Sequence, len(all)))
	b.WriteString(chunk.Content)
	return b.String()
}

// DiscoverRelationships runs find across chunks and merges the results
// into graph via AddDiscoveredEdges, applying graph's confidence/cap
// filtering. A nil find or a find error yields graph unchanged.
func DiscoverRelationships(ctx context.Context, graph Graph, chunks []docmodel.DocumentChunk, find RelationshipFinder, opts GraphOptions) Graph {
	if find == nil {
		return graph
	}
	edges, err := find(ctx, chunks)
	if err != nil {
		log.Logger(ctx).Warn("relationship discovery failed, keeping structural edges only", "error", err)
		return graph
	}
	return AddDiscoveredEdges(graph, edges, opts)
}
