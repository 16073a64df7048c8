// Package pipeline consolidates Extract, Parse, and Chunk into a single
// Processor, plus the orthogonal decorators (caching, streaming,
// enrichment) that wrap it instead of subclassing it — the deep
// IDocumentProcessor/IStreamingDocumentProcessor/IParallelDocumentProcessor/
// IProgressiveDocumentProcessor hierarchy collapses to one trait with a
// streaming method, matching spec.md §9's interface-consolidation
// resolution.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/fluxdoc/fluxdoc/pkg/cache"
	"github.com/fluxdoc/fluxdoc/pkg/chunker"
	"github.com/fluxdoc/fluxdoc/pkg/doccontext"
	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/enrich"
	"github.com/fluxdoc/fluxdoc/pkg/errs"
	"github.com/fluxdoc/fluxdoc/pkg/llmsvc"
	"github.com/fluxdoc/fluxdoc/pkg/log"
	"github.com/fluxdoc/fluxdoc/pkg/parallel"
	"github.com/fluxdoc/fluxdoc/pkg/parser"
	"github.com/fluxdoc/fluxdoc/pkg/quality"
	"github.com/fluxdoc/fluxdoc/pkg/reader"
	"github.com/fluxdoc/fluxdoc/pkg/stream"
	"github.com/fluxdoc/fluxdoc/pkg/tokenizer"
)

// invariantSlack is spec.md §7's ChunkingInvariantViolation threshold: a
// chunk whose token count exceeds 1.15x the requested MaxChunkSize with
// no legal split falls back to FixedSize for the whole document.
const invariantSlack = 1.15

// Option configures a Pipeline, following the same functional-options
// shape pkg/chunker's teacher-inherited constructor uses.
type Option func(*Pipeline)

// WithCache enables chunk-list memoization. A nil argument leaves caching
// disabled (the zero value).
func WithCache(c *cache.Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// WithEnricher enables LLM enrichment and relationship-graph building.
func WithEnricher(e *enrich.Enricher) Option {
	return func(p *Pipeline) { p.enricher = e }
}

// WithBackpressure overrides ProcessStream's pacing; the zero value uses
// stream.DefaultBackpressure.
func WithBackpressure(bp stream.BackpressureOptions) Option {
	return func(p *Pipeline) { p.backpressure = bp }
}

// WithImageToText installs the service used to resolve pre-extraction
// image placeholders into descriptive text during Process. A nil svc
// leaves every image unresolved (counted as skipped in Result.Images).
func WithImageToText(svc llmsvc.ImageToTextService, opts llmsvc.ImageToTextOptions) Option {
	return func(p *Pipeline) { p.imageService = svc; p.imageOptions = opts }
}

// Pipeline is the consolidated Processor: one Extract/Parse/Chunk call
// chain plus whichever decorators were installed via Option.
type Pipeline struct {
	readers    *reader.Registry
	parse      parser.Parser
	strategies *chunker.Registry
	tokenizer  tokenizer.Tokenizer

	cache        *cache.Cache
	enricher     *enrich.Enricher
	backpressure stream.BackpressureOptions

	imageService llmsvc.ImageToTextService
	imageOptions llmsvc.ImageToTextOptions
}

// New builds a Pipeline from its three pluggable stages. readers, parse,
// strategies, and tok are all required; decorators are installed via
// Option.
func New(readers *reader.Registry, parse parser.Parser, strategies *chunker.Registry, tok tokenizer.Tokenizer, opts ...Option) *Pipeline {
	p := &Pipeline{readers: readers, parse: parse, strategies: strategies, tokenizer: tok, backpressure: stream.DefaultBackpressure(), imageOptions: llmsvc.DefaultImageToTextOptions()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Extract reads raw bytes into docmodel.RawContent via the registered
// format dispatch.
func (p *Pipeline) Extract(ctx context.Context, r io.Reader, name string) (docmodel.RawContent, error) {
	return p.readers.Read(ctx, r, name)
}

// Parse turns RawContent into ParsedContent. The source name is threaded
// through ctx via doccontext so the parser and its props transforms (e.g.
// props/builtin.InjectSourcePath) can see which file they're working on
// without RawContent growing a context-shaped field.
func (p *Pipeline) Parse(ctx context.Context, raw docmodel.RawContent) (docmodel.ParsedContent, error) {
	ctx = doccontext.WithFileInfo(ctx, doccontext.FileInfo{Path: raw.SourceName})
	return p.parse(ctx, raw)
}

// Chunk splits parsed content into DocumentChunks under opts, enforcing
// the chunking-invariant fallback: a chunk more than 1.15x over
// MaxChunkSize causes a one-time retry under FixedSize with the same
// size/overlap, with a warning rather than a fatal error.
func (p *Pipeline) Chunk(ctx context.Context, parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions) ([]docmodel.DocumentChunk, error) {
	chunks, err := p.strategies.Chunk(ctx, parsed, opts, p.tokenizer)
	if err != nil {
		return nil, err
	}

	if opts.StrategyName != "fixedsize" && violatesInvariant(chunks, opts.MaxChunkSize) {
		log.Logger(ctx).Warn("chunk exceeded invariant slack, falling back to fixedsize", "strategy", opts.StrategyName, "max_chunk_size", opts.MaxChunkSize)
		fallback := opts
		fallback.StrategyName = "fixedsize"
		chunks, err = p.strategies.Chunk(ctx, parsed, fallback, p.tokenizer)
		if err != nil {
			return nil, err
		}
		parsed.Warnings = append(parsed.Warnings, fmt.Sprintf("strategy %q produced an oversized chunk; fell back to fixedsize", opts.StrategyName))
	}

	return quality.ScoreChunks(chunks, parsed.Language.Code), nil
}

func violatesInvariant(chunks []docmodel.DocumentChunk, maxChunkSize int) bool {
	if maxChunkSize <= 0 {
		return false
	}
	limit := int(float64(maxChunkSize) * invariantSlack)
	for _, c := range chunks {
		if c.Tokens > limit {
			return true
		}
	}
	return false
}

// Result is Process's full-document output.
type Result struct {
	Parsed   docmodel.ParsedContent
	Chunks   []docmodel.DocumentChunk
	Report   quality.Report
	Enriched enrich.Result
	Images   enrich.ImageResolution
	CacheHit bool
}

// Process runs Extract, Parse, and Chunk in sequence, transparently
// consulting the cache (when installed) and running enrichment (when
// installed) afterward.
func (p *Pipeline) Process(ctx context.Context, r io.Reader, name string, opts docmodel.ChunkingOptions) (Result, error) {
	raw, err := p.Extract(ctx, r, name)
	if err != nil {
		return Result{}, err
	}
	return p.processRaw(ctx, raw, opts)
}

// processRaw runs Parse, Chunk, image resolution, quality scoring, and
// enrichment against already-extracted content. It is the shared core
// behind both Process (single document, reader-driven) and ProcessBatch
// (many already-extracted documents fanned out across pkg/parallel's
// worker pool), so the two entry points can never drift in behavior.
func (p *Pipeline) processRaw(ctx context.Context, raw docmodel.RawContent, opts docmodel.ChunkingOptions) (Result, error) {
	parsed, err := p.Parse(ctx, raw)
	if err != nil {
		return Result{}, err
	}

	contentFingerprint := docmodel.ContentFingerprint([]byte(parsed.Body))
	optionsFingerprint, err := docmodel.OptionsFingerprint(opts)
	if err != nil {
		return Result{}, errs.Wrap(errs.ChunkingInvariantViolation, "failed to fingerprint chunking options", err)
	}
	key := docmodel.CacheKey(contentFingerprint, optionsFingerprint)

	var chunks []docmodel.DocumentChunk
	var cacheHit bool
	if p.cache != nil {
		if _, ok := p.cache.Get(key); ok {
			cacheHit = true
		}
		entry, err := p.cache.GetOrBuild(ctx, key, func(ctx context.Context) (*cache.Entry, error) {
			built, err := p.Chunk(ctx, parsed, opts)
			if err != nil {
				return nil, err
			}
			return &cache.Entry{Chunks: built, Language: parsed.Language, ByteSize: estimateByteSize(built)}, nil
		})
		if err != nil {
			return Result{}, err
		}
		chunks = entry.Chunks
	} else {
		chunks, err = p.Chunk(ctx, parsed, opts)
		if err != nil {
			return Result{}, err
		}
	}

	var images enrich.ImageResolution
	if len(raw.Images) > 0 {
		chunks, images = enrich.ResolveImages(ctx, chunks, raw.Images, p.imageService, p.imageOptions)
	}

	report := quality.Analyze(chunks, parsed.Language.Code)

	var enriched enrich.Result
	if p.enricher != nil && opts.EnableEnrichment {
		enriched, err = p.enricher.Enrich(ctx, chunks)
		if err != nil {
			return Result{}, err
		}
		chunks = enriched.Chunks
	}

	return Result{Parsed: parsed, Chunks: chunks, Report: report, Enriched: enriched, Images: images, CacheHit: cacheHit}, nil
}

// BatchJob pairs a document name with its already-extracted content, the
// unit ProcessBatch fans out across pkg/parallel's worker pool.
type BatchJob struct {
	Name string
	Raw  docmodel.RawContent
}

// ProcessBatch runs processRaw over every job concurrently via
// parallel.RunBatch, bounded by parOpts.MaxParallelism documents and
// parOpts.MemoryBudgetBytes of in-flight ByteSize. One document's failure
// is isolated to its own DocumentResult rather than aborting the batch,
// matching RunBatch's own isolation guarantee.
func (p *Pipeline) ProcessBatch(ctx context.Context, jobs []BatchJob, opts docmodel.ChunkingOptions, parOpts parallel.Options) []parallel.DocumentResult[Result] {
	parallelJobs := make([]parallel.DocumentJob, len(jobs))
	for i, j := range jobs {
		parallelJobs[i] = parallel.DocumentJob{Name: j.Name, Raw: j.Raw}
	}

	proc := func(ctx context.Context, job parallel.DocumentJob) (Result, error) {
		return p.processRaw(ctx, job.Raw, opts)
	}

	return parallel.RunBatch(ctx, parallelJobs, proc, parOpts)
}

func estimateByteSize(chunks []docmodel.DocumentChunk) int64 {
	var total int64
	for _, c := range chunks {
		total += int64(len(c.Content))
	}
	return total
}

// ProcessStream runs the same Extract/Parse/Chunk chain as Process but
// reports progress and yields chunks incrementally via pkg/stream,
// replaying straight from the cache when the document's fingerprint is
// already known.
func (p *Pipeline) ProcessStream(ctx context.Context, r io.Reader, name string, opts docmodel.ChunkingOptions) iter.Seq[stream.ProcessingResult] {
	return stream.Produce(ctx, p.backpressure, func(ctx context.Context, report func(stream.Stage, float64), yield func(docmodel.DocumentChunk) bool) error {
		report(stream.StageExtracting, 0)
		raw, err := p.Extract(ctx, r, name)
		if err != nil {
			return err
		}
		report(stream.StageExtracting, 1)

		report(stream.StageParsing, 0)
		parsed, err := p.Parse(ctx, raw)
		if err != nil {
			return err
		}
		report(stream.StageParsing, 1)

		if p.cache != nil {
			contentFingerprint := docmodel.ContentFingerprint([]byte(parsed.Body))
			optionsFingerprint, err := docmodel.OptionsFingerprint(opts)
			if err == nil {
				if entry, ok := p.cache.Get(docmodel.CacheKey(contentFingerprint, optionsFingerprint)); ok {
					for _, c := range entry.Chunks {
						if !yield(c) {
							return nil
						}
					}
					return nil
				}
			}
		}

		report(stream.StageChunking, 0)
		chunks, err := p.Chunk(ctx, parsed, opts)
		if err != nil {
			return err
		}
		for i, c := range chunks {
			if !yield(c) {
				return nil
			}
			report(stream.StageChunking, float64(i+1)/float64(len(chunks)))
		}
		return nil
	})
}
