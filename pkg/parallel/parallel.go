// Package parallel fans a batch of documents out across a bounded worker
// pool and fans the per-document results back in, isolating one document's
// failure from the rest of the batch. It is grounded on
// intelligencedev-manifold's errgroup.WithContext fan-out (internal/agent/warpp.go's
// RunWARPP, internal/tools/web/fetch_tool.go's g.SetLimit(conc) loop): each
// worker goroutine swallows its own error into the result slot instead of
// returning it from g.Go, so one failing document cannot cancel the
// context the rest of the batch is running under. RunBatch/Stream are
// generic over the Processor's result type, so a caller needing only
// chunks and one needing a whole pipeline.Result share the same worker
// pool, retry loop, and byte-weighted semaphore.
package parallel

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/fluxdoc/fluxdoc/pkg/chunker"
	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/log"
	"github.com/fluxdoc/fluxdoc/pkg/section"
)

// DocumentJob is one unit of batch work: a raw document plus the fingerprint
// material its processor will need to stamp chunk IDs.
type DocumentJob struct {
	Name string
	Raw  docmodel.RawContent
}

// DocumentResult is one document's outcome. A failed document carries
// Success=false and Err instead of aborting the batch. T is whatever a
// Processor of the matching type produces — []docmodel.DocumentChunk for
// a chunk-only batch, or a richer pipeline.Result when the caller wants
// quality/enrichment metadata alongside the chunks.
type DocumentResult[T any] struct {
	Name    string
	Value   T
	Success bool
	Err     error
	Attempt int
}

// Processor runs the parse-chunk (and optionally enrich/score) pipeline
// for a single already-extracted document. It is supplied by the caller
// (pkg/pipeline) so pkg/parallel stays pipeline-agnostic; T is fixed per
// call to RunBatch/Stream by Go's type inference from proc's signature.
type Processor[T any] func(ctx context.Context, job DocumentJob) (T, error)

// Options configures the worker pool.
type Options struct {
	// MaxParallelism bounds concurrent in-flight documents. Zero or less
	// leaves the worker pool unbounded; DefaultOptions sets it to the
	// caller-supplied CPU count.
	MaxParallelism int
	// MemoryBudgetBytes bounds the aggregate ByteSize of documents being
	// processed concurrently, via a weighted semaphore. A single document
	// larger than the budget is clamped to the full budget rather than
	// deadlocking.
	MemoryBudgetBytes int64
	// BackpressureThreshold bounds the input/output queue depth for the
	// streaming entry point, Stream.
	BackpressureThreshold int
	// MaxRetries is how many additional attempts a failed document gets
	// before its result is recorded as a failure.
	MaxRetries int
	// BaseBackoff is the first retry's delay; each subsequent retry doubles
	// it, plus jitter.
	BaseBackoff time.Duration
	// LargeFileThreshold triggers intra-document sharding in ShardSections
	// when a document's ByteSize exceeds it.
	LargeFileThreshold int64
}

// DefaultOptions returns the documented defaults: CPU-count parallelism
// (resolved by the caller, since this package avoids importing runtime for
// a single call site), a 512MB memory budget, a 1000-item backpressure
// threshold, 3 retries with a 200ms base backoff, and a 100MB large-file
// threshold.
func DefaultOptions(cpuCount int) Options {
	if cpuCount < 1 {
		cpuCount = 1
	}
	return Options{
		MaxParallelism:        cpuCount,
		MemoryBudgetBytes:     512 * 1024 * 1024,
		BackpressureThreshold: 1000,
		MaxRetries:            3,
		BaseBackoff:           200 * time.Millisecond,
		LargeFileThreshold:    100 * 1024 * 1024,
	}
}

// RunBatch processes a fixed slice of jobs concurrently, bounded by
// opts.MaxParallelism goroutines and opts.MemoryBudgetBytes of in-flight
// document size. Results are returned in the same order as jobs; a
// document whose processor fails after retries gets a Success=false result
// instead of aborting the rest of the batch.
func RunBatch[T any](ctx context.Context, jobs []DocumentJob, proc Processor[T], opts Options) []DocumentResult[T] {
	results := make([]DocumentResult[T], len(jobs))
	if len(jobs) == 0 {
		return results
	}

	budget := opts.MemoryBudgetBytes
	if budget <= 0 {
		budget = DefaultOptions(1).MemoryBudgetBytes
	}
	sem := semaphore.NewWeighted(budget)

	g, gctx := errgroup.WithContext(ctx)
	if opts.MaxParallelism > 0 {
		g.SetLimit(opts.MaxParallelism)
	}

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			weight := job.Raw.ByteSize
			if weight <= 0 {
				weight = 1
			}
			if weight > budget {
				weight = budget
			}
			if err := sem.Acquire(gctx, weight); err != nil {
				results[i] = DocumentResult[T]{Name: job.Name, Err: err}
				return nil
			}
			defer sem.Release(weight)

			value, attempt, err := runWithRetry(gctx, proc, job, opts)
			if err != nil {
				log.Logger(gctx).Warn("document processing failed", "document", job.Name, "attempts", attempt, "error", err)
				results[i] = DocumentResult[T]{Name: job.Name, Err: err, Attempt: attempt}
				return nil
			}
			results[i] = DocumentResult[T]{Name: job.Name, Value: value, Success: true, Attempt: attempt}
			return nil
		})
	}

	// g.Wait's own error is always nil here since every worker returns nil;
	// failures travel through the results slice instead, so one document's
	// error can never cancel gctx and starve its siblings.
	_ = g.Wait()
	return results
}

// Stream processes an open-ended channel of jobs, bounding queue depth at
// opts.BackpressureThreshold on both sides so a slow consumer throttles the
// producer instead of results piling up unbounded in memory.
func Stream[T any](ctx context.Context, jobs <-chan DocumentJob, proc Processor[T], opts Options) <-chan DocumentResult[T] {
	threshold := opts.BackpressureThreshold
	if threshold <= 0 {
		threshold = DefaultOptions(1).BackpressureThreshold
	}
	out := make(chan DocumentResult[T], threshold)

	budget := opts.MemoryBudgetBytes
	if budget <= 0 {
		budget = DefaultOptions(1).MemoryBudgetBytes
	}
	sem := semaphore.NewWeighted(budget)

	go func() {
		defer close(out)
		g, gctx := errgroup.WithContext(ctx)
		if opts.MaxParallelism > 0 {
			g.SetLimit(opts.MaxParallelism)
		}

		for job := range jobs {
			job := job
			g.Go(func() error {
				weight := job.Raw.ByteSize
				if weight <= 0 {
					weight = 1
				}
				if weight > budget {
					weight = budget
				}
				var res DocumentResult[T]
				if err := sem.Acquire(gctx, weight); err != nil {
					res = DocumentResult[T]{Name: job.Name, Err: err}
				} else {
					value, attempt, err := runWithRetry(gctx, proc, job, opts)
					sem.Release(weight)
					if err != nil {
						res = DocumentResult[T]{Name: job.Name, Err: err, Attempt: attempt}
					} else {
						res = DocumentResult[T]{Name: job.Name, Value: value, Success: true, Attempt: attempt}
					}
				}
				select {
				case out <- res:
				case <-ctx.Done():
				}
				return nil
			})
		}
		_ = g.Wait()
	}()

	return out
}

// runWithRetry calls proc, retrying up to opts.MaxRetries additional times
// on error with exponential backoff plus jitter. No retry library appears
// anywhere in the retrieved corpus; a backoff loop this short does not earn
// a dependency of its own.
func runWithRetry[T any](ctx context.Context, proc Processor[T], job DocumentJob, opts Options) (T, int, error) {
	var zero T
	base := opts.BaseBackoff
	if base <= 0 {
		base = DefaultOptions(1).BaseBackoff
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		value, err := proc(ctx, job)
		if err == nil {
			return value, attempt + 1, nil
		}
		lastErr = err
		if attempt == maxRetries || ctx.Err() != nil {
			break
		}
		delay := base * time.Duration(1<<uint(attempt))
		delay += time.Duration(rand.Int63n(int64(base)))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, attempt + 1, ctx.Err()
		}
	}
	return zero, maxRetries + 1, lastErr
}

// ShardSections partitions root's top-level children into shardCount
// contiguous groups, each wrapped in its own synthetic root, so a very
// large document's chunking work can be fanned out across workers instead
// of tokenized as a single tree. Each shard keeps its children's original
// Span offsets, so chunk positions stay valid against the source document
// without any rewriting.
func ShardSections(root *section.Section, shardCount int) []*section.Section {
	children := root.Children()
	if shardCount < 1 {
		shardCount = 1
	}
	if len(children) == 0 {
		return []*section.Section{root}
	}
	if shardCount > len(children) {
		shardCount = len(children)
	}

	shards := make([]*section.Section, 0, shardCount)
	base := len(children) / shardCount
	extra := len(children) % shardCount
	idx := 0
	for i := 0; i < shardCount; i++ {
		n := base
		if i < extra {
			n++
		}
		shardRoot := section.NewRoot(root.Title())
		for _, c := range children[idx : idx+n] {
			shardRoot.AdoptChild(c)
		}
		shards = append(shards, shardRoot)
		idx += n
	}
	return shards
}

// MergeShardResults concatenates per-shard chunk lists in shard order and
// re-stamps Sequence, Total, and ID across the combined list, so the
// document-wide numbering is contiguous regardless of how many shards
// produced it.
func MergeShardResults(shardResults [][]docmodel.DocumentChunk, contentFingerprint, optionsFingerprint string) []docmodel.DocumentChunk {
	var combined []docmodel.DocumentChunk
	for _, r := range shardResults {
		combined = append(combined, r...)
	}
	return chunker.StampChunks(combined, contentFingerprint, optionsFingerprint)
}
