// Package stream emits a document's chunks lazily as a single cancellable
// iterator, collapsing the async-streams-plus-progress-callback shape into
// one Go 1.23 range-over-func sequence: every consumer loop iteration is a
// cancellation point, and progress updates interleave with chunk results
// instead of arriving on a separate channel.
package stream

import (
	"context"
	"iter"
	"time"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
)

// Stage identifies where processing currently stands.
type Stage int

const (
	StageExtracting Stage = iota
	StageParsing
	StageChunking
	StageCompleted
)

func (s Stage) String() string {
	switch s {
	case StageExtracting:
		return "extracting"
	case StageParsing:
		return "parsing"
	case StageChunking:
		return "chunking"
	case StageCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Kind discriminates a ProcessingResult's variant.
type Kind int

const (
	KindInProgress Kind = iota
	KindChunk
	KindDone
	KindFailed
)

// ProcessingResult is the closed union emitted by a Sequence: exactly one
// of its fields is meaningful, selected by Kind.
type ProcessingResult struct {
	Kind Kind

	// Populated when Kind == KindInProgress.
	Stage           Stage
	StageProgress   float64
	OverallProgress float64

	// Populated when Kind == KindChunk.
	Chunk docmodel.DocumentChunk

	// Populated when Kind == KindFailed.
	Err error
}

func InProgress(stage Stage, stageProgress, overallProgress float64) ProcessingResult {
	return ProcessingResult{Kind: KindInProgress, Stage: stage, StageProgress: stageProgress, OverallProgress: overallProgress}
}

func ChunkResult(c docmodel.DocumentChunk) ProcessingResult {
	return ProcessingResult{Kind: KindChunk, Chunk: c}
}

func Done() ProcessingResult { return ProcessingResult{Kind: KindDone} }

func Failed(err error) ProcessingResult { return ProcessingResult{Kind: KindFailed, Err: err} }

// BackpressureOptions paces a producer against a slow consumer.
type BackpressureOptions struct {
	// BatchSize is how many chunks pass before a pacing delay is inserted.
	BatchSize int
	// Delay is the pacing delay itself.
	Delay time.Duration
}

// DefaultBackpressure returns spec.md §4.7's default: a 10ms delay every
// 100 chunks.
func DefaultBackpressure() BackpressureOptions {
	return BackpressureOptions{BatchSize: 100, Delay: 10 * time.Millisecond}
}

// ReplayOptions paces replay of an already-cached chunk list so a cache
// hit still feels like a stream to the consumer.
type ReplayOptions struct {
	BatchSize int
	Delay     time.Duration
}

// DefaultReplay returns spec.md §4.7's default: 50 chunks per micro-batch,
// a 5ms spacer between batches.
func DefaultReplay() ReplayOptions {
	return ReplayOptions{BatchSize: 50, Delay: 5 * time.Millisecond}
}

// Produce turns a chunk-producing function into a cancellable
// ProcessingResult sequence. yield is called once per chunk as the caller's
// chunking strategy produces it (or, for a cache hit, once per replayed
// chunk); Produce handles progress interleaving, pacing, and the final
// Done/Failed result.
//
// work is the actual extract/parse/chunk (or cache-replay) logic: it calls
// report(stage, stageProgress) to surface progress and yield(chunk) for
// each produced chunk. work returning a non-nil error produces a Failed
// result instead of Done.
func Produce(ctx context.Context, bp BackpressureOptions, work func(ctx context.Context, report func(Stage, float64), yield func(docmodel.DocumentChunk) bool) error) iter.Seq[ProcessingResult] {
	return func(yield func(ProcessingResult) bool) {
		emitted := 0
		cont := true

		report := func(stage Stage, stageProgress float64) {
			if !cont {
				return
			}
			overall := overallProgress(stage, stageProgress)
			if !yield(InProgress(stage, stageProgress, overall)) {
				cont = false
			}
		}

		chunkYield := func(c docmodel.DocumentChunk) bool {
			if !cont || ctx.Err() != nil {
				return false
			}
			if !yield(ChunkResult(c)) {
				cont = false
				return false
			}
			emitted++
			if bp.BatchSize > 0 && emitted%bp.BatchSize == 0 && bp.Delay > 0 {
				select {
				case <-time.After(bp.Delay):
				case <-ctx.Done():
					cont = false
					return false
				}
			}
			return true
		}

		err := work(ctx, report, chunkYield)
		if !cont {
			return
		}
		if ctx.Err() != nil {
			yield(Failed(ctx.Err()))
			return
		}
		if err != nil {
			yield(Failed(err))
			return
		}
		yield(Done())
	}
}

// overallProgress maps a (stage, stage-local progress) pair onto spec.md
// §4.7's overall_progress by giving Extract/Parse/Chunk equal thirds.
func overallProgress(stage Stage, stageProgress float64) float64 {
	base := float64(stage) / 3
	return base + stageProgress/3
}

// Replay re-emits an already-computed chunk list (a cache hit) as a
// ProcessingResult sequence, pacing emission in fixed-size micro-batches
// so a cached result still streams instead of arriving all at once.
func Replay(ctx context.Context, opts ReplayOptions, chunks []docmodel.DocumentChunk) iter.Seq[ProcessingResult] {
	return func(yield func(ProcessingResult) bool) {
		for i, c := range chunks {
			if ctx.Err() != nil {
				yield(Failed(ctx.Err()))
				return
			}
			if !yield(ChunkResult(c)) {
				return
			}
			if opts.BatchSize > 0 && (i+1)%opts.BatchSize == 0 && opts.Delay > 0 {
				select {
				case <-time.After(opts.Delay):
				case <-ctx.Done():
					yield(Failed(ctx.Err()))
					return
				}
			}
		}
		yield(Done())
	}
}
