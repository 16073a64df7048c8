package stream

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
)

func TestProduce_EmitsChunksThenDone(t *testing.T) {
	seq := Produce(context.Background(), BackpressureOptions{}, func(ctx context.Context, report func(Stage, float64), yield func(docmodel.DocumentChunk) bool) error {
		report(StageChunking, 0.5)
		yield(docmodel.DocumentChunk{ID: "1"})
		yield(docmodel.DocumentChunk{ID: "2"})
		return nil
	})

	var kinds []Kind
	for r := range seq {
		kinds = append(kinds, r.Kind)
	}
	require.Equal(t, []Kind{KindInProgress, KindChunk, KindChunk, KindDone}, kinds)
}

func TestProduce_ErrorProducesFailed(t *testing.T) {
	seq := Produce(context.Background(), BackpressureOptions{}, func(ctx context.Context, report func(Stage, float64), yield func(docmodel.DocumentChunk) bool) error {
		return errors.New("boom")
	})

	var last ProcessingResult
	for r := range seq {
		last = r
	}
	require.Equal(t, KindFailed, last.Kind)
	require.EqualError(t, last.Err, "boom")
}

func TestProduce_ConsumerBreakStopsEarly(t *testing.T) {
	seq := Produce(context.Background(), BackpressureOptions{}, func(ctx context.Context, report func(Stage, float64), yield func(docmodel.DocumentChunk) bool) error {
		for i := 0; i < 100; i++ {
			if !yield(docmodel.DocumentChunk{ID: "x"}) {
				return nil
			}
		}
		return nil
	})

	count := 0
	for r := range seq {
		if r.Kind == KindChunk {
			count++
		}
		if count == 3 {
			break
		}
	}
	require.Equal(t, 3, count)
}

func TestProduce_CancelledContextProducesFailed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seq := Produce(ctx, BackpressureOptions{}, func(ctx context.Context, report func(Stage, float64), yield func(docmodel.DocumentChunk) bool) error {
		yield(docmodel.DocumentChunk{ID: "1"})
		return nil
	})

	var last ProcessingResult
	for r := range seq {
		last = r
	}
	require.Equal(t, KindFailed, last.Kind)
}

func TestReplay_EmitsAllThenDone(t *testing.T) {
	chunks := []docmodel.DocumentChunk{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	seq := Replay(context.Background(), ReplayOptions{BatchSize: 2}, chunks)

	var kinds []Kind
	for r := range seq {
		kinds = append(kinds, r.Kind)
	}
	require.Equal(t, []Kind{KindChunk, KindChunk, KindChunk, KindDone}, kinds)
}
