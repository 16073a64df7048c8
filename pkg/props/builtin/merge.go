package builtin

import (
	"context"
	"log/slog"

	"github.com/fluxdoc/fluxdoc/pkg/log"
	"github.com/fluxdoc/fluxdoc/pkg/props"
)

// MergeProps returns a transform that merges additional metadata into a
// property bag. Keys already present in the bag are left unchanged; only
// missing keys are added. Useful for layering default or contextual metadata
// onto a bag without clobbering values a reader or earlier transform already
// set.
func MergeProps(data props.Bag) props.Transform {
	return func(ctx context.Context, bag props.Bag) error {
		logger := log.Logger(ctx)

		if len(data) == 0 {
			logger.Debug("merge props: no data to merge")
			return nil
		}

		merged := 0
		skipped := 0

		for key, value := range data {
			if _, exists := bag[key]; !exists {
				bag[key] = value
				merged++
				logger.Debug("merge props: added key", slog.String("key", key))
			} else {
				skipped++
				logger.Debug("merge props: skipped existing key", slog.String("key", key))
			}
		}

		logger.Debug("merge props: completed",
			slog.Int("merged", merged),
			slog.Int("skipped", skipped))

		return nil
	}
}
