package builtin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fluxdoc/fluxdoc/pkg/doccontext"
	"github.com/fluxdoc/fluxdoc/pkg/log"
	"github.com/fluxdoc/fluxdoc/pkg/props"
)

// InjectSourcePath returns a transform that injects the source document's
// path from context into the property bag at the given key. If the key
// already exists, injection is skipped. If the key is empty, it defaults to
// "source_path".
func InjectSourcePath(key string) props.Transform {
	if key == "" {
		key = "source_path"
	}
	return func(ctx context.Context, bag props.Bag) error {
		logger := log.Logger(ctx)

		if bag == nil {
			logger.Error("property bag is nil")
			return fmt.Errorf("InjectSourcePath: bag cannot be nil")
		}

		if _, exists := bag[key]; exists {
			logger.Debug("source path key already present, skipping injection",
				slog.String("key", key))
			return nil
		}

		fi, ok := doccontext.FileInfoFrom(ctx)
		if !ok || fi.Path == "" {
			logger.Error("source path not available in context")
			return fmt.Errorf("InjectSourcePath: source path not found in context")
		}

		bag[key] = fi.Path
		logger.Debug("injected source path into props",
			slog.String("key", key),
			slog.String("path", fi.Path))

		return nil
	}
}
