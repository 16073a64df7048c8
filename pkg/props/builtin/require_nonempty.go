package builtin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fluxdoc/fluxdoc/pkg/log"
	"github.com/fluxdoc/fluxdoc/pkg/props"
)

// RequireNonEmptyString returns a transform that validates the presence and
// content of a string field in the property bag. The field must exist, hold
// a string value, and contain non-whitespace content.
//
// This generalizes the teacher's summary-field check into a reusable
// validator; pkg/enrich uses it to enforce that an enriched chunk carries a
// non-empty "summary" before its enrichment props are applied.
func RequireNonEmptyString(field string) props.Transform {
	return func(ctx context.Context, bag props.Bag) error {
		logger := log.Logger(ctx)

		if bag == nil {
			logger.Error("property bag is nil")
			return fmt.Errorf("RequireNonEmptyString: bag cannot be nil")
		}

		raw, ok := bag[field]
		if !ok {
			logger.Error("required field missing from props", slog.String("field", field))
			return fmt.Errorf("RequireNonEmptyString: props missing required %q field", field)
		}

		s, ok := raw.(string)
		if !ok {
			logger.Error("required field is not a string",
				slog.String("field", field),
				slog.String("type", fmt.Sprintf("%T", raw)))
			return fmt.Errorf("RequireNonEmptyString: %q field must be a string, got %T", field, raw)
		}

		if strings.TrimSpace(s) == "" {
			logger.Error("required field is empty or whitespace", slog.String("field", field))
			return fmt.Errorf("RequireNonEmptyString: %q field cannot be empty", field)
		}

		logger.Debug("required field validated", slog.String("field", field), slog.Int("length", len(s)))

		return nil
	}
}
