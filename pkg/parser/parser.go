// Package parser turns extracted RawContent into structurally normalized
// ParsedContent: a heading-indexed section tree, detected language, and a
// structure-confidence score. Parsing never fails the pipeline outright —
// recoverable problems are accumulated into ParsedContent.Warnings instead
// of returned as errors.
package parser

import (
	"context"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
)

// Parser turns a Reader's RawContent into ParsedContent.
type Parser func(ctx context.Context, raw docmodel.RawContent) (docmodel.ParsedContent, error)
