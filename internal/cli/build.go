package cli

import (
	"fmt"

	"github.com/fluxdoc/fluxdoc/pkg/cache"
	"github.com/fluxdoc/fluxdoc/pkg/chunker/strategy"
	"github.com/fluxdoc/fluxdoc/pkg/output"
	outputBuiltin "github.com/fluxdoc/fluxdoc/pkg/output/builtin"
	"github.com/fluxdoc/fluxdoc/pkg/parser/builtin"
	"github.com/fluxdoc/fluxdoc/pkg/pipeline"
	readerBuiltin "github.com/fluxdoc/fluxdoc/pkg/reader/builtin"
	"github.com/fluxdoc/fluxdoc/pkg/tokenizer"
	tokenizerBuiltin "github.com/fluxdoc/fluxdoc/pkg/tokenizer/builtin"

	"github.com/fluxdoc/fluxdoc/internal/config"
)

// createTokenizer resolves a tokenizer by name: "char" and "word" select
// the two stock estimators, anything else is handed to tiktoken as an
// encoding name, the same three-way switch the teacher's createTokenizer
// (cmd/chunky/chunking.go) runs.
func createTokenizer(name string) (tokenizer.Tokenizer, error) {
	switch name {
	case "char":
		return tokenizerBuiltin.NewCharCountTokenizer(), nil
	case "word":
		return tokenizerBuiltin.NewWordCountTokenizer(), nil
	default:
		tok, err := tokenizerBuiltin.NewTiktokenTokenizer(tokenizerBuiltin.WithEncoding(name))
		if err != nil {
			return nil, fmt.Errorf("create tiktoken tokenizer with encoding %q: %w", name, err)
		}
		return tok, nil
	}
}

// buildPipeline wires a Pipeline from an effective Config: the stock
// reader registry and strategy registry, the resolved tokenizer, and a
// cache decorator when caching is enabled. Enrichment and image-to-text
// are left uninstalled here since this module supplies no concrete LLM
// provider; a caller embedding this command can still pre-populate those
// decorators by constructing its own pipeline.Pipeline via pkg/pipeline
// directly instead of going through this CLI.
func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	tok, err := createTokenizer(cfg.Tokenizer)
	if err != nil {
		return nil, err
	}

	var opts []pipeline.Option
	if cfg.CacheEnabled {
		cacheOpts := cache.DefaultOptions()
		cacheOpts.MaxEntries = cfg.CacheMaxEntries
		c, err := cache.New(cacheOpts)
		if err != nil {
			return nil, fmt.Errorf("create cache: %w", err)
		}
		opts = append(opts, pipeline.WithCache(c))
	}

	p := pipeline.New(readerBuiltin.Default(), builtin.DefaultParser, strategy.Default(), tok, opts...)
	return p, nil
}

// serializerFor resolves the whole-document Serializer and per-chunk
// ChunkSerializer for a configured output format.
func serializerFor(format string) (output.Serializer, output.ChunkSerializer, output.Format, error) {
	switch format {
	case "json":
		return outputBuiltin.JSON(), outputBuiltin.JSONChunk(), output.FormatJSON, nil
	case "jsonl":
		return outputBuiltin.JSONL(), outputBuiltin.JSONLChunk(), output.FormatJSONL, nil
	case "markdown":
		return outputBuiltin.Markdown(), outputBuiltin.MarkdownChunk(), output.FormatMarkdown, nil
	default:
		return nil, nil, "", fmt.Errorf("unknown output format %q", format)
	}
}
