// Package chunker splits ParsedContent into DocumentChunk slices. Each
// splitting approach is a Strategy; pkg/chunker/strategy holds the seven
// concrete implementations plus the Auto selector.
package chunker

import (
	"context"
	"fmt"
	"sync"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/tokenizer"
)

// Strategy splits a parsed document into ordered, positioned chunks.
type Strategy interface {
	// Name identifies the strategy, matching docmodel.ChunkingOptions.StrategyName.
	Name() string
	// Chunk produces the document's chunks under the given options.
	Chunk(ctx context.Context, parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions, tok tokenizer.Tokenizer) ([]docmodel.DocumentChunk, error)
	// EstimateChunkCount returns a cheap rough estimate, used for
	// progress reporting before the real split runs.
	EstimateChunkCount(parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions) int
}

// Registry holds strategies by name.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry returns an empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

// Register adds a strategy, keyed by its Name().
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[s.Name()] = s
}

// Get looks up a strategy by name.
func (r *Registry) Get(name string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[name]
	return s, ok
}

// Names returns every registered strategy name.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		out = append(out, name)
	}
	return out
}

// Chunk resolves opts.StrategyName in the registry and delegates to it.
func (r *Registry) Chunk(ctx context.Context, parsed docmodel.ParsedContent, opts docmodel.ChunkingOptions, tok tokenizer.Tokenizer) ([]docmodel.DocumentChunk, error) {
	s, ok := r.Get(opts.StrategyName)
	if !ok {
		return nil, fmt.Errorf("chunker: unknown strategy %q", opts.StrategyName)
	}
	return s.Chunk(ctx, parsed, opts, tok)
}
