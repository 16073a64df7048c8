// Package strategy provides the stock set of chunking strategies wired into
// a default registry: FixedSize, Paragraph, Semantic, Intelligent, Smart,
// Hierarchical, MemoryOptimizedIntelligent, and Auto.
package strategy

import "github.com/fluxdoc/fluxdoc/pkg/chunker"

// Default registers every built-in strategy, including Auto, which holds a
// reference back to the same registry so it can delegate to whichever
// strategy its decision procedure selects.
func Default() *chunker.Registry {
	reg := chunker.NewRegistry()
	reg.Register(FixedSize())
	reg.Register(Paragraph())
	reg.Register(Semantic())
	reg.Register(Intelligent())
	reg.Register(Smart())
	reg.Register(Hierarchical())
	reg.Register(MemoryOptimizedIntelligent())
	reg.Register(Auto(reg))
	return reg
}
