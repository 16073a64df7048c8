package enrich

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
)

// EdgeKind discriminates a ChunkEdge's relationship type.
type EdgeKind string

const (
	// EdgeSequential connects adjacent chunks by sequence order.
	EdgeSequential EdgeKind = "sequential"
	// EdgeHierarchical connects a chunk to another whose heading path is a
	// strict prefix of its own.
	EdgeHierarchical EdgeKind = "hierarchical"
	// EdgeSharedEntity connects two chunks within SharedEntityWindow
	// sequence positions of each other that mention the same entity.
	EdgeSharedEntity EdgeKind = "shared_entity"
	// EdgeSemantic, EdgeReference, and EdgeContrast are discovered by an
	// LLM relationship-finder rather than derived structurally.
	EdgeSemantic  EdgeKind = "semantic"
	EdgeReference EdgeKind = "reference"
	EdgeContrast  EdgeKind = "contrast"
)

// ChunkNode is one graph node: a chunk's identity plus the enrichment
// fields the graph reasons about, so graph consumers don't need the full
// DocumentChunk.
type ChunkNode struct {
	ChunkID     string
	Sequence    int
	HeadingPath []string
	Summary     string
	Keywords    []string
}

// ChunkEdge is a directed relationship between two chunks.
type ChunkEdge struct {
	FromChunkID string
	ToChunkID   string
	Kind        EdgeKind
	Confidence  float64
}

// Graph is the enricher's relationship graph: parallel node/edge slices
// referencing chunks by ID rather than by pointer, so there are no heap
// cycles to collect.
type Graph struct {
	Nodes []ChunkNode
	Edges []ChunkEdge
}

// GraphOptions configures structural edge derivation.
type GraphOptions struct {
	// SharedEntityWindow bounds how far apart (in sequence) two chunks
	// sharing an entity may be and still get a SharedEntity edge.
	SharedEntityWindow int
	// MinEdgeConfidence filters LLM-discovered edges below this
	// confidence.
	MinEdgeConfidence float64
	// MaxEdgesPerChunk caps the LLM-discovered edges kept per source
	// chunk, highest confidence first.
	MaxEdgesPerChunk int
}

// DefaultGraphOptions returns spec.md §4.9's defaults: a 10-chunk shared
// entity window, 0.5 minimum confidence, 10 max edges per chunk.
func DefaultGraphOptions() GraphOptions {
	return GraphOptions{SharedEntityWindow: 10, MinEdgeConfidence: 0.5, MaxEdgesPerChunk: 10}
}

// properNounPattern approximates an entity mention as a run of one or more
// capitalized words, the same heuristic pkg/quality uses for proper-noun
// density: no named-entity-recognition library appears anywhere in the
// retrieved corpus.
var properNounPattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\b`)

// extractEntities returns the distinct capitalized-word-run candidates in
// text, in first-seen order.
func extractEntities(text string) []string {
	matches := properNounPattern.FindAllString(text, -1)
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// BuildGraph derives the Sequential, Hierarchical, and SharedEntity edges
// from a finished chunk list. LLM-discovered edges (Semantic/Reference/
// Contrast) are added separately by DiscoverRelationships, since they
// require a RelationshipFinder and a network round trip.
func BuildGraph(chunks []docmodel.DocumentChunk, opts GraphOptions) Graph {
	if opts.SharedEntityWindow <= 0 {
		opts.SharedEntityWindow = DefaultGraphOptions().SharedEntityWindow
	}

	g := Graph{Nodes: make([]ChunkNode, len(chunks))}
	entities := make([][]string, len(chunks))
	for i, c := range chunks {
		g.Nodes[i] = ChunkNode{ChunkID: c.ID, Sequence: c.Sequence, HeadingPath: c.HeadingPath}
		entities[i] = extractEntities(c.Content)
	}

	for i := 0; i < len(chunks)-1; i++ {
		g.Edges = append(g.Edges, ChunkEdge{FromChunkID: chunks[i].ID, ToChunkID: chunks[i+1].ID, Kind: EdgeSequential, Confidence: 1})
	}

	for i, a := range chunks {
		for j, b := range chunks {
			if i == j {
				continue
			}
			if isStrictHeadingPrefix(b.HeadingPath, a.HeadingPath) {
				g.Edges = append(g.Edges, ChunkEdge{FromChunkID: a.ID, ToChunkID: b.ID, Kind: EdgeHierarchical, Confidence: 1})
			}
		}
	}

	for i := range chunks {
		for j := i + 1; j < len(chunks) && j-i <= opts.SharedEntityWindow; j++ {
			if sharesEntity(entities[i], entities[j]) {
				g.Edges = append(g.Edges, ChunkEdge{FromChunkID: chunks[i].ID, ToChunkID: chunks[j].ID, Kind: EdgeSharedEntity, Confidence: 1})
			}
		}
	}

	return g
}

// isStrictHeadingPrefix reports whether prefix is a strict, proper prefix
// of path (prefix shorter than path, and every element matches).
func isStrictHeadingPrefix(prefix, path []string) bool {
	if len(prefix) == 0 || len(prefix) >= len(path) {
		return false
	}
	for i, p := range prefix {
		if path[i] != p {
			return false
		}
	}
	return true
}

func sharesEntity(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, e := range a {
		set[strings.ToLower(e)] = true
	}
	for _, e := range b {
		if set[strings.ToLower(e)] {
			return true
		}
	}
	return false
}

// AddDiscoveredEdges merges LLM-discovered edges into g, filtering by
// opts.MinEdgeConfidence and capping at opts.MaxEdgesPerChunk per source
// chunk (highest confidence kept first).
func AddDiscoveredEdges(g Graph, discovered []ChunkEdge, opts GraphOptions) Graph {
	minConfidence := opts.MinEdgeConfidence
	if minConfidence <= 0 {
		minConfidence = DefaultGraphOptions().MinEdgeConfidence
	}
	maxPerChunk := opts.MaxEdgesPerChunk
	if maxPerChunk <= 0 {
		maxPerChunk = DefaultGraphOptions().MaxEdgesPerChunk
	}

	byFrom := make(map[string][]ChunkEdge)
	for _, e := range discovered {
		if e.Confidence < minConfidence {
			continue
		}
		byFrom[e.FromChunkID] = append(byFrom[e.FromChunkID], e)
	}
	for from, edges := range byFrom {
		sortByConfidenceDesc(edges)
		if len(edges) > maxPerChunk {
			edges = edges[:maxPerChunk]
		}
		g.Edges = append(g.Edges, edges...)
		byFrom[from] = edges
	}
	return g
}

func sortByConfidenceDesc(edges []ChunkEdge) {
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].Confidence > edges[j].Confidence
	})
}
