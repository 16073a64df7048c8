// Package props implements the open, order-independent property bag attached
// to chunks and chunking options throughout the pipeline. It generalizes what
// used to be a Markdown-only YAML frontmatter map into a general-purpose
// key/value annotation store that any reader, parser, strategy, or enricher
// can read from and write to.
package props

import "encoding/json"

// Bag is a flat, JSON-serializable map of arbitrary metadata. Readers seed it
// with source-level facts (frontmatter, spreadsheet cell styles, slide notes);
// strategies and the quality engine add derived facts (selected strategy,
// density scores); callers may merge in their own fields via options.
type Bag map[string]any

// EmptyBag returns a new, empty property bag.
func EmptyBag() Bag { return make(Bag) }

// Clone performs a deep clone of the bag using JSON serialization.
func (b Bag) Clone() Bag {
	if b == nil {
		return EmptyBag()
	}
	raw, _ := json.Marshal(b)
	var out Bag
	_ = json.Unmarshal(raw, &out)
	if out == nil {
		out = EmptyBag()
	}
	return out
}

// View is a read-only projection over a Bag. It is handed to transforms and
// strategies that must inspect properties without being able to mutate the
// bag backing a chunk or document out from under concurrent readers.
type View interface {
	// Get retrieves a value by key, returning a deep copy.
	Get(key string) (any, bool)

	// Keys returns all keys present in the bag.
	Keys() []string

	// AsMap returns a deep copy of the entire bag.
	AsMap() map[string]any
}

// roBag is the wrapper type implementing View over a deep-copied snapshot.
type roBag struct {
	m Bag
}

func (ro roBag) Get(key string) (any, bool) {
	v, ok := ro.m[key]
	return deepCopyJSON(v), ok
}

func (ro roBag) Keys() []string {
	keys := make([]string, 0, len(ro.m))
	for k := range ro.m {
		keys = append(keys, k)
	}
	return keys
}

func (ro roBag) AsMap() map[string]any {
	return ro.m.Clone()
}

// View returns a read-only interface over a deep-copied snapshot of the bag.
// Because the copy is taken eagerly, the returned View is safe to retain and
// share across goroutines even if the original Bag is mutated afterward.
func (b Bag) View() View {
	return roBag{m: b.Clone()}
}

// deepCopyJSON deep copies a value using JSON serialization.
func deepCopyJSON(v any) any {
	b, _ := json.Marshal(v)
	var out any
	_ = json.Unmarshal(b, &out)
	return out
}
