// Package reader extracts docmodel.RawContent from raw document bytes. A
// Registry dispatches to a format-specific Reader by file extension first,
// falling back to magic-byte sniffing when the extension is missing or
// unrecognized.
package reader

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/errs"
)

// Reader extracts RawContent from a byte stream. name is the source's
// filename or logical path, used for title/format hints and error messages.
type Reader func(ctx context.Context, r io.Reader, name string) (docmodel.RawContent, error)

// Entry describes one registered Reader: its canonical format name, the
// file extensions it claims, and a MIME predicate used during magic-byte
// fallback dispatch.
type Entry struct {
	Format     string
	Extensions []string
	MimeMatch  func(mime string) bool
	Read       Reader
}

// Registry holds the set of known Readers, dispatched by extension first
// and by sniffed MIME type second.
type Registry struct {
	byExt map[string]Entry
	all   []Entry
}

// NewRegistry returns an empty registry. Use Register to populate it, or
// Default for the full builtin format set.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]Entry)}
}

// Register adds an entry, indexing it by each of its extensions
// (lowercased, with a leading dot, e.g. ".md").
func (r *Registry) Register(e Entry) {
	r.all = append(r.all, e)
	for _, ext := range e.Extensions {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// Read dispatches to the best-matching Reader for name, first by extension,
// then by sniffing the first 3072 bytes of content for a MIME type.
func (r *Registry) Read(ctx context.Context, content io.Reader, name string) (docmodel.RawContent, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if entry, ok := r.byExt[ext]; ok {
		return entry.Read(ctx, content, name)
	}

	buf, err := io.ReadAll(content)
	if err != nil {
		return docmodel.RawContent{}, err
	}

	mtype := mimetype.Detect(buf)
	for mtype != nil {
		for _, entry := range r.all {
			if entry.MimeMatch != nil && entry.MimeMatch(mtype.String()) {
				return entry.Read(ctx, bytes.NewReader(buf), name)
			}
		}
		mtype = mtype.Parent()
	}

	return docmodel.RawContent{}, errs.New(errs.UnsupportedFormat, "no reader matches "+name)
}

// Extensions returns every extension the registry recognizes, for CLI help
// text and --format validation.
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		out = append(out, ext)
	}
	return out
}
