// Package builtin provides the stock set of format readers wired into a
// default registry.
package builtin

import "github.com/fluxdoc/fluxdoc/pkg/reader"

// Default returns a registry populated with every builtin reader.
func Default() *reader.Registry {
	r := reader.NewRegistry()
	r.Register(MarkdownEntry)
	r.Register(HTMLEntry)
	r.Register(TextEntry)
	r.Register(JSONEntry)
	r.Register(CSVEntry)
	r.Register(PDFEntry)
	r.Register(DOCXEntry)
	r.Register(XLSXEntry)
	r.Register(PPTXEntry)
	r.Register(HWPEntry)
	r.Register(HWPXEntry)
	return r
}
