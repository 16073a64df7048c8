// Package doccontext carries document-scoped metadata through the ingestion
// pipeline via context.Context.
//
// FileInfo holds the source path and derived title for the document
// currently being read, parsed, or chunked:
//
//	ctx = doccontext.WithFileInfo(ctx, doccontext.FileInfo{
//	    Path:  "reports/q3.pdf",
//	    Title: "Q3 Report",
//	})
//
//	info, ok := doccontext.FileInfoFrom(ctx)
//
// Structured logging is carried separately by pkg/log; readers, parsers, and
// strategies pull both out of the same context as they descend the pipeline.
package doccontext
