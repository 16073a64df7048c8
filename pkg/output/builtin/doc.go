// Package builtin provides the built-in Serializer and ChunkSerializer
// implementations for fluxdoc's three output formats.
//
// JSON and JSONL both render the same Record field set (spec.md §6): id,
// content, start, end, heading_path, sequence, total, quality, density,
// importance, tokens, strategy, props. JSON wraps the chunk list in a
// {"document": ..., "chunks": [...]} envelope; JSONL emits one compact
// object per line with no envelope. Markdown writes only each chunk's
// content, separated by a horizontal rule and preceded by a comment line
// carrying its heading path, sequence, and total; the other Record fields
// do not appear in Markdown output.
package builtin
