// Package transform turns asset files into item records.
//
// For each File, a Transformer:
//   - derives the FileTypeInfo from the file name (optionally overridden),
//   - resolves the parent item and the record output path from Options,
//   - loads the existing record or creates a new item,
//   - reparents it and synchronizes its file fields from the content,
//   - hands it to a Sink that writes it to disk or replaces the file content.
//
// Files are processed one at a time; nothing is shared between files.
package transform
