// Package model provides the generic document model that readers produce.
//
// A [Document] is an ordered list of [Element] values. The concrete types are:
//
//   - [Title], [Heading], [Paragraph], [Caption], [Citation], [Footnote] - text
//     elements sharing [Content] (text, source id, cited reference ids)
//   - [Table] - a caption plus a dense grid of [Cell] values
//   - [Figure] - a caption plus a resolved image URL
//   - [MetaData] - bibliographic fields, nil when absent
//
// Elements are built once by a reader and treated as immutable afterwards.
//
// # Tables
//
// [Table] rows are always rectangular. A cell spanning several rows or
// columns is repeated at every position it covers, so consumers can index the
// grid directly:
//
//	cell := table.GetCell(2, 1)
//	fmt.Println(table.ToMarkdown())
//
// # Output
//
// [Document.ExtractText], [Document.ToMarkdown] and JSON encoding through
// [Document.MarshalJSON] cover the common export needs.
package model
