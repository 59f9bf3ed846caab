// Package elsevier reads Elsevier full-text retrieval XML into a
// model.Document.
//
// A Reader locates the article root, repairs inline whitespace markup,
// removes decorative tags and then converts the tree in document order.
// Titles, section headings, tables, figures, bibliography entries and the
// xocs metadata block are converted by dedicated mappers; every other text
// becomes a Paragraph.
//
//	r, err := elsevier.New(elsevier.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	doc, err := r.Parse(data)
//
// Readers are immutable after New and safe for concurrent use.
package elsevier
