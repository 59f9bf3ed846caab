// Package format provides file format detection for the elsxml readers.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// ElsevierNamespace is the default namespace declaration carried by every
// Elsevier full-text retrieval response.
const ElsevierNamespace = `xmlns="http://www.elsevier.com/xml/svapi/article/dtd"`

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// XML indicates a generic XML document.
	XML
	// ElsevierXML indicates an Elsevier full-text XML article.
	ElsevierXML
	// HTML indicates an HTML document.
	HTML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case XML:
		return "XML"
	case ElsevierXML:
		return "ElsevierXML"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case XML, ElsevierXML:
		return ".xml"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// Detect determines file format from filename extension. An extension alone
// cannot tell Elsevier XML from other XML, so .xml files report XML.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xml":
		return XML
	case ".html", ".htm", ".xhtml":
		return HTML
	default:
		return Unknown
	}
}

// DetectFromMagic inspects the leading bytes of data to determine format.
// Elsevier XML is recognised by its namespace declaration anywhere in data.
func DetectFromMagic(data []byte) Format {
	if IsElsevier(data) {
		return ElsevierXML
	}

	trimmed := bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	trimmed = bytes.TrimLeft(trimmed, " \t\r\n")
	if len(trimmed) == 0 {
		return Unknown
	}
	if detectHTMLMagic(trimmed) {
		return HTML
	}
	if trimmed[0] == '<' {
		return XML
	}

	return Unknown
}

// IsElsevier reports whether data contains the exact Elsevier article
// namespace declaration.
func IsElsevier(data []byte) bool {
	return bytes.Contains(data, []byte(ElsevierNamespace))
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	upper := strings.ToUpper(string(head))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
		return true
	}

	return false
}
