package format

import (
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{XML, "XML"},
		{ElsevierXML, "ElsevierXML"},
		{HTML, "HTML"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{XML, ".xml"},
		{ElsevierXML, ".xml"},
		{HTML, ".html"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"article.xml", XML},
		{"article.XML", XML},
		{"/path/to/S0013468616301463.xml", XML},
		{"page.html", HTML},
		{"page.htm", HTML},
		{"article.pdf", Unknown},
		{"article", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Format
	}{
		{"elsevier", `<?xml version="1.0"?><full-text-retrieval-response xmlns="http://www.elsevier.com/xml/svapi/article/dtd"/>`, ElsevierXML},
		{"plain xml", `<?xml version="1.0"?><root/>`, XML},
		{"xml with bom", "\xef\xbb\xbf<root/>", XML},
		{"leading whitespace", "\n  <root/>", XML},
		{"html doctype", `<!DOCTYPE html><html></html>`, HTML},
		{"html tag", `<html><body></body></html>`, HTML},
		{"xhtml", `<?xml version="1.0"?><html xmlns="http://www.w3.org/1999/xhtml"></html>`, HTML},
		{"other namespace", `<root xmlns="http://www.elsevier.com/xml/svapi/abstract/dtd"/>`, XML},
		{"text", "hello", Unknown},
		{"empty", "", Unknown},
		{"whitespace", "   ", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic([]byte(tt.data)); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsElsevier(t *testing.T) {
	if !IsElsevier([]byte(`<a xmlns="http://www.elsevier.com/xml/svapi/article/dtd">`)) {
		t.Error("exact namespace declaration should match")
	}
	if IsElsevier([]byte(`<a xmlns='http://www.elsevier.com/xml/svapi/article/dtd'>`)) {
		t.Error("single-quoted declaration is not the exact string")
	}
	if IsElsevier([]byte(`http://www.elsevier.com/xml/svapi/article/dtd`)) {
		t.Error("bare URI without xmlns should not match")
	}
}
