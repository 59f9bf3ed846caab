package elsevier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	els := []byte(`<full-text-retrieval-response xmlns="http://www.elsevier.com/xml/svapi/article/dtd"/>`)
	other := []byte(`<article xmlns="http://jats.nlm.nih.gov"/>`)

	tests := []struct {
		name     string
		data     []byte
		filename string
		want     bool
	}{
		{"elsevier without filename", els, "", true},
		{"elsevier xml file", els, "paper.xml", true},
		{"elsevier wrong extension", els, "paper.html", false},
		{"elsevier upper case extension", els, "paper.XML", false},
		{"other xml", other, "paper.xml", false},
		{"single quoted namespace", []byte(`<r xmlns='http://www.elsevier.com/xml/svapi/article/dtd'/>`), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.data, tt.filename))
		})
	}

	r, err := New()
	assert.NoError(t, err)
	assert.True(t, r.Detect(els, "a.xml"))
}
