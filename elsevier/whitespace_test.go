package elsevier

import (
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/elsxml/markup"
)

var hsp = markup.MustCompile(".//ce:hsp", Namespaces())

func parseFragment(t *testing.T, body string) *xmlquery.Node {
	t.Helper()
	doc, err := markup.Parse([]byte(`<ce:para xmlns:ce="` + NSCommon + `">` + body + `</ce:para>`))
	require.NoError(t, err)
	return markup.Root(doc)
}

func TestFixWhitespaceSingleSpace(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"between words", `alpha<ce:hsp sp="0.25"/>beta`, "alpha beta"},
		{"target ends with space", `alpha <ce:hsp/>beta`, "alpha beta"},
		{"tail starts with space", `alpha<ce:hsp/> beta`, "alpha beta"},
		{"after sibling", `<ce:italic>x</ce:italic>a<ce:hsp/>b`, "xa b"},
		{"at start", `<ce:hsp/>beta`, "beta"},
		{"leading text", `alpha<ce:hsp>beta</ce:hsp>`, "alpha beta"},
		{"between elements", `<ce:small-caps>a</ce:small-caps><ce:hsp/><ce:small-caps>b</ce:small-caps>`, "a b"},
		{"between nested elements", `<ce:bold>a<ce:italic>b</ce:italic></ce:bold><ce:hsp/><ce:bold>c</ce:bold>`, "ab c"},
		{"parent text before element", `alpha<ce:hsp/><ce:bold>b</ce:bold>`, "alpha b"},
		{"next element starts with space", `<ce:bold>a</ce:bold><ce:hsp/><ce:bold> b</ce:bold>`, "a b"},
		{"empty previous element", `<ce:bold/><ce:hsp/><ce:bold>b</ce:bold>`, "b"},
		{"text before empty element", `x<ce:bold/><ce:hsp/><ce:bold>b</ce:bold>`, "x b"},
		{"at end", `<ce:bold>a</ce:bold><ce:hsp/>`, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseFragment(t, tt.body)
			FixWhitespace(root, hsp)
			assert.Equal(t, tt.want, root.InnerText())
			assert.Empty(t, hsp.Select(root))
		})
	}
}

func TestFixWhitespaceKeepsChildren(t *testing.T) {
	root := parseFragment(t, `a<ce:hsp>t<ce:bold>b</ce:bold></ce:hsp>c`)
	FixWhitespace(root, hsp)

	kids := markup.Children(root)
	require.Len(t, kids, 1)
	assert.Equal(t, "bold", kids[0].Data)
	assert.Equal(t, "a t", markup.Text(root))
	assert.Equal(t, "c", markup.Tail(kids[0]))
}

func TestCollapseWhitespace(t *testing.T) {
	root := parseFragment(t, "\n  <ce:a>x</ce:a>\n  <ce:b> </ce:b>y\n")
	CollapseWhitespace(root)

	kids := markup.Children(root)
	require.Len(t, kids, 2)
	assert.Equal(t, "", markup.Text(root))
	assert.Equal(t, "", markup.Tail(kids[0]))
	assert.Equal(t, "", markup.Text(kids[1]))
	assert.Equal(t, "y\n", markup.Tail(kids[1]))
}

func TestCollapseWhitespaceKeepsJunctionSpace(t *testing.T) {
	root := parseFragment(t, `<ce:small-caps>a</ce:small-caps><ce:hsp/><ce:small-caps>b</ce:small-caps>`)
	FixWhitespace(root, hsp)
	CollapseWhitespace(root)

	assert.Equal(t, "a b", root.InnerText())
}
