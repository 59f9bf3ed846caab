package elsevier

import (
	"errors"
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/rs/zerolog"

	"github.com/tsawler/elsxml/markup"
	"github.com/tsawler/elsxml/model"
)

// ErrReader is returned when the input cannot be read as an Elsevier
// article: the XML is malformed or the response root is missing.
var ErrReader = errors.New("elsevier: unreadable article")

// Reader converts Elsevier XML articles into documents.
type Reader struct {
	log            zerolog.Logger
	selectors      Selectors
	ns             markup.Namespaces
	urlPrefix      string
	imageURLPrefix string

	sel      *compiled
	cleaners []func(*xmlquery.Node)
}

// New creates a Reader. Selector expressions are compiled here, so a bad
// override is reported before any document is parsed.
func New(opts ...Option) (*Reader, error) {
	r := &Reader{
		log:            zerolog.Nop(),
		selectors:      DefaultSelectors(),
		ns:             Namespaces(),
		urlPrefix:      DefaultURLPrefix,
		imageURLPrefix: DefaultImageURLPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}

	sel, err := compileSelectors(r.selectors, r.ns)
	if err != nil {
		return nil, err
	}
	r.sel = sel

	generic := &markup.Cleaner{}
	r.cleaners = []func(*xmlquery.Node){
		generic.Clean,
		func(root *xmlquery.Node) { FixWhitespace(root, sel.hsp) },
		CollapseWhitespace,
		sel.cleaner.Clean,
	}
	return r, nil
}

// Detect reports whether data looks like an Elsevier article.
func (r *Reader) Detect(data []byte, filename string) bool {
	return Detect(data, filename)
}

// Parse converts data into a Document.
func (r *Reader) Parse(data []byte) (*model.Document, error) {
	tree, err := markup.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReader, err)
	}
	root := r.sel.root.First(tree)
	if root == nil {
		return nil, fmt.Errorf("%w: no element matches %s", ErrReader, r.sel.root)
	}

	for _, clean := range r.cleaners {
		clean(root)
	}

	a := newArticle(r, root)
	a.register()
	elements := a.conv.ParseElement(root, a.specials, a.refs)

	r.log.Debug().
		Int("nodes", a.index.Len()).
		Int("elements", len(elements)).
		Msg("parsed article")
	return model.NewDocument(elements...), nil
}

// article is the state of a single Parse call.
type article struct {
	r        *Reader
	sel      *compiled
	root     *xmlquery.Node
	index    *markup.Index
	conv     *markup.Converter
	specials markup.Specials
	refs     markup.Refs

	filenames []string // attachment filenames, loaded on first figure
	loaded    bool
}

func newArticle(r *Reader, root *xmlquery.Node) *article {
	ix := markup.NewIndex(root)
	return &article{
		r:        r,
		sel:      r.sel,
		root:     root,
		index:    ix,
		conv:     markup.NewConverter(ix, r.sel.inline, r.sel.breaks),
		specials: make(markup.Specials),
		refs:     make(markup.Refs),
	}
}

// register fills refs and specials. Later registrations replace earlier
// ones for the same node.
func (a *article) register() {
	for _, n := range a.sel.reference.Select(a.root) {
		if p, ok := a.id(n.Parent); ok {
			a.refs[p] = append(a.refs[p], markup.ParseReference(n)...)
		}
	}

	ignores := a.sel.ignore.Select(a.root)
	for _, n := range ignores {
		a.set(n, []model.Element{})
	}

	metas := a.sel.metadata.Select(a.root)
	for _, n := range metas {
		a.set(n, []model.Element{a.metadata(n)})
	}

	titles := a.sel.title.Select(a.root)
	for _, n := range titles {
		a.set(n, []model.Element{a.conv.ParseText(n, model.ElementTypeTitle, a.specials, a.refs)})
	}

	headings := a.sel.heading.Select(a.root)
	for _, n := range headings {
		a.set(n, []model.Element{a.conv.ParseText(n, model.ElementTypeHeading, a.specials, a.refs)})
	}

	figures := a.sel.figure.Select(a.root)
	for _, n := range figures {
		a.set(n, []model.Element{a.figure(n)})
	}

	tables := a.sel.table.Select(a.root)
	for _, n := range tables {
		a.set(n, []model.Element{a.table(n)})
	}

	citations := a.sel.citation.Select(a.root)
	for _, n := range citations {
		a.set(n, []model.Element{a.conv.ParseText(n, model.ElementTypeCitation, a.specials, a.refs)})
	}

	a.r.log.Debug().
		Int("refs", len(a.refs)).
		Int("ignored", len(ignores)).
		Int("metadata", len(metas)).
		Int("titles", len(titles)).
		Int("headings", len(headings)).
		Int("figures", len(figures)).
		Int("tables", len(tables)).
		Int("citations", len(citations)).
		Msg("registered regions")
}

func (a *article) id(n *xmlquery.Node) (int, bool) {
	if n == nil {
		return 0, false
	}
	return a.index.ID(n)
}

func (a *article) set(n *xmlquery.Node, els []model.Element) {
	if i, ok := a.id(n); ok {
		a.specials[i] = els
	}
}

// caption converts n into a Caption, or an empty one when n is nil.
func (a *article) caption(n *xmlquery.Node) *model.Caption {
	if n == nil {
		return &model.Caption{}
	}
	c, _ := a.conv.ParseText(n, model.ElementTypeCaption, a.specials, a.refs).(*model.Caption)
	if c == nil {
		return &model.Caption{}
	}
	return c
}
