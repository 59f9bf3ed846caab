package elsevier

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/tsawler/elsxml/markup"
)

// Namespace URIs used by Elsevier full-text retrieval responses.
const (
	NSArticle = "http://www.elsevier.com/xml/svapi/article/dtd"
	NSCommon  = "http://www.elsevier.com/xml/common/dtd"
	NSXocs    = "http://www.elsevier.com/xml/xocs/dtd"
	NSMathML  = "http://www.w3.org/1998/Math/MathML"
	NSXLink   = "http://www.w3.org/1999/xlink"
	NSPrism   = "http://prismstandard.org/namespaces/basic/2.0/"
)

// Namespaces returns the prefix table the selectors are written against.
func Namespaces() markup.Namespaces {
	return markup.Namespaces{
		"default": NSArticle,
		"bk":      "http://www.elsevier.com/xml/bk/dtd",
		"cals":    "http://www.elsevier.com/xml/common/cals/dtd",
		"ce":      NSCommon,
		"ja":      "http://www.elsevier.com/xml/ja/dtd",
		"mml":     NSMathML,
		"sa":      "http://www.elsevier.com/xml/common/struct-aff/dtd",
		"sb":      "http://www.elsevier.com/xml/common/struct-bib/dtd",
		"tb":      "http://www.elsevier.com/xml/common/table/dtd",
		"xlink":   NSXLink,
		"xocs":    NSXocs,
		"dc":      "http://purl.org/dc/elements/1.1/",
		"dcterms": "http://purl.org/dc/terms/",
		"prism":   NSPrism,
		"xsi":     "http://www.w3.org/2001/XMLSchema-instance",
	}
}

// Selectors holds the XPath expressions that locate each region of an
// article. Expressions starting with ".//" are evaluated relative to the
// region they refine; the rest relative to the response root. An empty
// expression matches nothing.
type Selectors struct {
	Root string `yaml:"root"`

	Title   string `yaml:"title"`
	Heading string `yaml:"heading"`

	Table         string `yaml:"table"`
	TableCaption  string `yaml:"table_caption"`
	TableHeadRow  string `yaml:"table_head_row"`
	TableBodyRow  string `yaml:"table_body_row"`
	TableCell     string `yaml:"table_cell"`
	TableFootnote string `yaml:"table_footnote"`

	Figure         string `yaml:"figure"`
	FigureCaption  string `yaml:"figure_caption"`
	FigureLink     string `yaml:"figure_link"`
	FigureFilename string `yaml:"figure_filename"`

	Reference string `yaml:"reference"`
	Citation  string `yaml:"citation"`

	Metadata          string `yaml:"metadata"`
	MetadataTitle     string `yaml:"metadata_title"`
	MetadataAuthor    string `yaml:"metadata_author"`
	MetadataPublisher string `yaml:"metadata_publisher"`
	MetadataJournal   string `yaml:"metadata_journal"`
	MetadataDate      string `yaml:"metadata_date"`
	MetadataLanguage  string `yaml:"metadata_language"`
	MetadataVolume    string `yaml:"metadata_volume"`
	MetadataIssue     string `yaml:"metadata_issue"`
	MetadataFirstPage string `yaml:"metadata_firstpage"`
	MetadataLastPage  string `yaml:"metadata_lastpage"`
	MetadataDOI       string `yaml:"metadata_doi"`
	MetadataPII       string `yaml:"metadata_pii"`
	MetadataPDFURL    string `yaml:"metadata_pdf_url"`
	MetadataHTMLURL   string `yaml:"metadata_html_url"`

	Hsp    string   `yaml:"hsp"`
	Strip  []string `yaml:"strip"`
	Kill   []string `yaml:"kill"`
	Ignore []string `yaml:"ignore"`

	// Inline lists prefixed element names that continue the text of their
	// parent, Break those that end it.
	Inline []string `yaml:"inline"`
	Break  []string `yaml:"break"`
}

// DefaultSelectors returns the selector table for the Elsevier schema.
func DefaultSelectors() Selectors {
	return Selectors{
		Root: "//default:full-text-retrieval-response",

		Title:   ".//dc:title",
		Heading: ".//ce:section-title",

		Table:         ".//ce:table",
		TableCaption:  ".//ce:caption",
		TableHeadRow:  ".//cals:thead//cals:row",
		TableBodyRow:  ".//cals:tbody//cals:row",
		TableCell:     ".//ce:entry",
		TableFootnote: ".//ce:table-footnote",

		Figure:         ".//ce:figure",
		FigureCaption:  ".//ce:caption",
		FigureLink:     ".//ce:link",
		FigureFilename: ".//xocs:attachment//xocs:filename",

		Reference: ".//ce:cross-ref | .//ce:cross-refs",
		Citation:  ".//ce:bib-reference",

		Metadata:          ".//xocs:meta",
		MetadataTitle:     ".//xocs:normalized-article-title",
		MetadataAuthor:    ".//xocs:normalized-first-auth-surname",
		MetadataPublisher: ".//xocs:copyright-line",
		MetadataJournal:   ".//xocs:srctitle",
		MetadataDate:      ".//xocs:available-online-date | .//xocs:orig-load-date",
		MetadataLanguage:  ".//xocs:language",
		MetadataVolume:    ".//xocs:vol-first | .//xocs:volume-list//xocs:volume",
		MetadataIssue:     ".//xocs:issns//xocs:issn-primary-formatted",
		MetadataFirstPage: ".//xocs:first-fp",
		MetadataLastPage:  ".//xocs:last-lp",
		MetadataDOI:       ".//xocs:doi | .//xocs:eii",
		MetadataPII:       ".//xocs:pii-unformatted",

		Hsp: ".//ce:hsp",
		Strip: []string{
			".//ce:inf",
			".//ce:italic",
			".//ce:bold",
			".//ce:formula",
			".//*[namespace-uri()='" + NSMathML + "']",
			".//ce:sup",
		},
		Kill: []string{
			".//ce:cross-ref//ce:sup",
			".//ce:table//ce:sup",
			".//ce:cross-ref",
			".//ce:cross-refs",
		},
		Ignore: []string{
			".//ce:acknowledgment", ".//ce:correspondence", ".//ce:author", ".//ce:doi",
			".//ja:jid", ".//ja:aid", ".//ce:pii",
			".//xocs:oa-sponsor-type", ".//xocs:open-access",
			".//default:openaccess", ".//default:openaccessArticle",
			".//dc:format", ".//dc:creator", ".//dc:identifier",
			".//default:eid", ".//default:pii", ".//xocs:ref-info", ".//default:scopus-eid",
			".//xocs:normalized-srctitle", ".//xocs:eid", ".//xocs:hub-eid",
			".//xocs:normalized-first-auth-surname", ".//xocs:normalized-first-auth-initial",
			".//xocs:refkeys", ".//xocs:attachment-eid", ".//xocs:attachment-type",
			".//ce:given-name", ".//ce:surname", ".//ce:affiliation",
			".//ce:cross-refs", ".//ce:cross-ref",
			".//ce:grant-sponsor", ".//ce:grant-number",
			".//*[namespace-uri()='" + NSPrism + "']",
			".//xocs:pii-unformatted", ".//xocs:ucs-locator", ".//ce:copyright",
			".//xocs:copyright-line", ".//xocs:cp-notice", ".//dc:description",
			".//default:objects", ".//default:link",
		},
		Inline: []string{
			"ce:inf", "ce:sup", "ce:italic", "ce:bold", "ce:small-caps",
			"ce:underline", "ce:monospace", "ce:hsp", "ce:cross-ref", "ce:cross-refs",
		},
		Break: []string{"ce:br"},
	}
}

// compiled is the immutable, ready to evaluate form of Selectors.
type compiled struct {
	root *markup.Selector

	title, heading *markup.Selector

	table, tableCaption, tableHeadRow, tableBodyRow, tableCell, tableFootnote *markup.Selector

	figure, figureCaption, figureLink, figureFilename *markup.Selector

	reference, citation *markup.Selector

	metadata                                          *markup.Selector
	metaTitle, metaAuthor, metaPublisher, metaJournal *markup.Selector
	metaDate, metaLanguage, metaVolume, metaIssue     *markup.Selector
	metaFirstPage, metaLastPage, metaDOI, metaPII     *markup.Selector
	metaPDFURL, metaHTMLURL                           *markup.Selector

	hsp     *markup.Selector
	ignore  *markup.Selector
	cleaner *markup.Cleaner

	inline, breaks []xml.Name
}

func compileSelectors(s Selectors, ns markup.Namespaces) (*compiled, error) {
	c := &compiled{}
	var err error
	one := func(expr string) *markup.Selector {
		if err != nil || strings.TrimSpace(expr) == "" {
			return nil
		}
		var sel *markup.Selector
		sel, err = markup.Compile(expr, ns)
		return sel
	}
	many := func(exprs []string) []*markup.Selector {
		var out []*markup.Selector
		for _, e := range exprs {
			if sel := one(e); sel != nil {
				out = append(out, sel)
			}
		}
		return out
	}

	c.root = one(s.Root)
	c.title = one(s.Title)
	c.heading = one(s.Heading)
	c.table = one(s.Table)
	c.tableCaption = one(s.TableCaption)
	c.tableHeadRow = one(s.TableHeadRow)
	c.tableBodyRow = one(s.TableBodyRow)
	c.tableCell = one(s.TableCell)
	c.tableFootnote = one(s.TableFootnote)
	c.figure = one(s.Figure)
	c.figureCaption = one(s.FigureCaption)
	c.figureLink = one(s.FigureLink)
	c.figureFilename = one(s.FigureFilename)
	c.reference = one(s.Reference)
	c.citation = one(s.Citation)
	c.metadata = one(s.Metadata)
	c.metaTitle = one(s.MetadataTitle)
	c.metaAuthor = one(s.MetadataAuthor)
	c.metaPublisher = one(s.MetadataPublisher)
	c.metaJournal = one(s.MetadataJournal)
	c.metaDate = one(s.MetadataDate)
	c.metaLanguage = one(s.MetadataLanguage)
	c.metaVolume = one(s.MetadataVolume)
	c.metaIssue = one(s.MetadataIssue)
	c.metaFirstPage = one(s.MetadataFirstPage)
	c.metaLastPage = one(s.MetadataLastPage)
	c.metaDOI = one(s.MetadataDOI)
	c.metaPII = one(s.MetadataPII)
	c.metaPDFURL = one(s.MetadataPDFURL)
	c.metaHTMLURL = one(s.MetadataHTMLURL)
	c.hsp = one(s.Hsp)
	c.ignore = one(strings.Join(s.Ignore, " | "))
	c.cleaner = &markup.Cleaner{Kill: many(s.Kill), Strip: many(s.Strip)}
	if err != nil {
		return nil, err
	}
	if c.root == nil {
		return nil, fmt.Errorf("elsevier: root selector is required")
	}

	if c.inline, err = resolveNames(s.Inline, ns); err != nil {
		return nil, err
	}
	if c.breaks, err = resolveNames(s.Break, ns); err != nil {
		return nil, err
	}
	return c, nil
}

// resolveNames turns prefixed names such as "ce:italic" into expanded names.
func resolveNames(names []string, ns markup.Namespaces) ([]xml.Name, error) {
	out := make([]xml.Name, 0, len(names))
	for _, name := range names {
		prefix, local, ok := strings.Cut(name, ":")
		if !ok {
			out = append(out, xml.Name{Local: name})
			continue
		}
		uri := ns.URI(prefix)
		if uri == "" {
			return nil, fmt.Errorf("elsevier: unknown namespace prefix in %q", name)
		}
		out = append(out, xml.Name{Space: uri, Local: local})
	}
	return out, nil
}
