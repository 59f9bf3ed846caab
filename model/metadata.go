package model

// MetaData contains article-level bibliographic information. A nil field
// means the source had no value for it.
type MetaData struct {
	Title     *string  `json:"title"`
	Authors   []string `json:"authors"`
	Publisher *string  `json:"publisher"`
	Journal   *string  `json:"journal"`
	Date      *string  `json:"date"`
	Language  *string  `json:"language"`
	Volume    *string  `json:"volume"`
	Issue     *string  `json:"issue"`
	FirstPage *string  `json:"firstpage"`
	LastPage  *string  `json:"lastpage"`
	DOI       *string  `json:"doi"`
	PDFURL    *string  `json:"pdf_url"`
	HTMLURL   *string  `json:"html_url"`
}

func (m *MetaData) Type() ElementType { return ElementTypeMetaData }

// IsEmpty reports whether no field is set
func (m *MetaData) IsEmpty() bool {
	for _, v := range m.scalars() {
		if *v.ptr != nil {
			return false
		}
	}
	return len(m.Authors) == 0
}

// Fields returns the set scalar fields keyed by name, with authors joined
// under "authors".
func (m *MetaData) Fields() map[string]string {
	out := make(map[string]string)
	for _, v := range m.scalars() {
		if *v.ptr != nil {
			out[v.name] = **v.ptr
		}
	}
	for i, a := range m.Authors {
		if i == 0 {
			out["authors"] = a
			continue
		}
		out["authors"] += "; " + a
	}
	return out
}

type metaField struct {
	name string
	ptr  **string
}

func (m *MetaData) scalars() []metaField {
	return []metaField{
		{"title", &m.Title},
		{"publisher", &m.Publisher},
		{"journal", &m.Journal},
		{"date", &m.Date},
		{"language", &m.Language},
		{"volume", &m.Volume},
		{"issue", &m.Issue},
		{"firstpage", &m.FirstPage},
		{"lastpage", &m.LastPage},
		{"doi", &m.DOI},
		{"pdf_url", &m.PDFURL},
		{"html_url", &m.HTMLURL},
	}
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
