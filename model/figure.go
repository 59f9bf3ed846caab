package model

// Figure represents a figure with its caption and a resolved image location
type Figure struct {
	ID      string   `json:"id,omitempty"`
	Caption *Caption `json:"caption"`
	URL     string   `json:"url,omitempty"`
}

func (f *Figure) Type() ElementType { return ElementTypeFigure }
func (f *Figure) GetText() string {
	if f.Caption == nil {
		return ""
	}
	return f.Caption.Text
}
