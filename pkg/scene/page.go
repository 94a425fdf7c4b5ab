package scene

// Page is one canvas frame in the project. Every page owns exactly one
// root element of KindPageRoot; the page's Width/Height are authoritative
// for that root's size.
type Page struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	RootElementID string  `json:"rootElementId"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	CanvasX       float64 `json:"canvasX"` // placement on the multi-page canvas
	CanvasY       float64 `json:"canvasY"`
	Notes         string  `json:"notes,omitempty"`
}

// Clone returns a copy of the page record.
func (p *Page) Clone() *Page {
	out := *p
	return &out
}
