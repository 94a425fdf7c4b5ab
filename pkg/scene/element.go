package scene

import (
	"encoding/json"
	"fmt"
)

// Position is a point in the parent's coordinate space, in px.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in px.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PositionType says whether an element's geometry is authoritative.
type PositionType int

const (
	// PositionAbsolute means Position/Size are authoritative.
	PositionAbsolute PositionType = iota
	// PositionRelative means geometry is assigned by the parent's
	// layout algorithm (flex/grid); Size is only a hint.
	PositionRelative
)

func (p PositionType) String() string {
	if p == PositionRelative {
		return "relative"
	}
	return "absolute"
}

// Trigger is an opaque interaction or animation record. The core stores
// and round-trips these; only the frontend interprets them.
type Trigger struct {
	Event  string         `json:"event"`
	Effect string         `json:"effect"`
	Params map[string]any `json:"params,omitempty"`
}

// Element is a node in the scene graph.
type Element struct {
	ID           string       `json:"id"`
	Kind         ElementKind  `json:"-"`
	Name         string       `json:"name"`
	ParentID     string       `json:"parentId,omitempty"` // empty only for page roots
	Children     []string     `json:"children,omitempty"` // paint/DOM order
	Position     Position     `json:"position"`
	Size         Size         `json:"size"`
	PositionType PositionType `json:"positionType"`

	Styles           *Styles                 `json:"styles,omitempty"`
	ResponsiveStyles map[Breakpoint]*Styles  `json:"responsiveStyles,omitempty"`
	Variants         map[Variant]*Styles     `json:"variants,omitempty"`
	Interactions     []Trigger               `json:"interactions,omitempty"`
	Animations       []Trigger               `json:"animations,omitempty"`

	Data ElementData `json:"-"` // kind-specific payload, nil for containers

	Locked  bool `json:"locked,omitempty"`
	Visible bool `json:"visible"`
}

// ---------------------------------------------------------------------------
// Kind payloads
// ---------------------------------------------------------------------------

// ElementData is the interface for kind-specific element payloads.
type ElementData interface {
	elementData() // marker method restricting implementations to this package
}

// TextData is the payload for text elements.
type TextData struct {
	Content string `json:"content"`
}

func (TextData) elementData() {}

// ButtonData is the payload for button elements.
type ButtonData struct {
	Label string `json:"label"`
}

func (ButtonData) elementData() {}

// LinkData is the payload for link elements.
type LinkData struct {
	Text   string `json:"text"`
	Href   string `json:"href"`
	NewTab bool   `json:"newTab,omitempty"`
}

func (LinkData) elementData() {}

// ImageData is the payload for image elements.
type ImageData struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

func (ImageData) elementData() {}

// InputData is the payload for input elements.
type InputData struct {
	Placeholder string `json:"placeholder,omitempty"`
	Type        string `json:"type,omitempty"` // text | email | password | number
}

func (InputData) elementData() {}

// IconData is the payload for icon elements. Name is a lucide icon
// identifier in PascalCase (e.g. "ArrowRight").
type IconData struct {
	Name string `json:"name"`
}

func (IconData) elementData() {}

// VideoData is the payload for video elements.
type VideoData struct {
	Src      string `json:"src"`
	Autoplay bool   `json:"autoplay,omitempty"`
	Loop     bool   `json:"loop,omitempty"`
	Muted    bool   `json:"muted,omitempty"`
	Controls bool   `json:"controls,omitempty"`
}

func (VideoData) elementData() {}

// CardData is the payload for labeled containers.
type CardData struct {
	Label string `json:"label"`
}

func (CardData) elementData() {}

// DefaultData returns the zero payload for a kind, nil for plain containers.
func DefaultData(k ElementKind) ElementData {
	switch k {
	case KindText:
		return &TextData{Content: "Text"}
	case KindButton:
		return &ButtonData{Label: "Button"}
	case KindLink:
		return &LinkData{Text: "Link", Href: "#"}
	case KindImage:
		return &ImageData{Src: "", Alt: ""}
	case KindInput:
		return &InputData{Placeholder: "", Type: "text"}
	case KindIcon:
		return &IconData{Name: "Circle"}
	case KindVideo:
		return &VideoData{Controls: true}
	case KindCard:
		return &CardData{}
	}
	return nil
}

// emptyData returns a zero payload of the right type for decoding.
func emptyData(k ElementKind) ElementData {
	switch k {
	case KindText:
		return &TextData{}
	case KindButton:
		return &ButtonData{}
	case KindLink:
		return &LinkData{}
	case KindImage:
		return &ImageData{}
	case KindInput:
		return &InputData{}
	case KindIcon:
		return &IconData{}
	case KindVideo:
		return &VideoData{}
	case KindCard:
		return &CardData{}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Cloning
// ---------------------------------------------------------------------------

// Clone deep-copies a single element record. Children and ParentID are
// copied as-is; remapping IDs is the caller's concern.
func (e *Element) Clone() *Element {
	out := *e
	out.Children = append([]string(nil), e.Children...)
	out.Styles = e.Styles.Clone()
	if e.ResponsiveStyles != nil {
		out.ResponsiveStyles = make(map[Breakpoint]*Styles, len(e.ResponsiveStyles))
		for bp, s := range e.ResponsiveStyles {
			out.ResponsiveStyles[bp] = s.Clone()
		}
	}
	if e.Variants != nil {
		out.Variants = make(map[Variant]*Styles, len(e.Variants))
		for v, s := range e.Variants {
			out.Variants[v] = s.Clone()
		}
	}
	out.Interactions = cloneTriggers(e.Interactions)
	out.Animations = cloneTriggers(e.Animations)
	out.Data = cloneData(e.Data)
	return &out
}

func cloneTriggers(ts []Trigger) []Trigger {
	if ts == nil {
		return nil
	}
	out := make([]Trigger, len(ts))
	for i, t := range ts {
		out[i] = t
		if t.Params != nil {
			out[i].Params = make(map[string]any, len(t.Params))
			for k, v := range t.Params {
				out[i].Params[k] = v
			}
		}
	}
	return out
}

func cloneData(d ElementData) ElementData {
	switch v := d.(type) {
	case nil:
		return nil
	case *TextData:
		c := *v
		return &c
	case *ButtonData:
		c := *v
		return &c
	case *LinkData:
		c := *v
		return &c
	case *ImageData:
		c := *v
		return &c
	case *InputData:
		c := *v
		return &c
	case *IconData:
		c := *v
		return &c
	case *VideoData:
		c := *v
		return &c
	case *CardData:
		c := *v
		return &c
	}
	return d
}

// ---------------------------------------------------------------------------
// JSON
// ---------------------------------------------------------------------------

// elementJSON mirrors Element for serialization: the kind is encoded by
// name and the payload as a raw message decoded per kind on the way back.
type elementJSON struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data,omitempty"`
	elementAlias
}

type elementAlias Element

func (e *Element) MarshalJSON() ([]byte, error) {
	out := elementJSON{
		Kind:         e.Kind.String(),
		elementAlias: elementAlias(*e),
	}
	if e.Data != nil {
		raw, err := json.Marshal(e.Data)
		if err != nil {
			return nil, fmt.Errorf("element %s: marshal payload: %w", e.ID, err)
		}
		out.Data = raw
	}
	return json.Marshal(out)
}

func (e *Element) UnmarshalJSON(b []byte) error {
	var in elementJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*e = Element(in.elementAlias)
	kind, ok := KindFromString(in.Kind)
	if !ok {
		return fmt.Errorf("element %s: unknown kind %q", e.ID, in.Kind)
	}
	e.Kind = kind
	if len(in.Data) == 0 {
		e.Data = nil
		return nil
	}
	data := emptyData(kind)
	if data == nil {
		// Container kinds carry no payload; tolerate stray data.
		return nil
	}
	if err := json.Unmarshal(in.Data, data); err != nil {
		return fmt.Errorf("element %s: unmarshal %s payload: %w", e.ID, in.Kind, err)
	}
	e.Data = data
	return nil
}
