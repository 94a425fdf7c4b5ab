package scene

import "reflect"

// Breakpoint identifies a responsive override slot. Base styles are
// desktop; overrides apply at and below the breakpoint's width.
type Breakpoint string

const (
	BreakpointTablet Breakpoint = "tablet"
	BreakpointMobile Breakpoint = "mobile"
)

// Variant names a state-based style override.
type Variant string

const (
	VariantHover    Variant = "hover"
	VariantFocus    Variant = "focus"
	VariantActive   Variant = "active"
	VariantDisabled Variant = "disabled"
)

// Styles is the flat visual-property bag attached to an element.
// Every field is optional: nil means unset, which is distinct from an
// explicit zero (e.g. an explicit 0 border radius emits rounded-none).
type Styles struct {
	// Layout
	Display        *string  `json:"display,omitempty"`        // flex | grid | block
	FlexDirection  *string  `json:"flexDirection,omitempty"`  // row | column
	JustifyContent *string  `json:"justifyContent,omitempty"` // start | center | end | between | around
	AlignItems     *string  `json:"alignItems,omitempty"`     // start | center | end | stretch
	FlexWrap       *string  `json:"flexWrap,omitempty"`       // wrap | nowrap
	Gap            *float64 `json:"gap,omitempty"`            // px
	GridColumns    *int     `json:"gridColumns,omitempty"`

	// Spacing (px). Padding/Margin are the uniform shorthands; per-side
	// values override the shorthand when present.
	Padding       *float64 `json:"padding,omitempty"`
	PaddingTop    *float64 `json:"paddingTop,omitempty"`
	PaddingRight  *float64 `json:"paddingRight,omitempty"`
	PaddingBottom *float64 `json:"paddingBottom,omitempty"`
	PaddingLeft   *float64 `json:"paddingLeft,omitempty"`
	Margin        *float64 `json:"margin,omitempty"`
	MarginTop     *float64 `json:"marginTop,omitempty"`
	MarginRight   *float64 `json:"marginRight,omitempty"`
	MarginBottom  *float64 `json:"marginBottom,omitempty"`
	MarginLeft    *float64 `json:"marginLeft,omitempty"`

	// Color and border
	BackgroundColor *string  `json:"backgroundColor,omitempty"` // hex
	TextColor       *string  `json:"textColor,omitempty"`       // hex
	BorderColor     *string  `json:"borderColor,omitempty"`     // hex
	BorderWidth     *float64 `json:"borderWidth,omitempty"`     // px
	BorderRadius    *float64 `json:"borderRadius,omitempty"`    // px

	// Typography
	FontSize      *float64 `json:"fontSize,omitempty"` // px
	FontWeight    *int     `json:"fontWeight,omitempty"`
	TextAlign     *string  `json:"textAlign,omitempty"` // left | center | right
	LineHeight    *float64 `json:"lineHeight,omitempty"`
	LetterSpacing *float64 `json:"letterSpacing,omitempty"` // px

	// Effects
	Opacity  *float64 `json:"opacity,omitempty"` // 0..1
	Shadow   *string  `json:"shadow,omitempty"`  // sm | md | lg | xl | custom CSS
	Overflow *string  `json:"overflow,omitempty"`
	ZIndex   *int     `json:"zIndex,omitempty"`
	Cursor   *string  `json:"cursor,omitempty"`
}

// F returns a *float64 literal for building style bags inline.
func F(v float64) *float64 { return &v }

// S returns a *string literal.
func S(v string) *string { return &v }

// I returns an *int literal.
func I(v int) *int { return &v }

// Merge shallow-merges o into s: every non-nil field of o replaces the
// corresponding field of s, nil fields of o leave s untouched. The merged
// values are fresh pointers so the two bags never alias.
func (s *Styles) Merge(o *Styles) {
	if o == nil {
		return
	}
	dst := reflect.ValueOf(s).Elem()
	src := reflect.ValueOf(o).Elem()
	for i := 0; i < src.NumField(); i++ {
		f := src.Field(i)
		if f.Kind() == reflect.Pointer && !f.IsNil() {
			p := reflect.New(f.Type().Elem())
			p.Elem().Set(f.Elem())
			dst.Field(i).Set(p)
		}
	}
}

// Clone returns a deep copy: same values, no shared pointers.
func (s *Styles) Clone() *Styles {
	if s == nil {
		return nil
	}
	out := &Styles{}
	out.Merge(s)
	return out
}

// IsZero reports whether no field is set.
func (s *Styles) IsZero() bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s).Elem()
	for i := 0; i < v.NumField(); i++ {
		if !v.Field(i).IsNil() {
			return false
		}
	}
	return true
}

// IsAutoLayout reports whether this bag makes an element lay out its
// children itself (flex or grid), so child geometry is derived rather
// than authoritative.
func (s *Styles) IsAutoLayout() bool {
	if s == nil || s.Display == nil {
		return false
	}
	return *s.Display == "flex" || *s.Display == "grid"
}
