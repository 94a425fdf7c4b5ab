package script

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/vellumhq/vellum/pkg/scene"
)

// stylesFromArgs builds a partial style bag from keyword arguments.
// Keyword names keep the CSS kebab-case spelling (:font-size,
// :border-radius); the preprocessor leaves keyword hyphens alone.
func stylesFromArgs(kw map[string]zygo.Sexp) (*scene.Styles, error) {
	s := &scene.Styles{}
	for key, val := range kw {
		if err := assignStyle(s, key, val); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func assignStyle(s *scene.Styles, key string, val zygo.Sexp) error {
	setF := func(dst **float64) error {
		f, err := toFloat64(val)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = &f
		return nil
	}
	setS := func(dst **string) error {
		str, err := toKeywordString(val)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = &str
		return nil
	}
	setI := func(dst **int) error {
		n, err := toInt(val)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = &n
		return nil
	}

	switch key {
	case "display":
		return setS(&s.Display)
	case "flex-direction", "direction":
		return setS(&s.FlexDirection)
	case "justify-content", "justify":
		return setS(&s.JustifyContent)
	case "align-items", "align":
		return setS(&s.AlignItems)
	case "flex-wrap":
		return setS(&s.FlexWrap)
	case "gap":
		return setF(&s.Gap)
	case "grid-columns", "columns":
		return setI(&s.GridColumns)

	case "padding":
		return setF(&s.Padding)
	case "padding-top":
		return setF(&s.PaddingTop)
	case "padding-right":
		return setF(&s.PaddingRight)
	case "padding-bottom":
		return setF(&s.PaddingBottom)
	case "padding-left":
		return setF(&s.PaddingLeft)
	case "margin":
		return setF(&s.Margin)
	case "margin-top":
		return setF(&s.MarginTop)
	case "margin-right":
		return setF(&s.MarginRight)
	case "margin-bottom":
		return setF(&s.MarginBottom)
	case "margin-left":
		return setF(&s.MarginLeft)

	case "bg", "background":
		return setS(&s.BackgroundColor)
	case "color", "text-color":
		return setS(&s.TextColor)
	case "border-color":
		return setS(&s.BorderColor)
	case "border-width":
		return setF(&s.BorderWidth)
	case "border-radius", "radius":
		return setF(&s.BorderRadius)

	case "font-size":
		return setF(&s.FontSize)
	case "font-weight", "weight":
		return setI(&s.FontWeight)
	case "text-align":
		return setS(&s.TextAlign)
	case "line-height":
		return setF(&s.LineHeight)
	case "letter-spacing":
		return setF(&s.LetterSpacing)

	case "opacity":
		return setF(&s.Opacity)
	case "shadow":
		return setS(&s.Shadow)
	case "overflow":
		return setS(&s.Overflow)
	case "z-index":
		return setI(&s.ZIndex)
	case "cursor":
		return setS(&s.Cursor)
	}
	return fmt.Errorf("unknown style property %q", key)
}
