package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vellumhq/vellum/pkg/scene"
)

// Style-bag to Tailwind translation. Per property family the strategies
// are tried in priority order: exact dictionary match, numeric scale
// lookup, then the bracketed arbitrary-value escape which carries the
// raw value verbatim so no style information is ever lost.

// spacingScale maps px values to the Tailwind spacing scale.
var spacingScale = map[float64]string{
	1: "px", 2: "0.5", 4: "1", 6: "1.5", 8: "2", 10: "2.5", 12: "3",
	14: "3.5", 16: "4", 20: "5", 24: "6", 28: "7", 32: "8", 36: "9",
	40: "10", 44: "11", 48: "12", 56: "14", 64: "16", 80: "20",
	96: "24", 112: "28", 128: "32", 144: "36", 160: "40",
}

// colorNames is the exact-match palette dictionary (Tailwind defaults).
var colorNames = map[string]string{
	"#ffffff": "white",
	"#000000": "black",
	"#f9fafb": "gray-50",
	"#f3f4f6": "gray-100",
	"#e5e7eb": "gray-200",
	"#d1d5db": "gray-300",
	"#9ca3af": "gray-400",
	"#6b7280": "gray-500",
	"#4b5563": "gray-600",
	"#374151": "gray-700",
	"#1f2937": "gray-800",
	"#111827": "gray-900",
	"#ef4444": "red-500",
	"#dc2626": "red-600",
	"#f97316": "orange-500",
	"#f59e0b": "amber-500",
	"#eab308": "yellow-500",
	"#84cc16": "lime-500",
	"#22c55e": "green-500",
	"#16a34a": "green-600",
	"#10b981": "emerald-500",
	"#14b8a6": "teal-500",
	"#06b6d4": "cyan-500",
	"#0ea5e9": "sky-500",
	"#3b82f6": "blue-500",
	"#2563eb": "blue-600",
	"#1d4ed8": "blue-700",
	"#6366f1": "indigo-500",
	"#8b5cf6": "violet-500",
	"#a855f7": "purple-500",
	"#d946ef": "fuchsia-500",
	"#ec4899": "pink-500",
	"#f43f5e": "rose-500",
}

var fontSizeScale = map[float64]string{
	12: "xs", 14: "sm", 16: "base", 18: "lg", 20: "xl",
	24: "2xl", 30: "3xl", 36: "4xl", 48: "5xl", 60: "6xl", 72: "7xl",
}

var fontWeightNames = map[int]string{
	100: "thin", 200: "extralight", 300: "light", 400: "normal",
	500: "medium", 600: "semibold", 700: "bold", 800: "extrabold",
	900: "black",
}

var radiusScale = map[float64]string{
	0: "rounded-none", 2: "rounded-sm", 4: "rounded", 6: "rounded-md",
	8: "rounded-lg", 12: "rounded-xl", 16: "rounded-2xl",
	24: "rounded-3xl", 9999: "rounded-full",
}

var lineHeightScale = map[float64]string{
	12: "3", 16: "4", 20: "5", 24: "6", 28: "7", 32: "8", 36: "9",
}

var shadowNames = map[string]string{
	"sm": "shadow-sm", "md": "shadow-md", "lg": "shadow-lg",
	"xl": "shadow-xl", "2xl": "shadow-2xl", "none": "shadow-none",
}

// breakpointPrefix maps responsive override slots to Tailwind variant
// prefixes. The canvas edits desktop-first; overrides narrow downward.
var breakpointPrefix = map[scene.Breakpoint]string{
	scene.BreakpointTablet: "md:",
	scene.BreakpointMobile: "sm:",
}

// px formats a pixel count for an arbitrary-value token, trimming
// trailing zeros so 64 renders as "64px" and 7.50 as "7.5px".
func px(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s + "px"
}

// spacingToken resolves one spacing value: scale first, then the
// arbitrary escape. Zero spacing is a default and emits nothing.
func spacingToken(prefix string, v float64) string {
	if v == 0 {
		return ""
	}
	if tok, ok := spacingScale[v]; ok {
		return prefix + "-" + tok
	}
	return prefix + "-[" + px(v) + "]"
}

// colorToken resolves a hex color: palette dictionary first, then the
// arbitrary escape with the raw hex verbatim.
func colorToken(prefix, hex string) string {
	if name, ok := colorNames[strings.ToLower(hex)]; ok {
		return prefix + "-" + name
	}
	return prefix + "-[" + strings.ToLower(hex) + "]"
}

// classesFor converts one style bag into an ordered token list. The
// property-family order is fixed so output is deterministic.
func classesFor(s *scene.Styles) []string {
	if s == nil {
		return nil
	}
	var out []string
	add := func(tok string) {
		if tok != "" {
			out = append(out, tok)
		}
	}

	// Layout
	if s.Display != nil {
		switch *s.Display {
		case "flex":
			add("flex")
		case "grid":
			add("grid")
		case "block":
			add("block")
		default:
			add("[display:" + *s.Display + "]")
		}
	}
	if s.FlexDirection != nil {
		if *s.FlexDirection == "column" {
			add("flex-col")
		} else {
			add("flex-row")
		}
	}
	if s.JustifyContent != nil {
		add("justify-" + *s.JustifyContent)
	}
	if s.AlignItems != nil {
		add("items-" + *s.AlignItems)
	}
	if s.FlexWrap != nil {
		if *s.FlexWrap == "wrap" {
			add("flex-wrap")
		} else {
			add("flex-nowrap")
		}
	}
	if s.GridColumns != nil && *s.GridColumns > 0 {
		n := *s.GridColumns
		if n <= 12 {
			add(fmt.Sprintf("grid-cols-%d", n))
		} else {
			add(fmt.Sprintf("grid-cols-[repeat(%d,minmax(0,1fr))]", n))
		}
	}
	if s.Gap != nil {
		add(spacingToken("gap", *s.Gap))
	}

	out = append(out, sideTokens("p", s.Padding, s.PaddingTop, s.PaddingRight, s.PaddingBottom, s.PaddingLeft)...)
	out = append(out, sideTokens("m", s.Margin, s.MarginTop, s.MarginRight, s.MarginBottom, s.MarginLeft)...)

	// Color and border
	if s.BackgroundColor != nil {
		add(colorToken("bg", *s.BackgroundColor))
	}
	if s.TextColor != nil {
		add(colorToken("text", *s.TextColor))
	}
	if s.BorderWidth != nil && *s.BorderWidth > 0 {
		switch *s.BorderWidth {
		case 1:
			add("border")
		case 2, 4, 8:
			add(fmt.Sprintf("border-%d", int(*s.BorderWidth)))
		default:
			add("border-[" + px(*s.BorderWidth) + "]")
		}
	}
	if s.BorderColor != nil {
		add(colorToken("border", *s.BorderColor))
	}
	// Radius is meaningfully non-default at explicit zero: rounded-none.
	if s.BorderRadius != nil {
		if tok, ok := radiusScale[*s.BorderRadius]; ok {
			add(tok)
		} else {
			add("rounded-[" + px(*s.BorderRadius) + "]")
		}
	}

	// Typography
	if s.FontSize != nil {
		if tok, ok := fontSizeScale[*s.FontSize]; ok {
			add("text-" + tok)
		} else {
			add("text-[" + px(*s.FontSize) + "]")
		}
	}
	if s.FontWeight != nil {
		if name, ok := fontWeightNames[*s.FontWeight]; ok {
			add("font-" + name)
		} else {
			add(fmt.Sprintf("font-[%d]", *s.FontWeight))
		}
	}
	if s.TextAlign != nil {
		add("text-" + *s.TextAlign)
	}
	if s.LineHeight != nil && *s.LineHeight > 0 {
		if tok, ok := lineHeightScale[*s.LineHeight]; ok {
			add("leading-" + tok)
		} else {
			add("leading-[" + px(*s.LineHeight) + "]")
		}
	}
	if s.LetterSpacing != nil && *s.LetterSpacing != 0 {
		add("tracking-[" + px(*s.LetterSpacing) + "]")
	}

	// Effects
	if s.Opacity != nil {
		pct := int(*s.Opacity*100 + 0.5)
		if pct%5 == 0 && pct >= 0 && pct <= 100 {
			add(fmt.Sprintf("opacity-%d", pct))
		} else {
			add("opacity-[" + strconv.FormatFloat(*s.Opacity, 'f', -1, 64) + "]")
		}
	}
	if s.Shadow != nil {
		if tok, ok := shadowNames[*s.Shadow]; ok {
			add(tok)
		} else {
			add("shadow-[" + strings.ReplaceAll(*s.Shadow, " ", "_") + "]")
		}
	}
	if s.Overflow != nil {
		add("overflow-" + *s.Overflow)
	}
	if s.ZIndex != nil {
		n := *s.ZIndex
		if n%10 == 0 && n >= 0 && n <= 50 {
			add(fmt.Sprintf("z-%d", n))
		} else {
			add(fmt.Sprintf("z-[%d]", n))
		}
	}
	if s.Cursor != nil {
		add("cursor-" + *s.Cursor)
	}
	return out
}

// sideTokens emits spacing for one box property. The uniform shorthand
// is used only when no per-side override is present; any override
// switches to all four sides resolved individually.
func sideTokens(prefix string, uniform, top, right, bottom, left *float64) []string {
	hasSide := top != nil || right != nil || bottom != nil || left != nil
	if !hasSide {
		if uniform == nil {
			return nil
		}
		if tok := spacingToken(prefix, *uniform); tok != "" {
			return []string{tok}
		}
		return nil
	}
	resolve := func(side *float64) (float64, bool) {
		if side != nil {
			return *side, true
		}
		if uniform != nil {
			return *uniform, true
		}
		return 0, false
	}
	var out []string
	sides := []struct {
		suffix string
		val    *float64
	}{{"t", top}, {"r", right}, {"b", bottom}, {"l", left}}
	for _, sd := range sides {
		if v, ok := resolve(sd.val); ok {
			if tok := spacingToken(prefix+sd.suffix, v); tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}

// prefixed applies a Tailwind variant prefix (md:, hover:, …) to every token.
func prefixed(prefix string, tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = prefix + t
	}
	return out
}
