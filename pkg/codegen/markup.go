package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vellumhq/vellum/pkg/scene"
)

// emitter walks one page tree and renders nested JSX. It is purely a
// function of the document: no state survives between pages.
type emitter struct {
	doc *scene.Document
	b   strings.Builder
}

// className assembles an element's full Tailwind class string:
// positioning, base styles, responsive overrides, then state variants,
// in a fixed order so output is deterministic.
func (em *emitter) className(el *scene.Element) string {
	var tokens []string

	switch {
	case el.Kind == scene.KindPageRoot:
		tokens = append(tokens, "relative", "w-full", "min-h-screen")
	case el.PositionType == scene.PositionAbsolute:
		tokens = append(tokens,
			"absolute",
			"left-["+px(el.Position.X)+"]",
			"top-["+px(el.Position.Y)+"]",
			"w-["+px(el.Size.Width)+"]",
			"h-["+px(el.Size.Height)+"]",
		)
	}
	// A container that positions children absolutely anchors them.
	if el.Kind != scene.KindPageRoot && el.Kind.IsContainer() &&
		!el.Styles.IsAutoLayout() && len(em.visibleChildren(el)) > 0 {
		tokens = append(tokens, "relative")
	}

	tokens = append(tokens, classesFor(el.Styles)...)

	// Responsive overrides in fixed breakpoint order.
	for _, bp := range []scene.Breakpoint{scene.BreakpointTablet, scene.BreakpointMobile} {
		if s := el.ResponsiveStyles[bp]; s != nil {
			tokens = append(tokens, prefixed(breakpointPrefix[bp], classesFor(s))...)
		}
	}
	// Variants sorted by name for determinism.
	if len(el.Variants) > 0 {
		names := make([]string, 0, len(el.Variants))
		for v := range el.Variants {
			names = append(names, string(v))
		}
		sort.Strings(names)
		for _, v := range names {
			tokens = append(tokens, prefixed(v+":", classesFor(el.Variants[scene.Variant(v)]))...)
		}
	}
	return strings.Join(tokens, " ")
}

func (em *emitter) visibleChildren(el *scene.Element) []*scene.Element {
	var out []*scene.Element
	for _, c := range em.doc.Children(el) {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// emit renders one element (and its visible subtree) at the given
// indentation depth. Unrecognized kinds fall back to the generic
// container template so emission is total.
func (em *emitter) emit(el *scene.Element, depth int) {
	if !el.Visible {
		return
	}
	ind := strings.Repeat("  ", depth)
	cls := classAttr(em.className(el))

	switch data := el.Data.(type) {
	case *scene.TextData:
		fmt.Fprintf(&em.b, "%s<p%s>%s</p>\n", ind, cls, escapeText(data.Content))
	case *scene.ButtonData:
		fmt.Fprintf(&em.b, "%s<button%s>%s</button>\n", ind, cls, escapeText(data.Label))
	case *scene.LinkData:
		target := ""
		if data.NewTab {
			target = ` target="_blank" rel="noopener noreferrer"`
		}
		fmt.Fprintf(&em.b, "%s<a href=\"%s\"%s%s>%s</a>\n",
			ind, escapeAttr(data.Href), target, cls, escapeText(data.Text))
	case *scene.ImageData:
		fmt.Fprintf(&em.b, "%s<img src=\"%s\" alt=\"%s\"%s />\n",
			ind, escapeAttr(data.Src), escapeAttr(data.Alt), cls)
	case *scene.InputData:
		typ := data.Type
		if typ == "" {
			typ = "text"
		}
		fmt.Fprintf(&em.b, "%s<input type=\"%s\" placeholder=\"%s\"%s />\n",
			ind, escapeAttr(typ), escapeAttr(data.Placeholder), cls)
	case *scene.IconData:
		fmt.Fprintf(&em.b, "%s<%s size={%s}%s />\n",
			ind, iconSymbol(data.Name), trimFloat(el.Size.Width), cls)
	case *scene.VideoData:
		var flags strings.Builder
		if data.Autoplay {
			flags.WriteString(" autoPlay")
		}
		if data.Loop {
			flags.WriteString(" loop")
		}
		if data.Muted {
			flags.WriteString(" muted")
		}
		if data.Controls {
			flags.WriteString(" controls")
		}
		fmt.Fprintf(&em.b, "%s<video src=\"%s\"%s%s />\n",
			ind, escapeAttr(data.Src), flags.String(), cls)
	case *scene.CardData:
		children := em.visibleChildren(el)
		if data.Label == "" && len(children) == 0 {
			fmt.Fprintf(&em.b, "%s<div%s />\n", ind, cls)
			return
		}
		fmt.Fprintf(&em.b, "%s<div%s>\n", ind, cls)
		if data.Label != "" {
			fmt.Fprintf(&em.b, "%s  <h3 className=\"font-semibold\">%s</h3>\n", ind, escapeText(data.Label))
		}
		for _, c := range children {
			em.emit(c, depth+1)
		}
		fmt.Fprintf(&em.b, "%s</div>\n", ind)
	default:
		// Container kinds and anything future: generic wrapper,
		// self-closing when there is nothing visible inside.
		children := em.visibleChildren(el)
		if len(children) == 0 {
			fmt.Fprintf(&em.b, "%s<div%s />\n", ind, cls)
			return
		}
		fmt.Fprintf(&em.b, "%s<div%s>\n", ind, cls)
		for _, c := range children {
			em.emit(c, depth+1)
		}
		fmt.Fprintf(&em.b, "%s</div>\n", ind)
	}
}

// collectIcons pre-passes a page tree and returns the deduplicated,
// sorted lucide symbols used by visible icon elements.
func collectIcons(doc *scene.Document, root *scene.Element) []string {
	seen := make(map[string]bool)
	doc.Walk(root, func(el *scene.Element) bool {
		if !el.Visible {
			return false
		}
		if data, ok := el.Data.(*scene.IconData); ok && data.Name != "" {
			seen[iconSymbol(data.Name)] = true
		}
		return true
	})
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// iconSymbol normalizes an icon name to a valid lucide-react import
// symbol ("arrow-right" -> "ArrowRight").
func iconSymbol(name string) string {
	sym := sanitizeName(name)
	if sym == "Page" {
		return "Circle"
	}
	return sym
}

func classAttr(cls string) string {
	if cls == "" {
		return ""
	}
	return ` className="` + cls + `"`
}

func trimFloat(v float64) string {
	s := px(v)
	return strings.TrimSuffix(s, "px")
}

// escapeText escapes JSX text content: HTML special characters plus
// braces, which JSX would otherwise parse as expressions.
func escapeText(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"{", "&#123;",
		"}", "&#125;",
	)
	return r.Replace(s)
}

// escapeAttr escapes a double-quoted JSX attribute value.
func escapeAttr(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		`"`, "&quot;",
		"<", "&lt;",
		">", "&gt;",
	)
	return r.Replace(s)
}
