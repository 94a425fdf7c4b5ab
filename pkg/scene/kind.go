package scene

// ElementKind enumerates the node types of the scene graph.
type ElementKind int

const (
	KindPageRoot ElementKind = iota // root container of a page
	KindFrame                       // generic absolute-positioned container
	KindStack                       // vertical/horizontal flex container
	KindGrid                        // grid container
	KindSection                     // full-width page section
	KindCard                        // labeled container
	KindRow                         // horizontal flex shorthand
	KindText
	KindButton
	KindLink
	KindImage
	KindInput
	KindIcon
	KindVideo
)

func (k ElementKind) String() string {
	switch k {
	case KindPageRoot:
		return "page-root"
	case KindFrame:
		return "frame"
	case KindStack:
		return "stack"
	case KindGrid:
		return "grid"
	case KindSection:
		return "section"
	case KindCard:
		return "card"
	case KindRow:
		return "row"
	case KindText:
		return "text"
	case KindButton:
		return "button"
	case KindLink:
		return "link"
	case KindImage:
		return "image"
	case KindInput:
		return "input"
	case KindIcon:
		return "icon"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// KindFromString maps a kind name back to its ElementKind.
// Unknown names report ok=false.
func KindFromString(s string) (ElementKind, bool) {
	for k := KindPageRoot; k <= KindVideo; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// IsContainer reports whether elements of this kind may hold children.
func (k ElementKind) IsContainer() bool {
	switch k {
	case KindPageRoot, KindFrame, KindStack, KindGrid, KindSection, KindCard, KindRow:
		return true
	}
	return false
}
