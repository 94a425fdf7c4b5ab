package engine

import "github.com/vellumhq/vellum/pkg/scene"

// defaultName is the initial human label for a new element.
func defaultName(k scene.ElementKind) string {
	switch k {
	case scene.KindFrame:
		return "Frame"
	case scene.KindStack:
		return "Stack"
	case scene.KindGrid:
		return "Grid"
	case scene.KindSection:
		return "Section"
	case scene.KindCard:
		return "Card"
	case scene.KindRow:
		return "Row"
	case scene.KindText:
		return "Text"
	case scene.KindButton:
		return "Button"
	case scene.KindLink:
		return "Link"
	case scene.KindImage:
		return "Image"
	case scene.KindInput:
		return "Input"
	case scene.KindIcon:
		return "Icon"
	case scene.KindVideo:
		return "Video"
	default:
		return "Element"
	}
}

// defaultSize is the initial geometry for a new element; inside
// auto-layout parents it only serves as a hint.
func defaultSize(k scene.ElementKind) scene.Size {
	switch k {
	case scene.KindFrame:
		return scene.Size{Width: 240, Height: 240}
	case scene.KindStack:
		return scene.Size{Width: 320, Height: 240}
	case scene.KindGrid:
		return scene.Size{Width: 480, Height: 320}
	case scene.KindSection:
		return scene.Size{Width: 1440, Height: 360}
	case scene.KindCard:
		return scene.Size{Width: 320, Height: 240}
	case scene.KindRow:
		return scene.Size{Width: 480, Height: 80}
	case scene.KindText:
		return scene.Size{Width: 200, Height: 24}
	case scene.KindButton:
		return scene.Size{Width: 140, Height: 44}
	case scene.KindLink:
		return scene.Size{Width: 100, Height: 20}
	case scene.KindImage:
		return scene.Size{Width: 240, Height: 180}
	case scene.KindInput:
		return scene.Size{Width: 240, Height: 40}
	case scene.KindIcon:
		return scene.Size{Width: 24, Height: 24}
	case scene.KindVideo:
		return scene.Size{Width: 480, Height: 270}
	default:
		return scene.Size{Width: 100, Height: 100}
	}
}

// defaultStyles is the initial style bag for a new element. Containers
// with layout semantics get their display mode here, which in turn
// drives positioning of their future children.
func defaultStyles(k scene.ElementKind) *scene.Styles {
	switch k {
	case scene.KindStack:
		return &scene.Styles{
			Display:       scene.S("flex"),
			FlexDirection: scene.S("column"),
			Gap:           scene.F(8),
		}
	case scene.KindRow:
		return &scene.Styles{
			Display:       scene.S("flex"),
			FlexDirection: scene.S("row"),
			AlignItems:    scene.S("center"),
			Gap:           scene.F(8),
		}
	case scene.KindGrid:
		return &scene.Styles{
			Display:     scene.S("grid"),
			GridColumns: scene.I(3),
			Gap:         scene.F(16),
		}
	case scene.KindSection:
		return &scene.Styles{
			PaddingTop:    scene.F(64),
			PaddingBottom: scene.F(64),
			PaddingLeft:   scene.F(24),
			PaddingRight:  scene.F(24),
		}
	case scene.KindCard:
		return &scene.Styles{
			Padding:         scene.F(16),
			BorderRadius:    scene.F(8),
			BorderWidth:     scene.F(1),
			BorderColor:     scene.S("#e5e7eb"),
			BackgroundColor: scene.S("#ffffff"),
		}
	case scene.KindText:
		return &scene.Styles{
			FontSize:  scene.F(16),
			TextColor: scene.S("#111827"),
		}
	case scene.KindButton:
		return &scene.Styles{
			BackgroundColor: scene.S("#3b82f6"),
			TextColor:       scene.S("#ffffff"),
			BorderRadius:    scene.F(6),
			PaddingTop:      scene.F(8),
			PaddingBottom:   scene.F(8),
			PaddingLeft:     scene.F(16),
			PaddingRight:    scene.F(16),
			FontWeight:      scene.I(500),
		}
	case scene.KindLink:
		return &scene.Styles{
			TextColor: scene.S("#2563eb"),
		}
	case scene.KindInput:
		return &scene.Styles{
			BorderWidth:  scene.F(1),
			BorderColor:  scene.S("#d1d5db"),
			BorderRadius: scene.F(6),
			Padding:      scene.F(8),
		}
	}
	return nil
}
