package engine

import "github.com/vellumhq/vellum/pkg/scene"

// UpdateElementStyles shallow-merges partial into the element's base
// style bag: set fields override, unset fields are untouched.
func (e *Engine) UpdateElementStyles(id string, partial *scene.Styles) {
	el := e.doc.Get(id)
	if el == nil {
		e.log.Warn("style rejected: no such element", "id", id)
		return
	}
	if el.Styles == nil {
		el.Styles = &scene.Styles{}
	}
	el.Styles.Merge(partial)
	e.commit("style")
}

// SetResponsiveStyles merges a partial override into one breakpoint's
// sparse style bag. Absent breakpoints inherit base styles entirely.
func (e *Engine) SetResponsiveStyles(id string, bp scene.Breakpoint, partial *scene.Styles) {
	el := e.doc.Get(id)
	if el == nil {
		e.log.Warn("responsive style rejected: no such element", "id", id)
		return
	}
	if el.ResponsiveStyles == nil {
		el.ResponsiveStyles = make(map[scene.Breakpoint]*scene.Styles)
	}
	if el.ResponsiveStyles[bp] == nil {
		el.ResponsiveStyles[bp] = &scene.Styles{}
	}
	el.ResponsiveStyles[bp].Merge(partial)
	e.commit("responsive style")
}

// SetVariantStyles merges a partial override into one named state
// variant (hover, focus, active, disabled or a custom name).
func (e *Engine) SetVariantStyles(id string, v scene.Variant, partial *scene.Styles) {
	el := e.doc.Get(id)
	if el == nil {
		e.log.Warn("variant style rejected: no such element", "id", id)
		return
	}
	if el.Variants == nil {
		el.Variants = make(map[scene.Variant]*scene.Styles)
	}
	if el.Variants[v] == nil {
		el.Variants[v] = &scene.Styles{}
	}
	el.Variants[v].Merge(partial)
	e.commit("variant style")
}

// RenameElement sets the human label. Names need not be unique.
func (e *Engine) RenameElement(id, name string) {
	el := e.doc.Get(id)
	if el == nil {
		e.log.Warn("rename rejected: no such element", "id", id)
		return
	}
	el.Name = name
	e.commit("rename")
}

// SetLocked toggles edit protection on an element.
func (e *Engine) SetLocked(id string, locked bool) {
	el := e.doc.Get(id)
	if el == nil {
		e.log.Warn("lock rejected: no such element", "id", id)
		return
	}
	el.Locked = locked
	e.commit("lock")
}

// SetVisible toggles an element's visibility; hidden subtrees are
// skipped entirely during code synthesis.
func (e *Engine) SetVisible(id string, visible bool) {
	el := e.doc.Get(id)
	if el == nil {
		e.log.Warn("visibility rejected: no such element", "id", id)
		return
	}
	el.Visible = visible
	e.commit("visibility")
}

// AddInteraction appends an opaque trigger record to an element.
func (e *Engine) AddInteraction(id string, t scene.Trigger) {
	el := e.doc.Get(id)
	if el == nil {
		e.log.Warn("interaction rejected: no such element", "id", id)
		return
	}
	el.Interactions = append(el.Interactions, t)
	e.commit("interaction")
}

// AddAnimation appends an opaque animation record to an element.
func (e *Engine) AddAnimation(id string, t scene.Trigger) {
	el := e.doc.Get(id)
	if el == nil {
		e.log.Warn("animation rejected: no such element", "id", id)
		return
	}
	el.Animations = append(el.Animations, t)
	e.commit("animation")
}

// ---------------------------------------------------------------------------
// Kind payload setters. Each checks the element's kind and rejects
// mismatches, so an automation caller pointing at the wrong node cannot
// corrupt another kind's payload.
// ---------------------------------------------------------------------------

// SetTextContent sets the content of a text element.
func (e *Engine) SetTextContent(id, content string) {
	data, ok := payloadFor[*scene.TextData](e, id, "text")
	if !ok {
		return
	}
	data.Content = content
	e.commit("edit text")
}

// SetButtonLabel sets the label of a button element.
func (e *Engine) SetButtonLabel(id, label string) {
	data, ok := payloadFor[*scene.ButtonData](e, id, "button")
	if !ok {
		return
	}
	data.Label = label
	e.commit("edit button")
}

// SetLinkTarget sets a link's text, href, and target window behavior.
func (e *Engine) SetLinkTarget(id, text, href string, newTab bool) {
	data, ok := payloadFor[*scene.LinkData](e, id, "link")
	if !ok {
		return
	}
	data.Text = text
	data.Href = href
	data.NewTab = newTab
	e.commit("edit link")
}

// SetImageSource sets an image's source URL and alt text.
func (e *Engine) SetImageSource(id, src, alt string) {
	data, ok := payloadFor[*scene.ImageData](e, id, "image")
	if !ok {
		return
	}
	data.Src = src
	data.Alt = alt
	e.commit("edit image")
}

// SetInputPlaceholder sets an input's placeholder and input type.
func (e *Engine) SetInputPlaceholder(id, placeholder, typ string) {
	data, ok := payloadFor[*scene.InputData](e, id, "input")
	if !ok {
		return
	}
	data.Placeholder = placeholder
	if typ != "" {
		data.Type = typ
	}
	e.commit("edit input")
}

// SetIconName sets an icon element's lucide symbol name.
func (e *Engine) SetIconName(id, name string) {
	data, ok := payloadFor[*scene.IconData](e, id, "icon")
	if !ok {
		return
	}
	data.Name = name
	e.commit("edit icon")
}

// SetVideoSource sets a video's source and playback flags.
func (e *Engine) SetVideoSource(id, src string, autoplay, loop, muted, controls bool) {
	data, ok := payloadFor[*scene.VideoData](e, id, "video")
	if !ok {
		return
	}
	data.Src = src
	data.Autoplay = autoplay
	data.Loop = loop
	data.Muted = muted
	data.Controls = controls
	e.commit("edit video")
}

// SetCardLabel sets a labeled container's label.
func (e *Engine) SetCardLabel(id, label string) {
	data, ok := payloadFor[*scene.CardData](e, id, "card")
	if !ok {
		return
	}
	data.Label = label
	e.commit("edit card")
}

// payloadFor fetches an element's payload as a concrete type, logging
// and reporting false on missing elements or kind mismatches.
func payloadFor[T scene.ElementData](e *Engine, id, want string) (T, bool) {
	var zero T
	el := e.doc.Get(id)
	if el == nil {
		e.log.Warn("edit rejected: no such element", "id", id)
		return zero, false
	}
	data, ok := el.Data.(T)
	if !ok {
		e.log.Warn("edit rejected: kind mismatch", "id", id, "kind", el.Kind.String(), "want", want)
		return zero, false
	}
	return data, true
}

// ---------------------------------------------------------------------------
// Selection. Transient: selection changes are never snapshotted.
// ---------------------------------------------------------------------------

// Select replaces the selection with the given IDs; unknown IDs are dropped.
func (e *Engine) Select(ids ...string) {
	sel := make([]string, 0, len(ids))
	for _, id := range ids {
		if e.doc.Get(id) != nil {
			sel = append(sel, id)
		}
	}
	e.doc.SelectedIDs = sel
}

// AddToSelection appends an ID to the selection if it exists and is not
// already selected.
func (e *Engine) AddToSelection(id string) {
	if e.doc.Get(id) == nil {
		return
	}
	if indexOf(e.doc.SelectedIDs, id) >= 0 {
		return
	}
	e.doc.SelectedIDs = append(e.doc.SelectedIDs, id)
}

// ClearSelection empties the selection.
func (e *Engine) ClearSelection() {
	e.doc.SelectedIDs = nil
}

// SetHovered sets the transient hover target; empty clears it.
func (e *Engine) SetHovered(id string) {
	if id != "" && e.doc.Get(id) == nil {
		return
	}
	e.doc.HoveredID = id
}
