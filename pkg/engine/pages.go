package engine

import "github.com/vellumhq/vellum/pkg/scene"

// AddPage creates a page with its root element, places it to the right
// of the rightmost existing page on the canvas, and makes it current.
// Returns the new page's ID.
func (e *Engine) AddPage(name string) string {
	id := e.insertPage(name)
	e.commit("add page")
	return id
}

// insertPage creates page + root without recording history; used by
// both AddPage and engine construction.
func (e *Engine) insertPage(name string) string {
	if name == "" {
		name = "Page"
	}
	canvasX := 0.0
	for _, pid := range e.doc.PageOrder {
		if p := e.doc.Pages[pid]; p != nil {
			canvasX = max(canvasX, p.CanvasX+p.Width+pageGutter)
		}
	}
	root := &scene.Element{
		ID:           e.ids.Element(),
		Kind:         scene.KindPageRoot,
		Name:         name,
		Size:         scene.Size{Width: defaultPageWidth, Height: defaultPageHeight},
		PositionType: scene.PositionAbsolute,
		Styles:       &scene.Styles{BackgroundColor: scene.S("#ffffff")},
		Visible:      true,
	}
	page := &scene.Page{
		ID:            e.ids.Page(),
		Name:          name,
		RootElementID: root.ID,
		Width:         defaultPageWidth,
		Height:        defaultPageHeight,
		CanvasX:       canvasX,
	}
	e.doc.Elements[root.ID] = root
	e.doc.Pages[page.ID] = page
	e.doc.PageOrder = append(e.doc.PageOrder, page.ID)
	e.doc.CurrentPageID = page.ID
	return page.ID
}

// DeletePage removes a page and its whole element tree. The last
// remaining page cannot be deleted.
func (e *Engine) DeletePage(id string) {
	page := e.doc.Page(id)
	if page == nil {
		e.log.Warn("delete page rejected: no such page", "id", id)
		return
	}
	if len(e.doc.Pages) == 1 {
		e.log.Warn("delete page rejected: cannot delete the last page", "id", id)
		return
	}
	if root := e.doc.Get(page.RootElementID); root != nil {
		e.removeSubtree(root)
	}
	delete(e.doc.Pages, id)
	e.doc.PageOrder = removeID(e.doc.PageOrder, id)
	if e.doc.CurrentPageID == id {
		e.doc.CurrentPageID = e.doc.PageOrder[0]
	}
	e.commit("delete page")
}

// RenamePage sets a page's name.
func (e *Engine) RenamePage(id, name string) {
	page := e.doc.Page(id)
	if page == nil {
		e.log.Warn("rename page rejected: no such page", "id", id)
		return
	}
	page.Name = name
	if root := e.doc.Get(page.RootElementID); root != nil {
		root.Name = name
	}
	e.commit("rename page")
}

// SetPageNotes sets a page's free-text notes.
func (e *Engine) SetPageNotes(id, notes string) {
	page := e.doc.Page(id)
	if page == nil {
		e.log.Warn("set notes rejected: no such page", "id", id)
		return
	}
	page.Notes = notes
	e.commit("page notes")
}

// MovePageCanvas repositions a page frame on the multi-page canvas.
func (e *Engine) MovePageCanvas(id string, x, y float64) {
	page := e.doc.Page(id)
	if page == nil {
		e.log.Warn("move page rejected: no such page", "id", id)
		return
	}
	page.CanvasX = x
	page.CanvasY = y
	e.commit("move page")
}

// SetCurrentPage switches the editing context. Transient: no history.
func (e *Engine) SetCurrentPage(id string) {
	if e.doc.Page(id) == nil {
		e.log.Warn("set current page rejected: no such page", "id", id)
		return
	}
	e.doc.CurrentPageID = id
}
