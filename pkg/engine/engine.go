// Package engine implements the mutation engine for Vellum documents.
// It is the only writer of the scene graph: every structural and
// property operation goes through an Engine method, which validates the
// request, applies it, and records a history snapshot. Invalid requests
// are rejected as no-ops with a logged warning rather than errors, so a
// best-effort automation caller can keep going after a bad suggestion.
package engine

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/vellumhq/vellum/pkg/idgen"
	"github.com/vellumhq/vellum/pkg/scene"
)

const (
	// siblingStagger offsets each newly added absolute child from the
	// parent's center so stacked inserts stay individually clickable.
	siblingStagger = 12.0
	// duplicateOffset shifts a duplicate from its source.
	duplicateOffset = 16.0
	// pasteOffset shifts pasted roots when no drop position is given.
	pasteOffset = 24.0

	defaultPageWidth  = 1440.0
	defaultPageHeight = 900.0
	// pageGutter separates page frames on the multi-page canvas.
	pageGutter = 120.0
)

// Engine owns a Document and exposes all mutation operations on it.
// Multiple engines over separate documents are fully independent; the
// engine itself is single-writer and not safe for concurrent use.
type Engine struct {
	doc       *scene.Document
	history   *History
	clipboard *Clipboard
	ids       idgen.Set
	log       *slog.Logger
	onCommit  func(label string)
}

// Option customises engine construction.
type Option func(*Engine)

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.log = l } }

// WithHistoryLimit sets the undo depth. Default: DefaultHistoryLimit.
func WithHistoryLimit(n int) Option { return func(e *Engine) { e.history = NewHistory(n) } }

// WithIDs overrides the identifier generators.
func WithIDs(ids idgen.Set) Option { return func(e *Engine) { e.ids = ids } }

// New wraps a document in an engine. An empty document gets an initial
// page; the post-construction state is saved as the history baseline.
func New(doc *scene.Document, opts ...Option) *Engine {
	e := &Engine{
		doc:       doc,
		clipboard: NewClipboard(),
		ids:       idgen.NewSet(),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.history == nil {
		e.history = NewHistory(DefaultHistoryLimit)
	}
	if len(doc.Pages) == 0 {
		e.insertPage("Home")
	}
	e.commit("initial")
	return e
}

// Document returns the live document. Callers must treat it as read-only.
func (e *Engine) Document() *scene.Document { return e.doc }

// History exposes the undo log (for can-undo/can-redo UI state).
func (e *Engine) History() *History { return e.history }

// Clipboard exposes the clipboard (for paste-enabled UI state).
func (e *Engine) Clipboard() *Clipboard { return e.clipboard }

// OnCommit registers a callback invoked after every history commit, with
// the commit's action label. Used by the app shell for autosave. The
// callback runs on the mutating goroutine and must not mutate back.
func (e *Engine) OnCommit(fn func(label string)) { e.onCommit = fn }

// commit snapshots the current document state under an action label.
func (e *Engine) commit(label string) {
	e.history.Save(label, e.doc.Snapshot())
	if e.onCommit != nil {
		e.onCommit(label)
	}
}

// Undo restores the previous history snapshot. No-op at the baseline.
func (e *Engine) Undo() bool {
	snap := e.history.Undo()
	if snap == nil {
		return false
	}
	e.doc.Restore(snap)
	return true
}

// SetProjectName renames the project. The rename is committed to history
// so it participates in undo like any other document change.
func (e *Engine) SetProjectName(name string) {
	if name == "" {
		e.log.Warn("rename rejected: empty project name")
		return
	}
	if e.doc.ProjectName == name {
		return
	}
	e.doc.ProjectName = name
	e.commit("rename project")
}

// LoadSnapshot replaces the document with a stored snapshot and restarts
// the undo history from the loaded state. The clipboard is cleared since
// its IDs no longer refer to anything.
func (e *Engine) LoadSnapshot(projectName string, snap *scene.Snapshot) {
	e.doc.Restore(snap)
	if projectName != "" {
		e.doc.ProjectName = projectName
	}
	e.rebaseIDs()
	e.history = NewHistory(e.history.limit)
	e.clipboard.Clear()
	e.commit("load")
}

// rebaseIDs restarts the sequential generators past the highest numeric
// suffix in the document, so fresh IDs never collide with IDs minted by
// the run that produced the loaded snapshot.
func (e *Engine) rebaseIDs() {
	var maxEl, maxPg uint64
	for id := range e.doc.Elements {
		maxEl = max(maxEl, numericSuffix(id, "element-"))
	}
	for id := range e.doc.Pages {
		maxPg = max(maxPg, numericSuffix(id, "page-"))
	}
	e.ids.Element = idgen.SequentialFrom("element", maxEl)
	e.ids.Page = idgen.SequentialFrom("page", maxPg)
}

func numericSuffix(id, prefix string) uint64 {
	if !strings.HasPrefix(id, prefix) {
		return 0
	}
	n, err := strconv.ParseUint(id[len(prefix):], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Redo restores the next history snapshot. No-op at the tip.
func (e *Engine) Redo() bool {
	snap := e.history.Redo()
	if snap == nil {
		return false
	}
	e.doc.Restore(snap)
	return true
}

// ---------------------------------------------------------------------------
// Structural operations
// ---------------------------------------------------------------------------

// AddElement inserts a new leaf of the given kind under parentID (the
// current page root when empty) and returns its ID. Inside an
// auto-layout parent the child is positioned by the layout algorithm;
// otherwise it is centered in the parent's padded content box with a
// small stagger per existing sibling, or placed at the explicit
// position when one is given. Returns "" on invalid input.
func (e *Engine) AddElement(kind scene.ElementKind, parentID string, at *scene.Position) string {
	if kind == scene.KindPageRoot {
		e.log.Warn("add rejected: page roots are created by AddPage")
		return ""
	}
	parent := e.resolveParent(parentID)
	if parent == nil {
		e.log.Warn("add rejected: no such parent", "parent", parentID)
		return ""
	}
	if !parent.Kind.IsContainer() {
		e.log.Warn("add rejected: parent is not a container", "parent", parentID, "kind", parent.Kind.String())
		return ""
	}

	el := &scene.Element{
		ID:      e.ids.Element(),
		Kind:    kind,
		Name:    defaultName(kind),
		Size:    defaultSize(kind),
		Styles:  defaultStyles(kind),
		Data:    scene.DefaultData(kind),
		Visible: true,
	}
	if parent.Styles.IsAutoLayout() {
		el.PositionType = scene.PositionRelative
	} else {
		el.PositionType = scene.PositionAbsolute
		if at != nil {
			el.Position = *at
		} else {
			el.Position = e.centeredPosition(parent, el.Size)
		}
	}

	el.ParentID = parent.ID
	parent.Children = append(parent.Children, el.ID)
	e.doc.Elements[el.ID] = el
	e.commit("add " + kind.String())
	return el.ID
}

// DeleteElement removes the subtree rooted at id. Page roots cannot be
// deleted directly; use DeletePage.
func (e *Engine) DeleteElement(id string) {
	el := e.doc.Get(id)
	if el == nil {
		e.log.Warn("delete rejected: no such element", "id", id)
		return
	}
	if el.Kind == scene.KindPageRoot {
		e.log.Warn("delete rejected: cannot delete a page root", "id", id)
		return
	}
	e.removeSubtree(el)
	e.commit("delete")
}

// removeSubtree detaches el from its parent and deletes el plus all
// descendants from the arena and the selection. No history.
func (e *Engine) removeSubtree(el *scene.Element) {
	if parent := e.doc.Get(el.ParentID); parent != nil {
		parent.Children = removeID(parent.Children, el.ID)
	}
	ids := make([]string, 0, 8)
	for _, n := range e.doc.Subtree(el) {
		ids = append(ids, n.ID)
	}
	for _, id := range ids {
		delete(e.doc.Elements, id)
	}
	e.doc.Deselect(ids...)
}

// DuplicateElement deep-clones the subtree at id with fresh IDs and
// inserts the clone as the next sibling of the source. Returns the
// clone's root ID, or "" on invalid input.
func (e *Engine) DuplicateElement(id string) string {
	src := e.doc.Get(id)
	if src == nil {
		e.log.Warn("duplicate rejected: no such element", "id", id)
		return ""
	}
	if src.Kind == scene.KindPageRoot {
		e.log.Warn("duplicate rejected: cannot duplicate a page root", "id", id)
		return ""
	}
	parent := e.doc.Get(src.ParentID)
	if parent == nil {
		e.log.Warn("duplicate rejected: source has no parent", "id", id)
		return ""
	}

	clones, remap := e.cloneSubtree(src)
	root := clones[remap[src.ID]]
	root.ParentID = parent.ID
	if !parent.Styles.IsAutoLayout() {
		root.Position.X += duplicateOffset
		root.Position.Y += duplicateOffset
	}
	for _, c := range clones {
		e.doc.Elements[c.ID] = c
	}
	parent.Children = insertAfter(parent.Children, src.ID, root.ID)
	e.commit("duplicate")
	return root.ID
}

// cloneSubtree clones src and all descendants with fresh IDs, remapping
// internal parent/children references. Returns the clones keyed by new
// ID plus the old->new ID map.
func (e *Engine) cloneSubtree(src *scene.Element) (map[string]*scene.Element, map[string]string) {
	nodes := e.doc.Subtree(src)
	remap := make(map[string]string, len(nodes))
	for _, n := range nodes {
		remap[n.ID] = e.ids.Element()
	}
	clones := make(map[string]*scene.Element, len(nodes))
	for _, n := range nodes {
		c := n.Clone()
		c.ID = remap[n.ID]
		if mapped, ok := remap[n.ParentID]; ok {
			c.ParentID = mapped
		}
		for i, cid := range c.Children {
			c.Children[i] = remap[cid]
		}
		clones[c.ID] = c
	}
	return clones, remap
}

// MoveElement sets an element's position. Locked elements and page
// roots (whose placement belongs to the page canvas) are left alone.
func (e *Engine) MoveElement(id string, pos scene.Position) {
	el := e.doc.Get(id)
	if el == nil {
		e.log.Warn("move rejected: no such element", "id", id)
		return
	}
	if el.Locked {
		e.log.Warn("move rejected: element is locked", "id", id)
		return
	}
	if el.Kind == scene.KindPageRoot {
		e.log.Warn("move rejected: page roots move with their page", "id", id)
		return
	}
	el.Position = pos
	e.commit("move")
}

// ResizeElement sets an element's size. Resizing a page root also
// updates the owning page's authoritative width/height.
func (e *Engine) ResizeElement(id string, size scene.Size) {
	el := e.doc.Get(id)
	if el == nil {
		e.log.Warn("resize rejected: no such element", "id", id)
		return
	}
	if el.Locked {
		e.log.Warn("resize rejected: element is locked", "id", id)
		return
	}
	el.Size = size
	if el.Kind == scene.KindPageRoot {
		if p := e.doc.PageOf(el.ID); p != nil {
			p.Width = size.Width
			p.Height = size.Height
		}
	}
	e.commit("resize")
}

// ReparentElement detaches id from its parent and appends it to
// newParentID's children. Rejected when it would create a cycle
// (newParentID is id or one of its descendants).
func (e *Engine) ReparentElement(id, newParentID string) {
	el := e.doc.Get(id)
	newParent := e.doc.Get(newParentID)
	switch {
	case el == nil || newParent == nil:
		e.log.Warn("reparent rejected: missing element", "id", id, "newParent", newParentID)
		return
	case el.Kind == scene.KindPageRoot:
		e.log.Warn("reparent rejected: cannot reparent a page root", "id", id)
		return
	case !newParent.Kind.IsContainer():
		e.log.Warn("reparent rejected: new parent is not a container", "newParent", newParentID)
		return
	case e.doc.IsDescendant(id, newParentID):
		e.log.Warn("reparent rejected: would create a cycle", "id", id, "newParent", newParentID)
		return
	}
	if old := e.doc.Get(el.ParentID); old != nil {
		old.Children = removeID(old.Children, el.ID)
	}
	newParent.Children = append(newParent.Children, el.ID)
	el.ParentID = newParent.ID
	if newParent.Styles.IsAutoLayout() {
		el.PositionType = scene.PositionRelative
	}
	e.commit("reparent")
}

// WrapInFrame groups sibling elements into a new frame sized to their
// bounding box, translating their geometry into the frame's local
// space. The frame takes the spliced-out siblings' earliest child slot.
// Returns the frame's ID, or "" when the selection is empty or spans
// different parents.
func (e *Engine) WrapInFrame(ids []string) string {
	if len(ids) == 0 {
		e.log.Warn("wrap rejected: empty selection")
		return ""
	}
	first := e.doc.Get(ids[0])
	if first == nil {
		e.log.Warn("wrap rejected: no such element", "id", ids[0])
		return ""
	}
	if first.Kind == scene.KindPageRoot {
		e.log.Warn("wrap rejected: cannot wrap a page root")
		return ""
	}
	parent := e.doc.Get(first.ParentID)
	if parent == nil {
		e.log.Warn("wrap rejected: selection has no parent", "id", first.ID)
		return ""
	}
	selected := make([]*scene.Element, 0, len(ids))
	for _, id := range ids {
		el := e.doc.Get(id)
		if el == nil || el.ParentID != parent.ID {
			e.log.Warn("wrap rejected: selection is not sibling-uniform", "id", id)
			return ""
		}
		selected = append(selected, el)
	}

	// Bounding box over the selection, in the parent's space.
	minX, minY := selected[0].Position.X, selected[0].Position.Y
	maxX := minX + selected[0].Size.Width
	maxY := minY + selected[0].Size.Height
	for _, el := range selected[1:] {
		minX = min(minX, el.Position.X)
		minY = min(minY, el.Position.Y)
		maxX = max(maxX, el.Position.X+el.Size.Width)
		maxY = max(maxY, el.Position.Y+el.Size.Height)
	}

	// Earliest child slot among the selection keeps paint order stable.
	slot := len(parent.Children)
	inSel := make(map[string]bool, len(ids))
	for _, id := range ids {
		inSel[id] = true
	}
	for i, cid := range parent.Children {
		if inSel[cid] {
			slot = i
			break
		}
	}

	frame := &scene.Element{
		ID:           e.ids.Element(),
		Kind:         scene.KindFrame,
		Name:         "Group",
		ParentID:     parent.ID,
		Position:     scene.Position{X: minX, Y: minY},
		Size:         scene.Size{Width: maxX - minX, Height: maxY - minY},
		PositionType: scene.PositionAbsolute,
		Visible:      true,
	}
	if parent.Styles.IsAutoLayout() {
		frame.PositionType = scene.PositionRelative
	}
	e.doc.Elements[frame.ID] = frame

	// Rebuild the parent's child list: selected IDs move into the frame
	// in their original relative order, the frame takes the slot.
	kept := make([]string, 0, len(parent.Children)+1)
	for i, cid := range parent.Children {
		if i == slot {
			kept = append(kept, frame.ID)
		}
		if inSel[cid] {
			el := e.doc.Elements[cid]
			el.ParentID = frame.ID
			el.Position.X -= minX
			el.Position.Y -= minY
			frame.Children = append(frame.Children, cid)
			continue
		}
		kept = append(kept, cid)
	}
	parent.Children = kept
	e.commit("group")
	return frame.ID
}

// Ungroup splices a container's children up into its own parent at the
// container's former index, translating geometry back into the parent's
// space, then removes the empty container.
func (e *Engine) Ungroup(id string) {
	group := e.doc.Get(id)
	if group == nil {
		e.log.Warn("ungroup rejected: no such element", "id", id)
		return
	}
	if group.Kind == scene.KindPageRoot {
		e.log.Warn("ungroup rejected: cannot ungroup a page root", "id", id)
		return
	}
	if len(group.Children) == 0 {
		e.log.Warn("ungroup rejected: container has no children", "id", id)
		return
	}
	parent := e.doc.Get(group.ParentID)
	if parent == nil {
		e.log.Warn("ungroup rejected: container has no parent", "id", id)
		return
	}

	slot := indexOf(parent.Children, group.ID)
	children := append([]string(nil), group.Children...)
	for _, cid := range children {
		el := e.doc.Elements[cid]
		el.ParentID = parent.ID
		el.Position.X += group.Position.X
		el.Position.Y += group.Position.Y
	}
	spliced := make([]string, 0, len(parent.Children)-1+len(children))
	spliced = append(spliced, parent.Children[:slot]...)
	spliced = append(spliced, children...)
	spliced = append(spliced, parent.Children[slot+1:]...)
	parent.Children = spliced

	delete(e.doc.Elements, group.ID)
	e.doc.Deselect(group.ID)
	e.commit("ungroup")
}

// ---------------------------------------------------------------------------
// Clipboard operations
// ---------------------------------------------------------------------------

// Copy fills the clipboard with the current selection's flattened
// subtrees. Page roots are skipped.
func (e *Engine) Copy() {
	nodes := e.collectSelection()
	if len(nodes) == 0 {
		e.log.Warn("copy rejected: nothing selected")
		return
	}
	e.clipboard.Set(nodes)
}

// Cut copies the selection, then deletes it.
func (e *Engine) Cut() {
	nodes := e.collectSelection()
	if len(nodes) == 0 {
		e.log.Warn("cut rejected: nothing selected")
		return
	}
	e.clipboard.Set(nodes)
	for _, r := range clipboardRoots(nodes) {
		if el := e.doc.Get(r.ID); el != nil {
			e.removeSubtree(el)
		}
	}
	e.commit("cut")
}

// Paste materializes the clipboard with fresh IDs. Non-root clipboard
// nodes re-attach to their remapped parents; root nodes attach to the
// current page root, offset by a fixed delta unless an explicit drop
// position is given. The pasted roots become the new selection.
func (e *Engine) Paste(at *scene.Position) []string {
	if e.clipboard.IsEmpty() {
		e.log.Warn("paste rejected: clipboard is empty")
		return nil
	}
	page := e.doc.CurrentPage()
	if page == nil {
		e.log.Warn("paste rejected: no current page")
		return nil
	}
	target := e.doc.Get(page.RootElementID)
	nodes := e.clipboard.Nodes()

	remap := make(map[string]string, len(nodes))
	for _, n := range nodes {
		remap[n.ID] = e.ids.Element()
	}
	var pastedRoots []string
	for _, n := range nodes {
		oldParent := n.ParentID
		n.ID = remap[n.ID]
		for i, cid := range n.Children {
			n.Children[i] = remap[cid]
		}
		if mapped, ok := remap[oldParent]; ok {
			n.ParentID = mapped
		} else {
			// Root clipboard node: attach under the current page root.
			n.ParentID = target.ID
			target.Children = append(target.Children, n.ID)
			if at != nil {
				n.Position = *at
			} else {
				n.Position.X += pasteOffset
				n.Position.Y += pasteOffset
			}
			pastedRoots = append(pastedRoots, n.ID)
		}
		e.doc.Elements[n.ID] = n
	}
	e.doc.SelectedIDs = append([]string(nil), pastedRoots...)
	e.commit("paste")
	return pastedRoots
}

// collectSelection flattens the selected subtrees, skipping page roots
// and stale IDs.
func (e *Engine) collectSelection() []*scene.Element {
	var out []*scene.Element
	for _, id := range e.doc.SelectedIDs {
		el := e.doc.Get(id)
		if el == nil || el.Kind == scene.KindPageRoot {
			continue
		}
		out = append(out, e.doc.Subtree(el)...)
	}
	return out
}

// clipboardRoots returns the nodes whose parent is not itself in the list.
func clipboardRoots(nodes []*scene.Element) []*scene.Element {
	in := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		in[n.ID] = true
	}
	var roots []*scene.Element
	for _, n := range nodes {
		if !in[n.ParentID] {
			roots = append(roots, n)
		}
	}
	return roots
}

// ---------------------------------------------------------------------------
// Placement helpers
// ---------------------------------------------------------------------------

// resolveParent maps an empty parent ID to the current page root.
func (e *Engine) resolveParent(parentID string) *scene.Element {
	if parentID != "" {
		return e.doc.Get(parentID)
	}
	page := e.doc.CurrentPage()
	if page == nil {
		return nil
	}
	return e.doc.Get(page.RootElementID)
}

// centeredPosition centers a child of the given size inside the
// parent's padding-inset content box, staggered per existing sibling.
func (e *Engine) centeredPosition(parent *scene.Element, size scene.Size) scene.Position {
	padTop := padSide(parent.Styles, sideTop)
	padLeft := padSide(parent.Styles, sideLeft)
	contentW := parent.Size.Width - padLeft - padSide(parent.Styles, sideRight)
	contentH := parent.Size.Height - padTop - padSide(parent.Styles, sideBottom)
	stagger := float64(len(parent.Children)) * siblingStagger
	return scene.Position{
		X: padLeft + (contentW-size.Width)/2 + stagger,
		Y: padTop + (contentH-size.Height)/2 + stagger,
	}
}

type side int

const (
	sideTop side = iota
	sideRight
	sideBottom
	sideLeft
)

// padSide resolves one padding side: per-side override first, then the
// uniform shorthand, then zero.
func padSide(s *scene.Styles, sd side) float64 {
	if s == nil {
		return 0
	}
	var per *float64
	switch sd {
	case sideTop:
		per = s.PaddingTop
	case sideRight:
		per = s.PaddingRight
	case sideBottom:
		per = s.PaddingBottom
	case sideLeft:
		per = s.PaddingLeft
	}
	if per != nil {
		return *per
	}
	if s.Padding != nil {
		return *s.Padding
	}
	return 0
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func insertAfter(ids []string, after, id string) []string {
	i := indexOf(ids, after)
	if i < 0 {
		return append(ids, id)
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:i+1]...)
	out = append(out, id)
	out = append(out, ids[i+1:]...)
	return out
}
