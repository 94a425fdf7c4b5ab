package scene

import (
	"encoding/json"
	"fmt"
)

// Document is the live scene graph plus transient editor state. All
// mutation goes through the engine package; other components read only.
type Document struct {
	ProjectName   string
	Elements      map[string]*Element
	Pages         map[string]*Page
	PageOrder     []string // canvas/emission order of pages
	CurrentPageID string

	// Transient selection state: never snapshotted, never serialized.
	SelectedIDs []string
	HoveredID   string
}

// NewDocument returns an empty document with initialized maps.
func NewDocument(projectName string) *Document {
	return &Document{
		ProjectName: projectName,
		Elements:    make(map[string]*Element),
		Pages:       make(map[string]*Page),
	}
}

// Get returns the element with the given ID, or nil.
func (d *Document) Get(id string) *Element {
	return d.Elements[id]
}

// Page returns the page with the given ID, or nil.
func (d *Document) Page(id string) *Page {
	return d.Pages[id]
}

// CurrentPage returns the current page, or nil when the document is empty.
func (d *Document) CurrentPage() *Page {
	return d.Pages[d.CurrentPageID]
}

// Children returns the resolved child elements of e, in paint order.
// Dangling IDs are skipped.
func (d *Document) Children(e *Element) []*Element {
	out := make([]*Element, 0, len(e.Children))
	for _, id := range e.Children {
		if c := d.Elements[id]; c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits e and all its descendants depth-first in child order.
// Traversal stops when fn returns false for a node's subtree.
func (d *Document) Walk(e *Element, fn func(*Element) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range d.Children(e) {
		d.Walk(c, fn)
	}
}

// Subtree returns e plus all descendants, depth-first in child order.
func (d *Document) Subtree(e *Element) []*Element {
	var out []*Element
	d.Walk(e, func(n *Element) bool {
		out = append(out, n)
		return true
	})
	return out
}

// IsDescendant reports whether id is ancestor itself or sits anywhere
// below it. Walks parent pointers so it is safe on any tree shape.
func (d *Document) IsDescendant(ancestorID, id string) bool {
	for cur := id; cur != ""; {
		if cur == ancestorID {
			return true
		}
		e := d.Elements[cur]
		if e == nil {
			return false
		}
		cur = e.ParentID
	}
	return false
}

// PageOf returns the page whose tree contains the element, or nil.
func (d *Document) PageOf(id string) *Page {
	root := id
	for {
		e := d.Elements[root]
		if e == nil {
			return nil
		}
		if e.ParentID == "" {
			break
		}
		root = e.ParentID
	}
	for _, p := range d.Pages {
		if p.RootElementID == root {
			return p
		}
	}
	return nil
}

// Deselect removes ids from the current selection, if present.
func (d *Document) Deselect(ids ...string) {
	if len(d.SelectedIDs) == 0 {
		return
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := d.SelectedIDs[:0]
	for _, id := range d.SelectedIDs {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	d.SelectedIDs = kept
	if drop[d.HoveredID] {
		d.HoveredID = ""
	}
}

// ---------------------------------------------------------------------------
// Snapshots
// ---------------------------------------------------------------------------

// Snapshot is a deep copy of the persisted document state. It excludes
// transient selection and is the unit of undo history and persistence.
type Snapshot struct {
	ProjectName   string              `json:"projectName"`
	Pages         map[string]*Page    `json:"pages"`
	PageOrder     []string            `json:"pageOrder"`
	Elements      map[string]*Element `json:"elements"`
	CurrentPageID string              `json:"currentPageId"`
}

// Snapshot deep-copies the persisted state.
func (d *Document) Snapshot() *Snapshot {
	s := &Snapshot{
		ProjectName:   d.ProjectName,
		Pages:         make(map[string]*Page, len(d.Pages)),
		PageOrder:     append([]string(nil), d.PageOrder...),
		Elements:      make(map[string]*Element, len(d.Elements)),
		CurrentPageID: d.CurrentPageID,
	}
	for id, p := range d.Pages {
		s.Pages[id] = p.Clone()
	}
	for id, e := range d.Elements {
		s.Elements[id] = e.Clone()
	}
	return s
}

// Restore replaces the persisted state wholesale from a snapshot and
// clears the selection. The snapshot itself is deep-copied so later
// mutations never reach back into the history log.
func (d *Document) Restore(s *Snapshot) {
	d.ProjectName = s.ProjectName
	d.Pages = make(map[string]*Page, len(s.Pages))
	for id, p := range s.Pages {
		d.Pages[id] = p.Clone()
	}
	d.Elements = make(map[string]*Element, len(s.Elements))
	for id, e := range s.Elements {
		d.Elements[id] = e.Clone()
	}
	d.PageOrder = append([]string(nil), s.PageOrder...)
	d.CurrentPageID = s.CurrentPageID
	d.SelectedIDs = nil
	d.HoveredID = ""
}

// Clone deep-copies a snapshot (used by the history log on both save
// and restore so entries stay immutable).
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		ProjectName:   s.ProjectName,
		Pages:         make(map[string]*Page, len(s.Pages)),
		PageOrder:     append([]string(nil), s.PageOrder...),
		Elements:      make(map[string]*Element, len(s.Elements)),
		CurrentPageID: s.CurrentPageID,
	}
	for id, p := range s.Pages {
		out.Pages[id] = p.Clone()
	}
	for id, e := range s.Elements {
		out.Elements[id] = e.Clone()
	}
	return out
}

// MarshalSnapshot encodes a snapshot to its canonical JSON form.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("scene: marshal snapshot: %w", err)
	}
	return b, nil
}

// UnmarshalSnapshot decodes a snapshot from JSON.
func UnmarshalSnapshot(b []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("scene: unmarshal snapshot: %w", err)
	}
	if s.Pages == nil {
		s.Pages = make(map[string]*Page)
	}
	if s.Elements == nil {
		s.Elements = make(map[string]*Element)
	}
	return &s, nil
}
