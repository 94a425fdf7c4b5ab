package engine

import "github.com/vellumhq/vellum/pkg/scene"

// Clipboard holds detached copies of cut/copied subtrees. The nodes are
// a flattened list (each selected element plus all its descendants) and
// keep their original IDs; paste remaps every ID to a fresh one, so the
// same clipboard contents can be pasted any number of times.
type Clipboard struct {
	nodes []*scene.Element
}

// NewClipboard returns an empty clipboard.
func NewClipboard() *Clipboard { return &Clipboard{} }

// Set replaces the clipboard contents with deep copies of the given
// flattened subtree list.
func (c *Clipboard) Set(nodes []*scene.Element) {
	c.nodes = make([]*scene.Element, len(nodes))
	for i, n := range nodes {
		c.nodes[i] = n.Clone()
	}
}

// Nodes returns deep copies of the clipboard contents; the live
// clipboard is never shared back into a document.
func (c *Clipboard) Nodes() []*scene.Element {
	out := make([]*scene.Element, len(c.nodes))
	for i, n := range c.nodes {
		out[i] = n.Clone()
	}
	return out
}

// IsEmpty reports whether the clipboard holds anything.
func (c *Clipboard) IsEmpty() bool { return len(c.nodes) == 0 }

// Clear empties the clipboard.
func (c *Clipboard) Clear() { c.nodes = nil }
