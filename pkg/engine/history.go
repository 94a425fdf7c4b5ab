package engine

import "github.com/vellumhq/vellum/pkg/scene"

// DefaultHistoryLimit is the maximum number of snapshots kept.
const DefaultHistoryLimit = 50

// historyEntry pairs a snapshot with the action label that produced it.
type historyEntry struct {
	label string
	snap  *scene.Snapshot
}

// History is a bounded linear undo log of whole-document snapshots.
// Entries are immutable once appended; undo/redo only move the index,
// and a new save after undos truncates the discarded future.
type History struct {
	entries []historyEntry
	index   int // current position; -1 before the first save
	limit   int
}

// NewHistory returns an empty history with the given depth limit.
// Limits below 1 fall back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	return &History{index: -1, limit: limit}
}

// Save records a snapshot as the new current entry. Any entries after
// the current index (a future created by prior undos) are discarded
// first; once the log exceeds the limit the oldest entry is evicted.
func (h *History) Save(label string, snap *scene.Snapshot) {
	h.entries = h.entries[:h.index+1]
	h.entries = append(h.entries, historyEntry{label: label, snap: snap})
	h.index++
	if len(h.entries) > h.limit {
		over := len(h.entries) - h.limit
		h.entries = append([]historyEntry(nil), h.entries[over:]...)
		h.index -= over
	}
}

// Undo steps back one entry and returns a copy of the snapshot to
// restore, or nil when already at the baseline.
func (h *History) Undo() *scene.Snapshot {
	if h.index < 1 {
		return nil
	}
	h.index--
	return h.entries[h.index].snap.Clone()
}

// Redo steps forward one entry and returns a copy of the snapshot to
// restore, or nil when already at the tip.
func (h *History) Redo() *scene.Snapshot {
	if h.index >= len(h.entries)-1 {
		return nil
	}
	h.index++
	return h.entries[h.index].snap.Clone()
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }

// Len returns the number of entries in the log.
func (h *History) Len() int { return len(h.entries) }

// CurrentLabel returns the label of the current entry, or "".
func (h *History) CurrentLabel() string {
	if h.index < 0 || h.index >= len(h.entries) {
		return ""
	}
	return h.entries[h.index].label
}
