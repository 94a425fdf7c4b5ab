package engine

import (
	"fmt"
	"testing"

	"github.com/vellumhq/vellum/pkg/scene"
)

func snapNamed(name string) *scene.Snapshot {
	d := scene.NewDocument(name)
	return d.Snapshot()
}

func TestHistorySaveUndoRedo(t *testing.T) {
	h := NewHistory(10)
	h.Save("a", snapNamed("a"))
	h.Save("b", snapNamed("b"))
	h.Save("c", snapNamed("c"))

	if h.Len() != 3 || h.CurrentLabel() != "c" {
		t.Fatalf("len=%d label=%q", h.Len(), h.CurrentLabel())
	}
	if snap := h.Undo(); snap == nil || snap.ProjectName != "b" {
		t.Fatalf("undo -> %v", snap)
	}
	if snap := h.Undo(); snap == nil || snap.ProjectName != "a" {
		t.Fatalf("undo -> %v", snap)
	}
	if h.Undo() != nil {
		t.Error("undo past the baseline should return nil")
	}
	if snap := h.Redo(); snap == nil || snap.ProjectName != "b" {
		t.Fatalf("redo -> %v", snap)
	}
}

func TestHistoryTruncatesFutureOnSave(t *testing.T) {
	h := NewHistory(10)
	h.Save("a", snapNamed("a"))
	h.Save("b", snapNamed("b"))
	h.Save("c", snapNamed("c"))
	h.Undo()
	h.Undo()
	h.Save("d", snapNamed("d"))

	if h.Len() != 2 {
		t.Errorf("len = %d, want 2 (a, d)", h.Len())
	}
	if h.CanRedo() {
		t.Error("redo future should be discarded")
	}
	if h.CurrentLabel() != "d" {
		t.Errorf("label = %q, want d", h.CurrentLabel())
	}
}

func TestHistoryEvictsOldestAtLimit(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("s%d", i)
		h.Save(name, snapNamed(name))
	}
	if h.Len() != 3 {
		t.Fatalf("len = %d, want 3", h.Len())
	}
	// Walk back to the oldest surviving entry.
	var last *scene.Snapshot
	for s := h.Undo(); s != nil; s = h.Undo() {
		last = s
	}
	if last == nil || last.ProjectName != "s2" {
		t.Errorf("oldest survivor = %v, want s2", last)
	}
}

func TestHistoryReturnsClones(t *testing.T) {
	h := NewHistory(10)
	h.Save("a", snapNamed("a"))
	h.Save("b", snapNamed("b"))

	got := h.Undo()
	got.ProjectName = "mutated"

	h.Redo()
	if again := h.Undo(); again.ProjectName != "a" {
		t.Errorf("history entry mutated through returned snapshot: %q", again.ProjectName)
	}
}

func TestHistoryLimitFallback(t *testing.T) {
	h := NewHistory(0)
	if h.limit != DefaultHistoryLimit {
		t.Errorf("limit = %d, want %d", h.limit, DefaultHistoryLimit)
	}
}
