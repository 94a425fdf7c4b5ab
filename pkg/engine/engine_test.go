package engine

import (
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/vellumhq/vellum/pkg/scene"
)

// newEngine returns an engine over a fresh document with warnings
// silenced and deterministic sequential IDs.
func newEngine(t *testing.T) *Engine {
	t.Helper()
	return New(scene.NewDocument("test"),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

// mustValidate fails the test when the document violates a structural
// invariant. Run after every mutation under test.
func mustValidate(t *testing.T, e *Engine) {
	t.Helper()
	if errs := scene.Validate(e.Document()); len(errs) != 0 {
		t.Fatalf("document invalid: %v", errs)
	}
}

func currentRoot(e *Engine) *scene.Element {
	page := e.Document().CurrentPage()
	return e.Document().Get(page.RootElementID)
}

func TestNewCreatesHomePage(t *testing.T) {
	e := newEngine(t)
	doc := e.Document()
	if len(doc.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(doc.Pages))
	}
	page := doc.CurrentPage()
	if page == nil || page.Name != "Home" {
		t.Fatalf("current page = %+v, want Home", page)
	}
	root := doc.Get(page.RootElementID)
	if root == nil || root.Kind != scene.KindPageRoot {
		t.Fatal("page root missing or wrong kind")
	}
	mustValidate(t, e)
}

func TestAddElement(t *testing.T) {
	e := newEngine(t)
	id := e.AddElement(scene.KindText, "", nil)
	if id == "" {
		t.Fatal("add returned empty id")
	}
	el := e.Document().Get(id)
	if el.ParentID != currentRoot(e).ID {
		t.Errorf("parent = %s, want current page root", el.ParentID)
	}
	if el.Data.(*scene.TextData).Content != "Text" {
		t.Errorf("default content = %q", el.Data.(*scene.TextData).Content)
	}
	if el.PositionType != scene.PositionAbsolute {
		t.Error("child of a plain root should be absolute")
	}
	mustValidate(t, e)
}

func TestAddElementRejections(t *testing.T) {
	e := newEngine(t)
	if id := e.AddElement(scene.KindPageRoot, "", nil); id != "" {
		t.Error("adding a page root should be rejected")
	}
	if id := e.AddElement(scene.KindText, "ghost", nil); id != "" {
		t.Error("unknown parent should be rejected")
	}
	text := e.AddElement(scene.KindText, "", nil)
	if id := e.AddElement(scene.KindButton, text, nil); id != "" {
		t.Error("non-container parent should be rejected")
	}
	mustValidate(t, e)
}

func TestAddIntoAutoLayoutParent(t *testing.T) {
	e := newEngine(t)
	stack := e.AddElement(scene.KindStack, "", nil)
	child := e.AddElement(scene.KindText, stack, nil)
	el := e.Document().Get(child)
	if el.PositionType != scene.PositionRelative {
		t.Error("child of a flex stack should be relative")
	}
	mustValidate(t, e)
}

func TestDeleteElementRemovesSubtree(t *testing.T) {
	e := newEngine(t)
	frame := e.AddElement(scene.KindFrame, "", nil)
	inner := e.AddElement(scene.KindText, frame, nil)
	e.Select(inner)

	e.DeleteElement(frame)
	doc := e.Document()
	if doc.Get(frame) != nil || doc.Get(inner) != nil {
		t.Error("subtree not fully removed")
	}
	if len(doc.SelectedIDs) != 0 {
		t.Error("deleted element should leave the selection")
	}
	mustValidate(t, e)

	// Page roots are protected.
	before := len(doc.Elements)
	e.DeleteElement(currentRoot(e).ID)
	if len(e.Document().Elements) != before {
		t.Error("page root deletion should be a no-op")
	}
}

func TestDuplicateElementRemapsIDs(t *testing.T) {
	e := newEngine(t)
	frame := e.AddElement(scene.KindFrame, "", nil)
	text := e.AddElement(scene.KindText, frame, nil)
	e.SetTextContent(text, "original")

	clone := e.DuplicateElement(frame)
	if clone == "" || clone == frame {
		t.Fatalf("clone id = %q", clone)
	}
	doc := e.Document()
	cl := doc.Get(clone)
	if len(cl.Children) != 1 {
		t.Fatalf("clone children = %d, want 1", len(cl.Children))
	}
	if cl.Children[0] == text {
		t.Error("clone reuses source child id")
	}
	clonedText := doc.Get(cl.Children[0])
	if clonedText.Data.(*scene.TextData).Content != "original" {
		t.Error("payload not copied")
	}
	// Mutating the clone must not touch the source.
	clonedText.Data.(*scene.TextData).Content = "changed"
	if doc.Get(text).Data.(*scene.TextData).Content != "original" {
		t.Error("clone aliases source payload")
	}
	// Clone lands right after the source in paint order.
	root := currentRoot(e)
	if i, j := indexOf(root.Children, frame), indexOf(root.Children, clone); j != i+1 {
		t.Errorf("clone slot = %d, want %d", j, i+1)
	}
	mustValidate(t, e)
}

func TestMoveRejectsLocked(t *testing.T) {
	e := newEngine(t)
	id := e.AddElement(scene.KindFrame, "", nil)
	e.SetLocked(id, true)
	was := e.Document().Get(id).Position

	e.MoveElement(id, scene.Position{X: 999, Y: 999})
	if got := e.Document().Get(id).Position; got != was {
		t.Errorf("locked element moved: %+v", got)
	}
}

func TestResizePageRootUpdatesPage(t *testing.T) {
	e := newEngine(t)
	root := currentRoot(e)
	e.ResizeElement(root.ID, scene.Size{Width: 1920, Height: 1080})
	page := e.Document().CurrentPage()
	if page.Width != 1920 || page.Height != 1080 {
		t.Errorf("page size = %vx%v, want 1920x1080", page.Width, page.Height)
	}
}

func TestReparent(t *testing.T) {
	e := newEngine(t)
	a := e.AddElement(scene.KindFrame, "", nil)
	b := e.AddElement(scene.KindStack, "", nil)
	child := e.AddElement(scene.KindText, a, nil)

	e.ReparentElement(child, b)
	doc := e.Document()
	if doc.Get(child).ParentID != b {
		t.Fatal("reparent did not move the element")
	}
	if indexOf(doc.Get(a).Children, child) >= 0 {
		t.Error("old parent still lists the child")
	}
	if doc.Get(child).PositionType != scene.PositionRelative {
		t.Error("moving under a flex stack should switch to relative")
	}
	mustValidate(t, e)
}

func TestReparentRejectsCycle(t *testing.T) {
	e := newEngine(t)
	outer := e.AddElement(scene.KindFrame, "", nil)
	inner := e.AddElement(scene.KindFrame, outer, nil)

	e.ReparentElement(outer, inner)
	if e.Document().Get(outer).ParentID == inner {
		t.Error("cycle-creating reparent was applied")
	}
	e.ReparentElement(outer, outer)
	if e.Document().Get(outer).ParentID == outer {
		t.Error("self-reparent was applied")
	}
	mustValidate(t, e)
}

func TestWrapInFrame(t *testing.T) {
	e := newEngine(t)
	a := e.AddElement(scene.KindText, "", &scene.Position{X: 100, Y: 100})
	b := e.AddElement(scene.KindButton, "", &scene.Position{X: 300, Y: 200})

	frame := e.WrapInFrame([]string{a, b})
	if frame == "" {
		t.Fatal("wrap rejected a valid sibling selection")
	}
	doc := e.Document()
	f := doc.Get(frame)
	if f.Position.X != 100 || f.Position.Y != 100 {
		t.Errorf("frame origin = %+v, want 100,100", f.Position)
	}
	if doc.Get(a).Position.X != 0 || doc.Get(a).Position.Y != 0 {
		t.Errorf("wrapped child not translated: %+v", doc.Get(a).Position)
	}
	if doc.Get(b).Position.X != 200 || doc.Get(b).Position.Y != 100 {
		t.Errorf("wrapped child geometry wrong: %+v", doc.Get(b).Position)
	}
	mustValidate(t, e)
}

func TestWrapRejectsMixedParents(t *testing.T) {
	e := newEngine(t)
	frame := e.AddElement(scene.KindFrame, "", nil)
	inside := e.AddElement(scene.KindText, frame, nil)
	outside := e.AddElement(scene.KindText, "", nil)

	if got := e.WrapInFrame([]string{inside, outside}); got != "" {
		t.Error("wrap should reject a selection spanning parents")
	}
	mustValidate(t, e)
}

func TestUngroupInvertsWrap(t *testing.T) {
	e := newEngine(t)
	a := e.AddElement(scene.KindText, "", &scene.Position{X: 100, Y: 100})
	b := e.AddElement(scene.KindButton, "", &scene.Position{X: 300, Y: 200})
	frame := e.WrapInFrame([]string{a, b})

	e.Ungroup(frame)
	doc := e.Document()
	if doc.Get(frame) != nil {
		t.Error("container survived ungroup")
	}
	if p := doc.Get(a).Position; p.X != 100 || p.Y != 100 {
		t.Errorf("a position = %+v, want original 100,100", p)
	}
	if p := doc.Get(b).Position; p.X != 300 || p.Y != 200 {
		t.Errorf("b position = %+v, want original 300,200", p)
	}
	if doc.Get(a).ParentID != currentRoot(e).ID {
		t.Error("children did not return to the outer parent")
	}
	mustValidate(t, e)
}

func TestCopyPasteRemapsIDs(t *testing.T) {
	e := newEngine(t)
	frame := e.AddElement(scene.KindFrame, "", &scene.Position{X: 50, Y: 50})
	text := e.AddElement(scene.KindText, frame, nil)
	e.Select(frame)
	e.Copy()

	roots := e.Paste(nil)
	if len(roots) != 1 {
		t.Fatalf("pasted roots = %d, want 1", len(roots))
	}
	doc := e.Document()
	pasted := doc.Get(roots[0])
	if pasted.ID == frame {
		t.Error("paste reused the source id")
	}
	if pasted.Position.X != 50+pasteOffset || pasted.Position.Y != 50+pasteOffset {
		t.Errorf("paste offset wrong: %+v", pasted.Position)
	}
	if len(pasted.Children) != 1 || pasted.Children[0] == text {
		t.Error("descendant ids not remapped")
	}
	if len(doc.SelectedIDs) != 1 || doc.SelectedIDs[0] != roots[0] {
		t.Error("pasted roots should become the selection")
	}
	mustValidate(t, e)
}

func TestCutPasteMoves(t *testing.T) {
	e := newEngine(t)
	id := e.AddElement(scene.KindButton, "", nil)
	e.Select(id)
	e.Cut()
	if e.Document().Get(id) != nil {
		t.Fatal("cut left the source in place")
	}
	roots := e.Paste(&scene.Position{X: 10, Y: 20})
	if len(roots) != 1 {
		t.Fatalf("pasted roots = %d, want 1", len(roots))
	}
	if p := e.Document().Get(roots[0]).Position; p.X != 10 || p.Y != 20 {
		t.Errorf("explicit drop position ignored: %+v", p)
	}
	mustValidate(t, e)
}

func TestPasteEmptyClipboard(t *testing.T) {
	e := newEngine(t)
	if roots := e.Paste(nil); roots != nil {
		t.Errorf("paste with empty clipboard = %v, want nil", roots)
	}
}

func TestUndoRedo(t *testing.T) {
	e := newEngine(t)
	id := e.AddElement(scene.KindText, "", nil)
	e.SetTextContent(id, "after")

	if !e.Undo() {
		t.Fatal("undo failed")
	}
	if got := e.Document().Get(id).Data.(*scene.TextData).Content; got != "Text" {
		t.Errorf("after undo content = %q, want default", got)
	}
	if !e.Redo() {
		t.Fatal("redo failed")
	}
	if got := e.Document().Get(id).Data.(*scene.TextData).Content; got != "after" {
		t.Errorf("after redo content = %q, want %q", got, "after")
	}
	mustValidate(t, e)
}

// TestUndoRedoWalkRestoresExactState commits a run of mixed mutations,
// then walks the whole log backwards and forwards, checking the full
// document snapshot is deep-equal at every position.
func TestUndoRedoWalkRestoresExactState(t *testing.T) {
	e := newEngine(t)
	states := []*scene.Snapshot{e.Document().Snapshot()}
	record := func() { states = append(states, e.Document().Snapshot()) }

	frame := e.AddElement(scene.KindFrame, "", nil)
	record()
	text := e.AddElement(scene.KindText, frame, nil)
	record()
	e.SetTextContent(text, "walked")
	record()
	blue := "#0000ff"
	e.UpdateElementStyles(frame, &scene.Styles{BackgroundColor: &blue})
	record()
	e.MoveElement(frame, scene.Position{X: 5, Y: 9})
	record()
	e.AddPage("About")
	record()
	e.DeleteElement(text)
	record()

	steps := len(states) - 1
	for i := steps; i > 0; i-- {
		if !reflect.DeepEqual(e.Document().Snapshot(), states[i]) {
			t.Fatalf("state %d diverged before undo", i)
		}
		if !e.Undo() {
			t.Fatalf("undo %d failed", steps-i+1)
		}
	}
	if !reflect.DeepEqual(e.Document().Snapshot(), states[0]) {
		t.Fatal("full undo did not restore the baseline")
	}
	for i := 1; i <= steps; i++ {
		if !e.Redo() {
			t.Fatalf("redo %d failed", i)
		}
		if !reflect.DeepEqual(e.Document().Snapshot(), states[i]) {
			t.Fatalf("redo did not restore state %d", i)
		}
	}
	mustValidate(t, e)
}

func TestSetProjectName(t *testing.T) {
	e := newEngine(t)
	e.SetProjectName("renamed")
	if got := e.Document().ProjectName; got != "renamed" {
		t.Fatalf("project name = %q", got)
	}
	if !e.Undo() {
		t.Fatal("rename should be undoable")
	}
	if got := e.Document().ProjectName; got != "test" {
		t.Errorf("project name after undo = %q", got)
	}

	// Renaming to the current name or to "" commits nothing.
	e.Redo()
	before := e.History().CanRedo()
	e.SetProjectName("renamed")
	e.SetProjectName("")
	if e.History().CanRedo() != before || e.Document().ProjectName != "renamed" {
		t.Error("no-op renames should not touch history")
	}
}

func TestUndoAtBaseline(t *testing.T) {
	e := newEngine(t)
	if e.Undo() {
		t.Error("undo at the baseline should be a no-op")
	}
	if e.Redo() {
		t.Error("redo at the tip should be a no-op")
	}
}

func TestNewEditTruncatesRedoFuture(t *testing.T) {
	e := newEngine(t)
	e.AddElement(scene.KindText, "", nil)
	e.AddElement(scene.KindButton, "", nil)
	e.Undo()
	e.AddElement(scene.KindImage, "", nil)

	if e.Redo() {
		t.Error("redo should be unavailable after a fresh edit")
	}
	mustValidate(t, e)
}

func TestLoadSnapshotResetsHistory(t *testing.T) {
	e := newEngine(t)
	e.AddElement(scene.KindText, "", nil)
	snap := e.Document().Snapshot()

	e.AddElement(scene.KindButton, "", nil)
	e.LoadSnapshot("loaded", snap)

	if e.Document().ProjectName != "loaded" {
		t.Errorf("project name = %q", e.Document().ProjectName)
	}
	if e.History().CanUndo() {
		t.Error("history should restart at the loaded baseline")
	}
	mustValidate(t, e)
}

func TestLoadSnapshotRebasesIDs(t *testing.T) {
	// Build a snapshot whose IDs run well past a fresh engine's counter.
	src := newEngine(t)
	for i := 0; i < 10; i++ {
		src.AddElement(scene.KindText, "", nil)
	}
	snap := src.Document().Snapshot()

	dst := newEngine(t)
	dst.LoadSnapshot("copy", snap)
	id := dst.AddElement(scene.KindButton, "", nil)
	if _, clash := snap.Elements[id]; clash {
		t.Errorf("fresh id %q collides with a loaded element", id)
	}
	mustValidate(t, dst)
}
