package script

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vellumhq/vellum/pkg/engine"
	"github.com/vellumhq/vellum/pkg/scene"
)

func newRunner(t *testing.T) (*Runner, *engine.Engine) {
	t.Helper()
	eng := engine.New(scene.NewDocument("test"),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return NewRunner(eng), eng
}

func TestRunAddElement(t *testing.T) {
	r, eng := newRunner(t)
	res, err := r.Run(`(add-element :text :content "Hello")`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("errors: %v", res.Errors)
	}
	if res.Value == "" {
		t.Fatal("expected the new element id as the result value")
	}
	el := eng.Document().Get(res.Value)
	if el == nil || el.Kind != scene.KindText {
		t.Fatalf("element not created: %v", el)
	}
	if el.Data.(*scene.TextData).Content != "Hello" {
		t.Errorf("content = %q", el.Data.(*scene.TextData).Content)
	}
}

func TestRunNestedComposition(t *testing.T) {
	r, eng := newRunner(t)
	res, err := r.Run(`(set-styles (add-element :button :label "Go") :bg "#1f2937" :radius 8)`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("errors: %v", res.Errors)
	}
	el := eng.Document().Get(res.Value)
	if el == nil {
		t.Fatal("button not found")
	}
	if el.Data.(*scene.ButtonData).Label != "Go" {
		t.Errorf("label = %q", el.Data.(*scene.ButtonData).Label)
	}
	if el.Styles.BackgroundColor == nil || *el.Styles.BackgroundColor != "#1f2937" {
		t.Error("bg style not applied")
	}
	if el.Styles.BorderRadius == nil || *el.Styles.BorderRadius != 8 {
		t.Error("radius style not applied")
	}
}

func TestRunStyleKeywordValue(t *testing.T) {
	r, eng := newRunner(t)
	res, err := r.Run(`(set-styles (add-element :stack) :display :flex :flex-direction :row :gap 12)`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("errors: %v", res.Errors)
	}
	s := eng.Document().Get(res.Value).Styles
	if s.FlexDirection == nil || *s.FlexDirection != "row" {
		t.Errorf("flex direction = %v", s.FlexDirection)
	}
	if s.Gap == nil || *s.Gap != 12 {
		t.Errorf("gap = %v", s.Gap)
	}
}

func TestRunResponsiveAndPages(t *testing.T) {
	r, eng := newRunner(t)
	script := `
; build a second page and size its heading down on mobile
(add-page "Pricing")
(def heading (add-element :text :content "Plans"))
(set-responsive-styles heading :mobile :font-size 14)
`
	res, err := r.Run(script)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("errors: %v", res.Errors)
	}
	doc := eng.Document()
	if len(doc.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(doc.Pages))
	}
	el := doc.Get(res.Value)
	mob := el.ResponsiveStyles[scene.BreakpointMobile]
	if mob == nil || mob.FontSize == nil || *mob.FontSize != 14 {
		t.Errorf("mobile override = %+v", mob)
	}
}

func TestRunUndoBuiltin(t *testing.T) {
	r, eng := newRunner(t)
	if _, err := r.Run(`(add-element :text)`); err != nil {
		t.Fatal(err)
	}
	before := len(eng.Document().Elements)
	if _, err := r.Run(`(undo)`); err != nil {
		t.Fatal(err)
	}
	if got := len(eng.Document().Elements); got != before-1 {
		t.Errorf("elements after undo = %d, want %d", got, before-1)
	}
}

func TestRunReportsUnknownKind(t *testing.T) {
	r, _ := newRunner(t)
	res, err := r.Run(`(add-element :hologram)`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(res.Errors) == 0 {
		t.Fatal("expected an error for an unknown kind")
	}
	if !strings.Contains(res.Errors[0].Message, "hologram") {
		t.Errorf("error message = %q", res.Errors[0].Message)
	}
}

func TestRunParseErrorHasPosition(t *testing.T) {
	r, _ := newRunner(t)
	res, err := r.Run(`(add-element :text`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(res.Errors) == 0 {
		t.Fatal("expected a parse error")
	}
}

func TestRunEmptySource(t *testing.T) {
	r, _ := newRunner(t)
	res, err := r.Run("   \n  ")
	if err != nil {
		t.Fatalf("empty source should be a no-op: %v", err)
	}
	if res.Value != "" || len(res.Errors) != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestRunPartialEffectsSurvive(t *testing.T) {
	r, eng := newRunner(t)
	res, err := r.Run(`
(add-element :text :content "kept")
(add-element :hologram)
`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(res.Errors) == 0 {
		t.Fatal("expected the second form to fail")
	}
	found := false
	for _, el := range eng.Document().Elements {
		if td, ok := el.Data.(*scene.TextData); ok && td.Content == "kept" {
			found = true
		}
	}
	if !found {
		t.Error("effects of forms before the failure should stay applied")
	}
}

func TestParseZygoError(t *testing.T) {
	errs := parseZygoError(errorString("Error on line 3: undefined symbol"))
	if len(errs) != 1 || errs[0].Line != 3 {
		t.Errorf("parsed = %+v", errs)
	}
	errs = parseZygoError(errorString("something else entirely"))
	if len(errs) != 1 || errs[0].Line != 0 || errs[0].Message == "" {
		t.Errorf("parsed = %+v", errs)
	}
}

type errorString string

func (e errorString) Error() string { return string(e) }
