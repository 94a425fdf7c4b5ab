package scene

import (
	"strings"
	"testing"
)

func TestValidateWellFormed(t *testing.T) {
	d := buildDoc()
	if errs := Validate(d); len(errs) != 0 {
		t.Fatalf("well-formed document reported %d violations: %v", len(errs), errs)
	}
}

func TestValidateDanglingChildRef(t *testing.T) {
	d := buildDoc()
	frame := d.Elements["frame"]
	frame.Children = append(frame.Children, "ghost")

	errs := Validate(d)
	if !hasViolation(errs, "missing element ghost") {
		t.Errorf("dangling child ref not reported: %v", errs)
	}
}

func TestValidateDualOwnership(t *testing.T) {
	d := buildDoc()
	d.Elements["root"].Children = append(d.Elements["root"].Children, "text")

	errs := Validate(d)
	if !hasViolation(errs, "owned by both") {
		t.Errorf("dual ownership not reported: %v", errs)
	}
}

func TestValidateBackRefMismatch(t *testing.T) {
	d := buildDoc()
	// text claims image as parent, but image's children do not list it.
	d.Elements["text"].ParentID = "image"

	errs := Validate(d)
	if !hasViolation(errs, "missing from children") {
		t.Errorf("back-reference mismatch not reported: %v", errs)
	}
}

func TestValidateCycle(t *testing.T) {
	d := buildDoc()
	// frame -> text -> frame ancestor loop.
	d.Elements["frame"].ParentID = "text"
	d.Elements["text"].Children = []string{"frame"}
	d.Elements["root"].Children = []string{"image"}
	d.Elements["text"].ParentID = "frame"

	errs := Validate(d)
	if !hasViolation(errs, "cycle") {
		t.Errorf("cycle not reported: %v", errs)
	}
}

func TestValidateOrphanRoot(t *testing.T) {
	d := buildDoc()
	d.Elements["stray"] = &Element{ID: "stray", Kind: KindFrame, Visible: true}

	errs := Validate(d)
	if !hasViolation(errs, "not any page's root") {
		t.Errorf("unclaimed parentless element not reported: %v", errs)
	}
}

func TestValidateMissingPageRoot(t *testing.T) {
	d := buildDoc()
	d.Pages["page-2"] = &Page{ID: "page-2", Name: "About", RootElementID: "nope"}

	errs := Validate(d)
	if !hasViolation(errs, "does not exist") {
		t.Errorf("missing page root not reported: %v", errs)
	}
}

func hasViolation(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e.Error(), substr) {
			return true
		}
	}
	return false
}
