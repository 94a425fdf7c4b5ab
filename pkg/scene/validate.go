package scene

import "fmt"

// ValidationError describes a single structural invariant violation.
type ValidationError struct {
	ElementID string // offending element (empty when page/document level)
	PageID    string
	Message   string
}

func (e ValidationError) Error() string {
	switch {
	case e.ElementID != "":
		return fmt.Sprintf("element %s: %s", e.ElementID, e.Message)
	case e.PageID != "":
		return fmt.Sprintf("page %s: %s", e.PageID, e.Message)
	}
	return e.Message
}

// Validate runs all structural invariant checks on the document and
// returns the violations found. An empty slice means the graph is a
// well-formed forest. Read-only; never mutates the document.
func Validate(d *Document) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateChildRefs(d)...)
	errs = append(errs, validateRoots(d)...)
	errs = append(errs, validateBackRefs(d)...)
	errs = append(errs, validateAcyclic(d)...)
	return errs
}

// validateChildRefs checks that every children entry resolves to a live
// element and that no ID appears under two parents.
func validateChildRefs(d *Document) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]string) // child -> parent
	for _, e := range d.Elements {
		for _, cid := range e.Children {
			if d.Elements[cid] == nil {
				errs = append(errs, ValidationError{
					ElementID: e.ID,
					Message:   fmt.Sprintf("children references missing element %s", cid),
				})
				continue
			}
			if prev, dup := seen[cid]; dup {
				errs = append(errs, ValidationError{
					ElementID: cid,
					Message:   fmt.Sprintf("owned by both %s and %s", prev, e.ID),
				})
			}
			seen[cid] = e.ID
		}
	}
	return errs
}

// validateRoots checks that each page has exactly one root element with
// no parent, equal to the page's RootElementID, and that no parentless
// element is unclaimed by a page.
func validateRoots(d *Document) []ValidationError {
	var errs []ValidationError
	claimed := make(map[string]string) // root element -> page
	for _, p := range d.Pages {
		root := d.Elements[p.RootElementID]
		switch {
		case root == nil:
			errs = append(errs, ValidationError{
				PageID:  p.ID,
				Message: fmt.Sprintf("rootElementId %s does not exist", p.RootElementID),
			})
			continue
		case root.Kind != KindPageRoot:
			errs = append(errs, ValidationError{
				PageID:  p.ID,
				Message: fmt.Sprintf("root element %s has kind %s, want page-root", root.ID, root.Kind),
			})
		case root.ParentID != "":
			errs = append(errs, ValidationError{
				PageID:  p.ID,
				Message: fmt.Sprintf("root element %s has a parent", root.ID),
			})
		}
		if prev, dup := claimed[p.RootElementID]; dup {
			errs = append(errs, ValidationError{
				PageID:  p.ID,
				Message: fmt.Sprintf("root element shared with page %s", prev),
			})
		}
		claimed[p.RootElementID] = p.ID
	}
	for _, e := range d.Elements {
		if e.ParentID == "" && claimed[e.ID] == "" {
			errs = append(errs, ValidationError{
				ElementID: e.ID,
				Message:   "parentless element is not any page's root",
			})
		}
	}
	return errs
}

// validateBackRefs checks parent/children back-reference consistency.
func validateBackRefs(d *Document) []ValidationError {
	var errs []ValidationError
	for _, e := range d.Elements {
		if e.ParentID == "" {
			continue
		}
		parent := d.Elements[e.ParentID]
		if parent == nil {
			errs = append(errs, ValidationError{
				ElementID: e.ID,
				Message:   fmt.Sprintf("parentId %s does not exist", e.ParentID),
			})
			continue
		}
		found := false
		for _, cid := range parent.Children {
			if cid == e.ID {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, ValidationError{
				ElementID: e.ID,
				Message:   fmt.Sprintf("missing from children of parent %s", e.ParentID),
			})
		}
	}
	return errs
}

// validateAcyclic walks parent pointers from every element; a cycle shows
// up as a walk that revisits a node before reaching a root.
func validateAcyclic(d *Document) []ValidationError {
	var errs []ValidationError
	for id := range d.Elements {
		visited := make(map[string]bool)
		cur := id
		for cur != "" {
			if visited[cur] {
				errs = append(errs, ValidationError{
					ElementID: id,
					Message:   "ancestor chain contains a cycle",
				})
				break
			}
			visited[cur] = true
			e := d.Elements[cur]
			if e == nil {
				break
			}
			cur = e.ParentID
		}
	}
	return errs
}
