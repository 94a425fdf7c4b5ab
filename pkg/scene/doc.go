// Package scene defines the document model for Vellum.
// The scene graph is a forest of element trees, one tree per page,
// stored as a flat ID-keyed arena with parent/children references.
package scene
