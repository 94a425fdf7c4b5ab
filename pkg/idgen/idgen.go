// Package idgen provides pluggable ID generation for scene entities.
// Elements and pages use short sequential IDs that stay readable in
// generated code and logs; project records use UUIDv7.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces unique string identifiers.
type Generator func() string

// Sequential returns a Generator producing "<prefix>-1", "<prefix>-2", …
// Process-unique and monotonic; counters are never reused within a run.
func Sequential(prefix string) Generator {
	var n uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, atomic.AddUint64(&n, 1))
	}
}

// SequentialFrom is Sequential starting after a given counter value,
// used when restoring a document so fresh IDs never collide with
// restored ones.
func SequentialFrom(prefix string, start uint64) Generator {
	n := start
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, atomic.AddUint64(&n, 1))
	}
}

// UUIDv7 returns a Generator producing RFC 9562 UUID v7 strings,
// time-sortable and globally unique.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Set bundles the per-kind generators the engine needs.
type Set struct {
	Element Generator
	Page    Generator
}

// NewSet returns the default generator set.
func NewSet() Set {
	return Set{
		Element: Sequential("element"),
		Page:    Sequential("page"),
	}
}
