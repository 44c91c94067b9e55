// Package label provides opaque, hashable, stringifiable identifiers used as
// term names throughout the BLACK logic pipeline engine (spec.md §3.1).
package label

import (
	"fmt"
	"hash/maphash"
)

var seed = maphash.MakeSeed()

// Label wraps an arbitrary owned payload (string, integer, or any
// user-provided comparable value) with a computed hash and equality
// predicate. Two labels compare equal iff their payloads do. Labels are
// value types; their lifetime is that of the owning term.
type Label struct {
	payload any
	hash    uint64
	text    string
}

// Of builds a Label from a string payload — the common case (declaration
// names, bound variable names).
func Of(name string) Label {
	return Label{payload: name, hash: hashString("s:" + name), text: name}
}

// OfInt builds a Label from an integer payload, useful for synthesizing
// fresh, deterministically-named symbols.
func OfInt(n int64) Label {
	s := fmt.Sprintf("#%d", n)
	return Label{payload: n, hash: hashString("i:" + s), text: s}
}

// OfComparable builds a Label from any comparable payload, stringified via
// fmt.Sprintf for hashing and display purposes. Two labels built from
// unequal payloads of the same underlying type are guaranteed distinct;
// across different concrete types equality follows Go's any-comparison
// semantics (mismatched dynamic types are never equal).
func OfComparable(payload any) Label {
	s := fmt.Sprintf("%#v", payload)
	return Label{payload: payload, hash: hashString("c:" + s), text: fmt.Sprintf("%v", payload)}
}

func hashString(s string) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	_, _ = h.WriteString(s)
	return h.Sum64()
}

// Equal reports whether two labels wrap equal payloads.
func (l Label) Equal(other Label) bool {
	return l.payload == other.payload
}

// Hash returns an O(1) hash of the label, stable for the process lifetime.
func (l Label) Hash() uint64 { return l.hash }

// String renders the label for diagnostics and pretty-printing.
func (l Label) String() string { return l.text }

// Payload returns the wrapped value.
func (l Label) Payload() any { return l.payload }

// Key returns a string usable as a map key that agrees with Equal — two
// labels that are Equal produce the same Key, and vice versa, for any
// payload type that is itself comparable.
func (l Label) Key() string {
	return fmt.Sprintf("%T:%v", l.payload, l.payload)
}
