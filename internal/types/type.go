package types

import (
	"fmt"
	"strings"
)

// Type is the hash-consed representation of spec.md §3.3: Boolean, Integer,
// Real, Function(params, range), or Error(inner, message). Like term.Term,
// two structurally-identical types are always the same *Type pointer, so
// type equality throughout the checker and the module resolver is pointer
// equality.
type Type struct {
	kind Kind

	params []*Type
	rng    *Type

	inner   *Type
	message string
}

// Kind returns the type's variant tag.
func (t *Type) Kind() Kind { return t.kind }

// Params returns a function type's parameter types.
func (t *Type) Params() []*Type { return t.params }

// Range returns a function type's result type.
func (t *Type) Range() *Type { return t.rng }

// ErrorInner returns the type an Error type wraps — the type_of result that
// would have applied had the ill-typed subterm been well-typed, kept so
// diagnostics can still describe "expected T" (spec.md §7).
func (t *Type) ErrorInner() *Type { return t.inner }

// ErrorMessage returns an Error type's diagnostic message.
func (t *Type) ErrorMessage() string { return t.message }

// IsError reports whether t is the Error variant.
func (t *Type) IsError() bool { return t.kind == KindError }

// String renders t in a small surface syntax, used in diagnostics and by
// term.Term.String's decl printer.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.kind {
	case KindBoolean:
		return "Bool"
	case KindInteger:
		return "Int"
	case KindReal:
		return "Real"
	case KindFunction:
		parts := make([]string, len(t.params))
		for i, p := range t.params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.rng)
	case KindError:
		return fmt.Sprintf("<error: %s>", t.message)
	default:
		return "<unknown-type>"
	}
}

// Equal reports structural equality. Since every Type is hash-consed through
// a Pool, this degenerates to pointer equality — kept as a named method so
// callers don't reach for == on a type that might come from a different
// Pool (see Pool's doc comment).
func (t *Type) Equal(other *Type) bool { return t == other }
