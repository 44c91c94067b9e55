package eval

import "github.com/black-sat/black/internal/term"

// EvalRecursiveBindings evaluates a set of mutually-recursive entity
// definitions and returns each name's evaluated value, tying the knot the
// way AILANG's CoreEvaluator.EvalLetRecBindings does (internal/eval's
// two-pass placeholder/eval scheme in the teacher, extended here with an
// explicit third fix-up pass): BLACK's mode=allowed recursive roots
// (spec.md §3.5) let a definition's body refer to sibling definitions
// (including itself) that are not yet evaluated, so naive substitution
// would recurse forever.
//
//  1. Placeholder pass: bind every name to a fresh Variable of the same
//     name, standing in for "not yet evaluated" (the RefCell's empty
//     state).
//  2. Eval pass: evaluate each body under the placeholder bindings,
//     folding whatever constant structure does not depend on an
//     unresolved sibling.
//  3. Fix-up pass: substitute the final set of evaluated bodies back into
//     each other once, resolving any reference to a sibling that was
//     itself simplified in the eval pass (mirrors the RefCell being
//     written once all bindings are known, then read back).
//
// A definition whose evaluated body still contains a placeholder
// Variable after the fix-up pass is genuinely self-referential in a way
// Evaluate cannot unfold (e.g. unguarded recursion); it is returned as-is,
// not an error — per spec.md §4.4 an unevaluated term is not a failure.
func EvalRecursiveBindings(names []term.Decl, bodies []*term.Term) map[string]*term.Term {
	placeholders := make(map[string]*term.Term, len(names))
	for _, d := range names {
		placeholders[d.Name.Key()] = term.Variable(d.Name)
	}

	firstPass := make(map[string]*term.Term, len(names))
	for i, d := range names {
		firstPass[d.Name.Key()] = Evaluate(substitute(bodies[i], placeholders))
	}

	result := make(map[string]*term.Term, len(names))
	for _, d := range names {
		result[d.Name.Key()] = Evaluate(substitute(firstPass[d.Name.Key()], firstPass))
	}
	return result
}
