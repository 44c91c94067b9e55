package term

import "github.com/black-sat/black/internal/types"

// FreeVariables returns the free references of t — every KindVariable or
// KindObject leaf not shadowed by an enclosing binder's decls — in
// first-occurrence order, deduplicated by label. internal/module uses it to
// find a definition's dependencies (recursion detection) and the names
// Resolver.ResolveTerm substitutes.
//
// A bare KindVariable carries no type (it has not been resolved to a module
// entity yet); its Decl.Type is nil. A KindObject's Decl.Type is its
// entity's declared type. Callers that need fully-typed signatures should
// run the term through module.Resolver.ResolveTerm first.
func FreeVariables(t *Term) []Decl {
	bound := map[string]bool{}
	seen := map[string]bool{}
	var order []Decl
	collectFree(t, bound, seen, &order)
	return order
}

func collectFree(t *Term, bound map[string]bool, seen map[string]bool, order *[]Decl) {
	if t == nil {
		return
	}
	switch t.kind {
	case KindVariable:
		k := t.varLabel.Key()
		if !bound[k] && !seen[k] {
			seen[k] = true
			*order = append(*order, Decl{Name: t.varLabel, Type: nil})
		}
		return
	case KindObject:
		name := t.obj.Name
		k := name.Key()
		if !bound[k] && !seen[k] {
			seen[k] = true
			*order = append(*order, Decl{Name: name, Type: t.obj.Type})
		}
		return
	case KindInteger, KindReal, KindBoolean:
		return
	case KindForall, KindExists, KindLambda:
		inner := cloneBoundSet(bound)
		for _, d := range t.decls {
			inner[d.Name.Key()] = true
		}
		collectFree(t.body, inner, seen, order)
		return
	case KindAtom:
		collectFree(t.a, bound, seen, order)
		for _, a := range t.operands {
			collectFree(a, bound, seen, order)
		}
		return
	case KindIte:
		collectFree(t.a, bound, seen, order)
		collectFree(t.b, bound, seen, order)
		collectFree(t.c, bound, seen, order)
		return
	case KindError:
		collectFree(t.a, bound, seen, order)
		return
	}

	// remaining shapes: unary (a), binary (a,b), n-ary (operands)
	if t.a != nil {
		collectFree(t.a, bound, seen, order)
	}
	if t.b != nil {
		collectFree(t.b, bound, seen, order)
	}
	for _, o := range t.operands {
		collectFree(o, bound, seen, order)
	}
}

func cloneBoundSet(m map[string]bool) map[string]bool {
	n := make(map[string]bool, len(m)+2)
	for k, v := range m {
		n[k] = v
	}
	return n
}

// DeclTypes returns the declared types of a Decl slice, in order, useful
// when synthesizing a function-typed surrogate symbol.
func DeclTypes(decls []Decl) []*types.Type {
	out := make([]*types.Type, len(decls))
	for i, d := range decls {
		out[i] = d.Type
	}
	return out
}
