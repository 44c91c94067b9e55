package module

import "github.com/black-sat/black/internal/term"

// detectRecursion reports the reference cycles among entities (a candidate
// Root, not yet committed): groups whose values depend on each other,
// directly or transitively, or a single entity whose value depends on
// itself. It is Tarjan's strongly-connected-components algorithm (grounded
// on the plain DFS cycle-detector in the teacher's internal/link/topo.go,
// generalized from "any cycle" to full SCC computation). Only Module.Define
// calls it, for ModeForbidden roots; Root.closed evaluates a ModeAllowed
// root's definitions as one group.
//
// It returns the non-trivial SCCs (size > 1, or a lone entity referencing
// itself) in discovery order.
func detectRecursion(entities []*term.Entity) [][]string {
	index := make(map[string]int)
	lowlink := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	counter := 0
	var sccs [][]string

	byName := make(map[string]*term.Entity, len(entities))
	for _, e := range entities {
		byName[e.Name.Key()] = e
	}

	var strongconnect func(name string)
	strongconnect = func(name string) {
		index[name] = counter
		lowlink[name] = counter
		counter++
		stack = append(stack, name)
		onStack[name] = true

		e := byName[name]
		for _, dep := range dependencies(e, byName) {
			if _, seen := index[dep]; !seen {
				strongconnect(dep)
				if lowlink[dep] < lowlink[name] {
					lowlink[name] = lowlink[dep]
				}
			} else if onStack[dep] {
				if index[dep] < lowlink[name] {
					lowlink[name] = index[dep]
				}
			}
		}

		if lowlink[name] == index[name] {
			var scc []string
			for {
				n := len(stack) - 1
				top := stack[n]
				stack = stack[:n]
				onStack[top] = false
				scc = append(scc, top)
				if top == name {
					break
				}
			}
			if len(scc) > 1 || selfReferential(byName[scc[0]], scc[0]) {
				sccs = append(sccs, scc)
			}
		}
	}

	for _, e := range entities {
		name := e.Name.Key()
		if _, seen := index[name]; !seen {
			strongconnect(name)
		}
	}
	return sccs
}

func dependencies(e *term.Entity, byName map[string]*term.Entity) []string {
	if e == nil || e.Value == nil {
		return nil
	}
	var deps []string
	for _, d := range term.FreeVariables(e.Value) {
		key := d.Name.Key()
		if _, ok := byName[key]; ok {
			deps = append(deps, key)
		}
	}
	return deps
}

func selfReferential(e *term.Entity, name string) bool {
	if e == nil || e.Value == nil {
		return false
	}
	for _, d := range term.FreeVariables(e.Value) {
		if d.Name.Key() == name {
			return true
		}
	}
	return false
}
