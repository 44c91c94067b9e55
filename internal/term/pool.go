package term

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Pool is the hash-consing factory of spec.md §4.1: a mapping from
// structural key to canonical node, guarded by a mutex. Contention on the
// mutex is acceptable because node construction is amortized (§4.1).
//
// The pool holds strong references for its own lifetime — the "interning"
// option spec.md §9 permits as an alternative to weak references, which Go
// has no portable pre-1.24 equivalent of. A *Pool is typically long-lived
// (one per solver instance, or the package-level Default()), so this never
// leaks more than the terms a single solver run actually builds.
type Pool struct {
	mu    sync.RWMutex
	nodes map[string]*Term
}

// NewPool creates an empty hash-consing pool. Multiple pools may coexist
// across goroutines without additional synchronization (spec.md §5);
// terms from different pools are never pointer-equal even if structurally
// identical, by design — callers that need cross-pool identity must use a
// single shared Pool.
func NewPool() *Pool {
	return &Pool{nodes: make(map[string]*Term)}
}

var defaultPool = NewPool()

// Default returns the package-level pool used by the free-function
// constructors (term.Integer, term.Conjunction, ...) for convenience in
// tests and simple callers.
func Default() *Pool { return defaultPool }

// intern looks up key; if a live node exists it is returned, otherwise the
// supplied node is inserted and returned. This is the single choke point
// implementing spec.md §4.1's "look up; if a live handle exists, return it;
// otherwise insert a freshly allocated node and return a strong handle."
func (p *Pool) intern(key string, build func() *Term) *Term {
	p.mu.RLock()
	if t, ok := p.nodes[key]; ok {
		p.mu.RUnlock()
		return t
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if t, ok := p.nodes[key]; ok {
		return t
	}
	t := build()
	p.nodes[key] = t
	return t
}

// Size returns the number of live canonical nodes, mostly useful for tests
// asserting that structurally-equal construction requests did not allocate
// twice.
func (p *Pool) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.nodes)
}

// key encodes a term's structural identity. Children are assumed already
// canonical (constructed through a factory function), so their pointer
// value is a valid, stable proxy for their full structural identity —
// this is what makes hash-consing compose: two conjunctions of the same
// two already-canonical operands always produce the same key.
func key(k Kind, parts ...string) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(k)))
	for _, p := range parts {
		b.WriteByte('|')
		b.WriteString(p)
	}
	return b.String()
}

// ptr renders a child's canonical pointer as a stable string. Since children
// are always already-interned nodes (or nil), this is a valid proxy for
// full structural identity without re-hashing the subtree.
func ptr(t *Term) string {
	if t == nil {
		return "nil"
	}
	return fmt.Sprintf("%p", t)
}

func ptrList(ts []*Term) string {
	var b strings.Builder
	for i, t := range ts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(ptr(t))
	}
	return b.String()
}

// declKey encodes a binder's declaration list. Types are themselves
// hash-consed (internal/types.Pool), so their canonical pointer is a valid
// structural proxy exactly like term children.
func declKey(decls []Decl) string {
	var b strings.Builder
	for i, d := range decls {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(d.Name.Key())
		b.WriteByte(':')
		b.WriteString(fmt.Sprintf("%p", d.Type))
	}
	return b.String()
}
