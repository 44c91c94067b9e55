// Package match implements the pattern-match dispatch spec.md §4.2 asks
// for: a single `switch t.Kind()` stage (AILANG's evaluator and pattern
// matcher dispatch this way — see eval_patterns.go, eval_simple.go) wrapped
// in a small builder so call sites read as a list of Kind -> handler cases
// instead of a bare switch repeated at every use site.
//
// The C++ original overloads a `match` function per handler signature,
// letting the compiler pick the most specific overload for a term's runtime
// variant (spec.md §4.2, §9 "pattern-match dispatch"). Go has no function
// overloading, so handlers here are keyed explicitly by term.Kind and must
// destructure their argument through the accessor methods in
// internal/term/accessors.go rather than receiving positional arguments —
// this is Open Question 2 in DESIGN.md.
package match

import (
	"fmt"

	"github.com/black-sat/black/internal/errors"
	"github.com/black-sat/black/internal/term"
)

// Matcher builds a Kind-keyed dispatch table producing an R for each
// matched term. Zero value is not usable; start with On.
type Matcher[R any] struct {
	cases map[term.Kind]func(*term.Term) R
	fall  func(*term.Term) R
}

// On starts a match over t, to be completed with one or more When clauses
// and terminated with Run or Else.
func On[R any](t *term.Term) *build[R] {
	return &build[R]{t: t, m: &Matcher[R]{cases: make(map[term.Kind]func(*term.Term) R)}}
}

type build[R any] struct {
	t *term.Term
	m *Matcher[R]
}

// When registers the handler invoked when the matched term's Kind is one of
// kinds. Handlers destructure their argument via accessor methods
// (t.Left(), t.Operand(), t.Decls(), ...); see accessors.go.
func (b *build[R]) When(handler func(*term.Term) R, kinds ...term.Kind) *build[R] {
	for _, k := range kinds {
		b.m.cases[k] = handler
	}
	return b
}

// Else registers a fallback invoked for any Kind not covered by a prior
// When, then immediately runs the match.
func (b *build[R]) Else(handler func(*term.Term) R) R {
	b.m.fall = handler
	return b.run()
}

// Run executes the match without a fallback; an unmatched Kind raises a
// recovered panic turned into a PAT001 diagnostic (spec.md §7's "errors are
// data" principle extended to programmer error: a missing case is a defect
// in the calling code, surfaced loudly rather than silently defaulted).
func (b *build[R]) Run() R {
	return b.run()
}

func (b *build[R]) run() (result R) {
	h, ok := b.m.cases[b.t.Kind()]
	if ok {
		return h(b.t)
	}
	if b.m.fall != nil {
		return b.m.fall(b.t)
	}
	panic(unmatchedPanic{kind: b.t.Kind()})
}

type unmatchedPanic struct{ kind term.Kind }

// Safely runs fn, converting a match.Run panic (raised when a Kind has
// neither a When clause nor an Else fallback) into a returned
// *errors.Diagnostic with code PAT001. Any other panic propagates
// unchanged. recover() must be called directly inside the deferred
// closure to take effect, so this is a function that wraps the call
// rather than a bare helper meant to be invoked from within someone
// else's defer.
func Safely(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		up, ok := r.(unmatchedPanic)
		if !ok {
			panic(r)
		}
		err = errors.Wrap(errors.New("match", "PAT001", fmt.Sprintf("no case for term kind %s", up.kind), nil))
	}()
	fn()
	return nil
}
