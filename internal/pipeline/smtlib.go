package pipeline

import (
	"fmt"
	"io"

	"github.com/black-sat/black/internal/consumer"
	"github.com/black-sat/black/internal/module"
	"github.com/black-sat/black/internal/term"
	"github.com/black-sat/black/internal/types"
)

// SMTLIB2Printer is the "natural stage" spec.md §6 mentions an SMT-LIB2
// printer would be: it renders every Import/State/Push/Pop call it
// receives as SMT-LIB2 text to w, then forwards the call unchanged to
// next, so it can sit anywhere in a stage chain purely for
// debugging/golden-file purposes without altering what the rest of the
// chain sees. Grounded on original_source's logic/prettyprint.cpp, which
// plays the analogous "render the AST as external syntax" role for BLACK's
// own tracing output.
func SMTLIB2Printer(w io.Writer) Stage {
	return func(next Producer) Producer {
		return func(sink consumer.Consumer) error {
			return next(&smtlibConsumer{w: w, next: sink})
		}
	}
}

type smtlibConsumer struct {
	w    io.Writer
	next consumer.Consumer
}

func (s *smtlibConsumer) Import(e *term.Entity) error {
	fmt.Fprintf(s.w, "(declare-fun %s %s)\n", e.Name, sortOf(e.Type))
	return s.next.Import(e)
}

// Adopt prints a comment naming the adopted root and its Mode, then
// renders it the same way direct Import/State calls would (ImportRoot
// routes through s.Import/s.State, both of which already print).
func (s *smtlibConsumer) Adopt(root *module.Root) error {
	fmt.Fprintf(s.w, "; root (mode=%s)\n", root.Mode)
	return consumer.ImportRoot(s, root)
}

func (s *smtlibConsumer) State(kind consumer.StateKind, formula *term.Term) error {
	fmt.Fprintf(s.w, "(assert ; %s\n  %s)\n", kind, smtlibTerm(formula))
	return s.next.State(kind, formula)
}

func (s *smtlibConsumer) Push() error {
	fmt.Fprintln(s.w, "(push 1)")
	return s.next.Push()
}

func (s *smtlibConsumer) Pop(n int) error {
	fmt.Fprintf(s.w, "(pop %d)\n", n)
	return s.next.Pop(n)
}

func sortOf(ty *types.Type) string {
	if ty == nil {
		return "Bool"
	}
	switch ty.Kind() {
	case types.KindBoolean:
		return "Bool"
	case types.KindInteger:
		return "Int"
	case types.KindReal:
		return "Real"
	case types.KindFunction:
		params := ""
		for _, p := range ty.Params() {
			params += sortOf(p) + " "
		}
		return fmt.Sprintf("(%s) %s", params, sortOf(ty.Range()))
	default:
		return "Bool"
	}
}

// smtlibTerm renders t as an SMT-LIB2 s-expression. Entities print by name
// (declare-fun above makes the name a valid symbol); this is a debugging
// aid, not a backend wire format, so it makes no attempt at a faithful
// LTL-to-SMT-LIB2 extension encoding for temporal operators — those are
// expected to already be gone by the time SMTLIB2Printer runs downstream
// of a SurrogateEncoder.
func smtlibTerm(t *term.Term) string {
	switch t.Kind() {
	case term.KindInteger:
		return fmt.Sprintf("%d", t.Int())
	case term.KindReal:
		return fmt.Sprintf("%g", t.Real())
	case term.KindBoolean:
		if t.Bool() {
			return "true"
		}
		return "false"
	case term.KindVariable:
		return t.Label().String()
	case term.KindObject:
		return t.Entity().Name.String()
	case term.KindNegation:
		return paren("not", smtlibTerm(t.Operand()))
	case term.KindMinus:
		return paren("-", smtlibTerm(t.Operand()))
	case term.KindConjunction:
		return parenAll("and", t.Args())
	case term.KindDisjunction:
		return parenAll("or", t.Args())
	case term.KindEqual:
		return parenAll("=", t.Args())
	case term.KindDistinct:
		return parenAll("distinct", t.Args())
	case term.KindSum:
		return parenAll("+", t.Args())
	case term.KindProduct:
		return parenAll("*", t.Args())
	case term.KindImplication:
		return paren("=>", smtlibTerm(t.Left()), smtlibTerm(t.Right()))
	case term.KindDifference:
		return paren("-", smtlibTerm(t.Left()), smtlibTerm(t.Right()))
	case term.KindDivision:
		return paren("/", smtlibTerm(t.Left()), smtlibTerm(t.Right()))
	case term.KindLessThan:
		return paren("<", smtlibTerm(t.Left()), smtlibTerm(t.Right()))
	case term.KindLessThanEq:
		return paren("<=", smtlibTerm(t.Left()), smtlibTerm(t.Right()))
	case term.KindGreaterThan:
		return paren(">", smtlibTerm(t.Left()), smtlibTerm(t.Right()))
	case term.KindGreaterThanEq:
		return paren(">=", smtlibTerm(t.Left()), smtlibTerm(t.Right()))
	case term.KindIte:
		return paren("ite", smtlibTerm(t.Guard()), smtlibTerm(t.Then()), smtlibTerm(t.Else()))
	case term.KindAtom:
		parts := []string{smtlibTerm(t.Head())}
		for _, a := range t.Args() {
			parts = append(parts, smtlibTerm(a))
		}
		return parenJoin(parts)
	default:
		return t.String()
	}
}

func paren(op string, args ...string) string {
	return parenJoin(append([]string{op}, args...))
}

func parenAll(op string, args []*term.Term) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = smtlibTerm(a)
	}
	return paren(op, parts...)
}

func parenJoin(parts []string) string {
	out := "("
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out + ")"
}
