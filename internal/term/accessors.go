package term

import "github.com/black-sat/black/internal/label"

// The accessors below provide the "destructured match" views spec.md §4.2
// asks for; handlers passed to match.On call these explicitly rather than
// receiving reflected positional arguments (see DESIGN.md, Open Question 2).

// Int returns the payload of a KindInteger term.
func (t *Term) Int() int64 { return t.intVal }

// Real returns the payload of a KindReal term.
func (t *Term) Real() float64 { return t.realVal }

// Bool returns the payload of a KindBoolean term.
func (t *Term) Bool() bool { return t.boolVal }

// Label returns the name of a KindVariable term.
func (t *Term) Label() label.Label { return t.varLabel }

// Entity returns the resolved entity of a KindObject term.
func (t *Term) Entity() *Entity { return t.obj }

// Operand returns the single child of a unary term (negation, minus, or any
// unary temporal operator).
func (t *Term) Operand() *Term { return t.a }

// Left returns the left-hand child of a binary term.
func (t *Term) Left() *Term { return t.a }

// Right returns the right-hand child of a binary term.
func (t *Term) Right() *Term { return t.b }

// Guard returns the condition of an Ite term.
func (t *Term) Guard() *Term { return t.a }

// Then returns the then-branch of an Ite term.
func (t *Term) Then() *Term { return t.b }

// Else returns the else-branch of an Ite term.
func (t *Term) Else() *Term { return t.c }

// Head returns the applied symbol of an Atom term.
func (t *Term) Head() *Term { return t.a }

// Args returns the argument list of an Atom term, or the operand list of an
// n-ary connective/arithmetic/predicate term (conjunction, disjunction,
// sum, product, equal, distinct).
func (t *Term) Args() []*Term { return t.operands }

// Operands is an alias of Args for n-ary connectives, kept because spec.md
// §3.2 calls them "operands" for connectives and "arguments" for atoms.
func (t *Term) Operands() []*Term { return t.operands }

// Decls returns the bound declarations of a quantifier/lambda term.
func (t *Term) Decls() []Decl { return t.decls }

// Body returns the body of a quantifier/lambda term.
func (t *Term) Body() *Term { return t.body }

// Inner returns the offending subterm of an Error term.
func (t *Term) Inner() *Term { return t.a }

// Message returns the diagnostic message of an Error term.
func (t *Term) Message() string { return t.message }
