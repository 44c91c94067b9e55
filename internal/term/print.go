package term

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders t in a small s-expression-like surface syntax, used for
// diagnostics, golden tests, and the SMT-LIB2 printer stage's fallback
// rendering of unsupported constructs.
func (t *Term) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.kind {
	case KindInteger:
		return strconv.FormatInt(t.intVal, 10)
	case KindReal:
		return strconv.FormatFloat(t.realVal, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(t.boolVal)
	case KindVariable:
		return t.varLabel.String()
	case KindObject:
		return t.obj.Name.String()
	case KindAtom:
		return fmt.Sprintf("%s(%s)", t.a, joinTerms(t.operands))
	case KindIte:
		return fmt.Sprintf("(ite %s %s %s)", t.a, t.b, t.c)
	case KindForall:
		return fmt.Sprintf("(forall (%s) %s)", joinDecls(t.decls), t.body)
	case KindExists:
		return fmt.Sprintf("(exists (%s) %s)", joinDecls(t.decls), t.body)
	case KindLambda:
		return fmt.Sprintf("(lambda (%s) %s)", joinDecls(t.decls), t.body)
	case KindError:
		return fmt.Sprintf("(error %s %q)", t.a, t.message)
	case KindEqual, KindDistinct, KindConjunction, KindDisjunction, KindSum, KindProduct:
		return fmt.Sprintf("(%s %s)", t.kind, joinTerms(t.operands))
	}

	// remaining shapes: unary (a), binary (a, b)
	if t.b != nil {
		return fmt.Sprintf("(%s %s %s)", t.kind, t.a, t.b)
	}
	if t.a != nil {
		return fmt.Sprintf("(%s %s)", t.kind, t.a)
	}
	return t.kind.String()
}

func joinTerms(ts []*Term) string {
	parts := make([]string, len(ts))
	for i, x := range ts {
		parts[i] = x.String()
	}
	return strings.Join(parts, " ")
}

func joinDecls(decls []Decl) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = fmt.Sprintf("(%s %s)", d.Name, d.Type)
	}
	return strings.Join(parts, " ")
}
