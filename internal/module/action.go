package module

import "github.com/black-sat/black/internal/term"

// ActionKind tags one entry of a Module's action log (spec.md §3.6). The
// log is the source of truth: Module.state is a derived, persistent
// projection of it, and Replay reconstructs an identical Module from the
// log alone, giving the determinism property spec.md §8 asks for.
type ActionKind int

const (
	ActionDeclare ActionKind = iota
	ActionDefine
	ActionAdopt
	ActionRequire
	ActionPush
	ActionPop
)

func (k ActionKind) String() string {
	switch k {
	case ActionDeclare:
		return "declare"
	case ActionDefine:
		return "define"
	case ActionAdopt:
		return "adopt"
	case ActionRequire:
		return "require"
	case ActionPush:
		return "push"
	case ActionPop:
		return "pop"
	default:
		return "unknown"
	}
}

// Action is one immutable log entry. Only the fields relevant to Kind are
// populated; see the Module methods in module.go for which.
type Action struct {
	Kind     ActionKind
	RootName string
	Entity   *term.Entity
	Adopted  []*term.Entity
	Formula  *term.Term
	PopCount int
}
