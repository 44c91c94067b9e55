// Package errors provides centralized, structured error-code definitions for
// the BLACK logic pipeline engine. Every raised (non-type) error in the
// pipeline carries one of these codes so that callers can pattern-match on
// failure kind instead of parsing message text.
//
// Type errors are data (per spec.md §7, a types.KindError result returned
// from TypeOf), not raised errors; typecheck.Diagnose turns one into a
// *Diagnostic (AST001) for call sites that need it reported.
package errors

// Error code constants, organized by the phase that raises them.
const (
	// ============================================================
	// Term/AST factory errors (AST###)
	// ============================================================

	// AST001 indicates a malformed term. The term factory itself raises no
	// errors; typecheck.Diagnose reports an ill-typed term under this code.
	AST001 = "AST001"

	// ============================================================
	// Pattern-match dispatch errors (PAT###)
	// ============================================================

	// PAT001 indicates a match reached its fallback with no handler and no
	// Else branch — a programming error in the caller, not user input.
	PAT001 = "PAT001"

	// ============================================================
	// Module system errors (MOD###)
	// ============================================================

	// MOD001 indicates a definition's value failed to type-check.
	MOD001 = "MOD001"

	// MOD002 indicates a mode=forbidden root whose entity values would form
	// a reference cycle within the root (recursion not allowed).
	MOD002 = "MOD002"

	// MOD003 indicates Pop(n) was called with n greater than the current
	// push depth.
	MOD003 = "MOD003"

	// MOD004 indicates Require was called with a term that does not type
	// to boolean.
	MOD004 = "MOD004"

	// ============================================================
	// Resolver errors (RES###)
	// ============================================================

	// RES001 indicates type_of observed a variable that resolved() left
	// unbound.
	RES001 = "RES001"

	// ============================================================
	// Pipeline / stage errors (PIPE###)
	// ============================================================

	// PIPE001 indicates a stage could not synthesize a fresh symbol
	// deterministically (e.g. a naming collision it could not resolve).
	PIPE001 = "PIPE001"

	// ============================================================
	// Solver / backend errors (SOLV###)
	// ============================================================

	// SOLV001 indicates the backend rejected a construct it was asked to
	// translate.
	SOLV001 = "SOLV001"

	// SOLV002 indicates check() was asked to evaluate an unsupported
	// fragment (outside the reference backend's decidable subset).
	SOLV002 = "SOLV002"

	// SOLV003 indicates a backend's Pop(n) was called with n greater than
	// its current push depth.
	SOLV003 = "SOLV003"
)
