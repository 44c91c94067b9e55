package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Diagnostic is the canonical structured error type for this module. Every
// raised (non-type) error described in spec.md §7 is returned as a
// *Diagnostic wrapped into an error via Wrap.
type Diagnostic struct {
	Schema  string         `json:"schema"` // always "black.error/v1"
	Code    string         `json:"code"`   // e.g. "MOD003"
	Phase   string         `json:"phase"`  // "term", "module", "pipeline", ...
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// New builds a Diagnostic for the given phase/code/message.
func New(phase, code, message string, data map[string]any) *Diagnostic {
	return &Diagnostic{
		Schema:  "black.error/v1",
		Code:    code,
		Phase:   phase,
		Message: message,
		Data:    data,
	}
}

// diagnosticError wraps a Diagnostic as a Go error so it survives
// errors.As() unwrapping.
type diagnosticError struct {
	d *Diagnostic
}

func (e *diagnosticError) Error() string {
	if e.d == nil {
		return "unknown error"
	}
	return fmt.Sprintf("%s: %s", e.d.Code, e.d.Message)
}

// Wrap turns a Diagnostic into an error.
func Wrap(d *Diagnostic) error {
	if d == nil {
		return nil
	}
	return &diagnosticError{d: d}
}

// As extracts a Diagnostic from an error chain.
func As(err error) (*Diagnostic, bool) {
	var de *diagnosticError
	if errors.As(err, &de) {
		return de.d, true
	}
	return nil, false
}

// ToJSON renders the diagnostic deterministically.
func (d *Diagnostic) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(d)
	} else {
		data, err = json.MarshalIndent(d, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
