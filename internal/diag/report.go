package diag

import (
	"errors"
	"fmt"

	"github.com/x07lang/x07ast/internal/canon"
)

// Ptr is a JSON-Pointer-like path into the original source document,
// preserved across rewrites for diagnostics.
type Ptr string

// Patch is one JSON-Patch operation (RFC 6902), used for quickfixes
// such as a schema-version upgrade.
type Patch struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// QuickFix bundles the patch operations needed to resolve a
// diagnostic in place.
type QuickFix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
	Patch      []Patch `json:"patch,omitempty"`
}

// Error is the toolchain's structured diagnostic: a closed Kind enum
// plus a pointer-based source location.
type Error struct {
	Kind     Kind           `json:"kind"`
	Code     string         `json:"code"`
	Phase    string         `json:"phase"`
	Message  string         `json:"message"`
	Ptr      Ptr            `json:"ptr,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Fix      *QuickFix      `json:"fix,omitempty"`
	ExceededLimit *Limit    `json:"exceeded_limit,omitempty"`
}

// Limit describes a static budget cap exceeded (the Budget kind).
type Limit struct {
	Name     string `json:"name"`
	Max      int    `json:"max"`
	Observed int    `json:"observed"`
}

func (e *Error) Error() string {
	if e.Ptr != "" {
		return fmt.Sprintf("%s (%s) at %s: %s", e.Code, e.Kind, e.Ptr, e.Message)
	}
	return fmt.Sprintf("%s (%s): %s", e.Code, e.Kind, e.Message)
}

// New constructs a *Error, enforcing that Kind is one of the five
// closed kinds.
func New(kind Kind, code, phase, message string) *Error {
	if !kind.Valid() {
		kind = Internal
	}
	return &Error{Kind: kind, Code: code, Phase: phase, Message: message}
}

func (e *Error) WithPtr(p Ptr) *Error {
	e.Ptr = p
	return e
}

func (e *Error) WithFix(fix *QuickFix) *Error {
	e.Fix = fix
	return e
}

func (e *Error) WithLimit(name string, max, observed int) *Error {
	e.ExceededLimit = &Limit{Name: name, Max: max, Observed: observed}
	return e
}

// As lets callers recover a *Error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// JSON renders the diagnostic as canonical pretty JSON.
func (e *Error) JSON() ([]byte, error) {
	return canon.MarshalPretty(e)
}
