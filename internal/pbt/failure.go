package pbt

import "strings"

// FailureKind is the closed classification of a failing case.
type FailureKind string

const (
	Timeout FailureKind = "timeout"
	Fuel    FailureKind = "fuel"
	Trap    FailureKind = "trap"
	Assert  FailureKind = "assert"
)

// fuelTrapMarkers are the trap strings the runner is known to report
// for a fuel-exhaustion stop; anything else non-ok is classified Trap.
var fuelTrapMarkers = []string{"fuel exhausted", "out of fuel", "solve_fuel exceeded"}

const wallTimeoutTrap = "wall timeout"

// maxTrapIDLen bounds a normalised trap_id for forensic storage.
const maxTrapIDLen = 128

// classify maps one case's RunResult to a failure kind and, for
// Assert, the asserted status code. A nil return means the case
// passed.
func classify(res RunResult) (*CaseFailure, *diagInternalError) {
	if !res.Ok {
		switch {
		case res.Trap == wallTimeoutTrap:
			return &CaseFailure{Kind: Timeout, TrapID: normalizeTrapID(res.Trap), TrapRaw: res.Trap}, nil
		case isFuelTrap(res.Trap):
			return &CaseFailure{Kind: Fuel, TrapID: normalizeTrapID(res.Trap), TrapRaw: res.Trap}, nil
		default:
			return &CaseFailure{Kind: Trap, TrapID: normalizeTrapID(res.Trap), TrapRaw: res.Trap}, nil
		}
	}
	switch res.Output.StatusTag {
	case 1:
		return nil, nil
	case 0:
		return &CaseFailure{Kind: Assert, AssertCode: res.Output.AssertCode}, nil
	default:
		return nil, &diagInternalError{message: "property returned an unrecognised status tag"}
	}
}

func isFuelTrap(trap string) bool {
	for _, m := range fuelTrapMarkers {
		if strings.Contains(trap, m) {
			return true
		}
	}
	return false
}

// normalizeTrapID restricts trap to ASCII alphanumerics plus -_,
// truncated to maxTrapIDLen, while keeping the original verbatim
// elsewhere in the record for forensics.
func normalizeTrapID(trap string) string {
	var b strings.Builder
	for _, r := range trap {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
		if b.Len() >= maxTrapIDLen {
			break
		}
	}
	return b.String()
}

// CaseFailure is one case's classified outcome.
type CaseFailure struct {
	Kind       FailureKind
	TrapID     string
	TrapRaw    string
	AssertCode uint32
}

// diagInternalError signals a shape violation in the runner's
// response that the engine cannot classify as a property outcome; the
// caller wraps it into a diag.Error with the phase it knows.
type diagInternalError struct{ message string }

func (e *diagInternalError) Error() string { return e.message }
