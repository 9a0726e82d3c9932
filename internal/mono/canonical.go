// Package mono rewrites every tapp call site and ty.* intrinsic into
// concrete monomorphic references, with a bounded, deterministic,
// cycle-safe worklist. Generalised from *runtime dictionary lookup*
// (a coherence-checked, canonical-key-indexed instance registry with
// fixed-point convergence for recursive resolution) to *compile-time
// call-site rewriting*: canonicalKey(class, type) becomes
// canonicalKey(generic, type-args), and "register a dictionary"
// becomes "schedule a specialisation".
package mono

import (
	"github.com/x07lang/x07ast/internal/canon"
)

// CanonicalTypeArgs renders a type-argument list as the deterministic
// JSON canonical form used for the memoisation key: lexicographic
// object keys (moot for a flat array, but routed through
// the same canon.Marshal path for consistency with the mono-map and
// repro documents) and no insignificant whitespace.
func CanonicalTypeArgs(typeArgs []string) (string, error) {
	data, err := canon.Marshal(typeArgs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// InstanceKey is the memoisation key under which a specialisation
// record is stored: (generic, canonical(type_args)).
type InstanceKey struct {
	Generic      string
	CanonicalArgs string
}

func (k InstanceKey) String() string { return k.Generic + "\x00" + k.CanonicalArgs }
