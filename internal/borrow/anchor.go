package borrow

// AnchorKind classifies how a view-returning function's result relates
// to its parameters: always Runtime, or always the same single
// parameter's provenance.
type AnchorKind uint8

const (
	AnchorUnknown AnchorKind = iota // not yet resolved by the fixed-point pass
	AnchorRuntime
	AnchorParam
	AnchorReject // the function's returns don't converge to one legal anchor
)

// Anchor is one function's resolved borrow contract.
type Anchor struct {
	Kind       AnchorKind
	ParamIndex int
}

// toAnchor folds a function's (possibly many) collected return
// provenances into its Anchor, given its declared parameter names in
// order. A LocalOwned provenance only survives a call boundary if it
// names one of the function's own parameters — a `let`-bound interior
// local does not outlive the caller's stack frame.
func toAnchor(prov Provenance, params []string) Anchor {
	if prov.Kind == Runtime {
		return Anchor{Kind: AnchorRuntime}
	}
	for i, p := range params {
		if p == prov.Owner {
			return Anchor{Kind: AnchorParam, ParamIndex: i}
		}
	}
	return Anchor{Kind: AnchorReject}
}
