// Package borrow traces, after type checking, where every
// bytes_view-carrying value came from, so a function that hands out a
// view can be proven not to outlive its owner.
package borrow

// Kind is the closed provenance lattice: a view either comes from the
// runtime or borrows from a named local still in scope.
type Kind uint8

const (
	Runtime Kind = iota
	LocalOwned
)

// Provenance is a bytes_view-carrying value's borrow source: either
// the runtime (a host operation or literal produced it) or a named
// local of type bytes/bytes_view in the current scope.
type Provenance struct {
	Kind  Kind
	Owner string // meaningful only when Kind == LocalOwned
}

var ProvRuntime = Provenance{Kind: Runtime}

func LocalOwnedBy(name string) Provenance { return Provenance{Kind: LocalOwned, Owner: name} }

func (p Provenance) Equal(o Provenance) bool {
	return p.Kind == o.Kind && (p.Kind != LocalOwned || p.Owner == o.Owner)
}
