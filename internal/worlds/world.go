// Package worlds models the implicit world-capability parameter: the
// closed set of booleans that gate which AST heads are legal in a
// given deployment profile. Generalised from an open-ended
// {Name string, Meta map[string]any} capability set to a fixed
// record — the gate set is closed and known at compile time, so a
// struct of bools is the faithful shape rather than a string-keyed
// registry.
package worlds

// World is the implicit capability-state parameter threaded through
// the type & effect checker.
type World struct {
	EnableFS         bool
	EnableKV         bool
	EnableRR         bool
	IsStandaloneOnly bool
	AllowUnsafe      bool
	AllowFFI         bool
}

// Pure is the most restrictive world: no FS/KV/rr, no OS access, no
// unsafe/ffi. Used for `solve` expressions compiled for the PBT
// runner unless a test manifest requests otherwise.
func Pure() World {
	return World{}
}

// Standalone grants direct OS access (os.*/process.*/net.* heads
// legal) but not unsafe/ffi.
func Standalone() World {
	return World{IsStandaloneOnly: true}
}

// WithFS, WithKV, WithRR, WithUnsafeFFI return copies of w with the
// named capability flipped on, used by test fixtures that compose a
// world incrementally.
func (w World) WithFS() World  { w.EnableFS = true; return w }
func (w World) WithKV() World  { w.EnableKV = true; return w }
func (w World) WithRR() World  { w.EnableRR = true; return w }
func (w World) WithUnsafeFFI() World {
	w.AllowUnsafe = true
	w.AllowFFI = true
	return w
}
