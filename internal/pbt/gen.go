// Package pbt implements the property-based test engine: deterministic
// seeded generation, a synthesised decode-and-call driver module,
// per-case execution against a runner collaborator, generic
// per-type shrinking on failure, and reproducible failure artifacts.
package pbt

import "github.com/x07lang/x07ast/internal/seed"

// ValueKind is the closed set of PBT-generatable parameter types.
type ValueKind string

const (
	KindI32   ValueKind = "i32"
	KindBytes ValueKind = "bytes"
)

// Value is one generated (or shrunk) argument, tagged by kind.
type Value struct {
	Kind  ValueKind
	I32   int32
	Bytes []byte
}

func I32Value(v int32) Value    { return Value{Kind: KindI32, I32: v} }
func BytesValue(b []byte) Value { return Value{Kind: KindBytes, Bytes: b} }

// Gen is a per-parameter generator/shrinker pair, type-indexed per the
// engine's closed generator table.
type Gen interface {
	TypeName() ValueKind
	Draw(lcg *seed.LCG, size int) Value
	Shrink(v Value) []Value
}

// I32Gen draws an i32 uniformly within [Min, Max], narrowed to
// [-size, size] whenever that narrower interval is non-empty.
type I32Gen struct {
	Min, Max int32
}

func (g I32Gen) TypeName() ValueKind { return KindI32 }

func (g I32Gen) Draw(lcg *seed.LCG, size int) Value {
	lo, hi := seed.ClampI32Range(g.Min, g.Max, int64(size))
	return I32Value(lcg.Int32Range(lo, hi))
}

func (g I32Gen) Shrink(v Value) []Value {
	out := make([]Value, 0)
	for _, c := range shrinkI32(v.I32) {
		out = append(out, I32Value(c))
	}
	return out
}

// BytesGen draws a byte slice of length min(MaxLen, size).
type BytesGen struct {
	MaxLen int
}

func (g BytesGen) TypeName() ValueKind { return KindBytes }

func (g BytesGen) Draw(lcg *seed.LCG, size int) Value {
	n := g.MaxLen
	if size < n {
		n = size
	}
	if n < 0 {
		n = 0
	}
	return BytesValue(lcg.Bytes(n))
}

func (g BytesGen) Shrink(v Value) []Value {
	out := make([]Value, 0)
	for _, c := range shrinkBytes(v.Bytes) {
		out = append(out, BytesValue(c))
	}
	return out
}

// ParamSpec is one declared PBT parameter: its name (used by the
// synthesised driver and the failure artifact) and its generator.
type ParamSpec struct {
	Name string
	Gen  Gen
}
