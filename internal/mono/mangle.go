package mono

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Mangle produces the deterministic specialised symbol name: a
// human-readable tag (the generic's bare symbol name) plus an
// 8-character lowercase hex prefix of SHA-256 over the canonical
// type-args JSON. Uses stdlib crypto/sha256 directly — the name must
// reproduce bit-for-bit across runs since downstream repro artifacts
// key off it, and a stable-ID scheme this exact (SHA-256 truncated to
// a fixed hex prefix) needs nothing a third-party hashing library
// would add.
func Mangle(genericBareName, canonicalArgsJSON string) string {
	sum := sha256.Sum256([]byte(canonicalArgsJSON))
	prefix := hex.EncodeToString(sum[:])[:8]
	return fmt.Sprintf("%s$mono$%s", genericBareName, prefix)
}

// BareName strips any module qualifier from a qualified name,
// returning just the trailing symbol — the "human-readable tag" half
// of the mangled name.
func BareName(qualified string) string {
	for i := len(qualified) - 1; i >= 0; i-- {
		if qualified[i] == '.' {
			return qualified[i+1:]
		}
	}
	return qualified
}
