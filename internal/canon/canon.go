// Package canon implements JSON Canonicalization Scheme (JCS) style
// encoding for the documents this toolchain emits: monomorphisation
// maps, PBT failure repros, and diagnostic reports. Two documents with
// the same logical content must canonicalise to byte-identical output
// on every platform.
package canon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/pretty"
	"golang.org/x/text/unicode/norm"
)

// Marshal produces the canonical compact JSON encoding of v: object
// keys sorted lexicographically at every level, no insignificant
// whitespace, no HTML escaping, and every string leaf normalised to
// NFC so that documents built from differently-normalised source text
// still hash identically.
func Marshal(v any) ([]byte, error) {
	raw, err := marshalNoEscape(v)
	if err != nil {
		return nil, fmt.Errorf("canon: initial marshal: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		// Not decodable back into a generic tree (shouldn't happen for
		// well-formed inputs); fall back to the raw encoding.
		return raw, nil
	}
	return canonicalize(generic)
}

// Pretty re-renders already-canonical compact JSON with two-space
// indentation and exactly one trailing newline.
func Pretty(compact []byte) []byte {
	opts := &pretty.Options{Width: 80, Prefix: "", Indent: "  ", SortKeys: false}
	out := pretty.PrettyOptions(compact, opts)
	out = bytes.TrimRight(out, "\n")
	out = append(out, '\n')
	return out
}

// MarshalPretty is Marshal followed by Pretty — the canonical,
// newline-terminated document form used for repro and mono-map files.
func MarshalPretty(v any) ([]byte, error) {
	compact, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	return Pretty(compact), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func canonicalize(v any) ([]byte, error) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var out bytes.Buffer
		out.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				out.WriteByte(',')
			}
			keyJSON, err := marshalNoEscape(norm.NFC.String(k))
			if err != nil {
				return nil, err
			}
			out.Write(keyJSON)
			out.WriteByte(':')
			valJSON, err := canonicalize(val[k])
			if err != nil {
				return nil, err
			}
			out.Write(valJSON)
		}
		out.WriteByte('}')
		return out.Bytes(), nil

	case []any:
		var out bytes.Buffer
		out.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				out.WriteByte(',')
			}
			itemJSON, err := canonicalize(item)
			if err != nil {
				return nil, err
			}
			out.Write(itemJSON)
		}
		out.WriteByte(']')
		return out.Bytes(), nil

	case string:
		return marshalNoEscape(norm.NFC.String(val))

	default:
		return marshalNoEscape(val)
	}
}
