package main

import (
	"encoding/json"
	"fmt"

	"github.com/x07lang/x07ast/internal/worlds"
)

// worldConfigSchemaVersion gates the world-capability JSON document
// loadWorld accepts, the same schema-version-first convention the
// parser package applies to module/entry documents.
const worldConfigSchemaVersion = "x07ast.world/v1"

type worldConfigDoc struct {
	SchemaVersion    string `json:"schema_version"`
	EnableFS         bool   `json:"enable_fs"`
	EnableKV         bool   `json:"enable_kv"`
	EnableRR         bool   `json:"enable_rr"`
	IsStandaloneOnly bool   `json:"is_standalone_only"`
	AllowUnsafe      bool   `json:"allow_unsafe"`
	AllowFFI         bool   `json:"allow_ffi"`
}

// loadWorld decodes a world-capability record. Empty input yields
// worlds.Pure(), the most restrictive default.
func loadWorld(raw []byte) (worlds.World, error) {
	if len(raw) == 0 {
		return worlds.Pure(), nil
	}
	var doc worldConfigDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return worlds.World{}, fmt.Errorf("world config: %w", err)
	}
	if doc.SchemaVersion != worldConfigSchemaVersion {
		return worlds.World{}, fmt.Errorf("world config: unsupported schema version %q (expected %q)",
			doc.SchemaVersion, worldConfigSchemaVersion)
	}
	return worlds.World{
		EnableFS:         doc.EnableFS,
		EnableKV:         doc.EnableKV,
		EnableRR:         doc.EnableRR,
		IsStandaloneOnly: doc.IsStandaloneOnly,
		AllowUnsafe:      doc.AllowUnsafe,
		AllowFFI:         doc.AllowFFI,
	}, nil
}
