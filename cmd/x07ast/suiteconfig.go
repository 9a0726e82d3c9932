package main

import (
	"encoding/json"
	"fmt"

	"github.com/x07lang/x07ast/internal/pbt"
)

// suiteConfigSchemaVersion gates the property-suite JSON documents
// the pbt subcommand reads, matching the schema-version-first
// convention applied to every other document kind in this module.
const suiteConfigSchemaVersion = "x07ast.pbt.suite/v1"

type paramDoc struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"` // "i32" | "bytes"
	I32Min     int32  `json:"i32_min,omitempty"`
	I32Max     int32  `json:"i32_max,omitempty"`
	BytesMaxLen int   `json:"bytes_max_len,omitempty"`
}

type budgetScopeDoc struct {
	AllocBytes int `json:"alloc_bytes"`
}

type caseBudgetDoc struct {
	SolveFuel           uint64  `json:"solve_fuel"`
	MaxMemoryBytes      uint64  `json:"max_memory_bytes"`
	MaxOutputBytes      uint64  `json:"max_output_bytes"`
	CPUTimeLimitSeconds float64 `json:"cpu_time_limit_seconds"`
}

type suiteConfigDoc struct {
	SchemaVersion string          `json:"schema_version"`
	TestID        string          `json:"test_id"`
	Entry         string          `json:"entry"`
	World         string          `json:"world"`
	ArtifactPath  string          `json:"artifact_path"`
	SuiteSeed     uint64          `json:"suite_seed"`
	Cases         int             `json:"cases"`
	MaxShrinks    int             `json:"max_shrinks"`
	Params        []paramDoc      `json:"params"`
	BudgetScope   *budgetScopeDoc `json:"budget_scope,omitempty"`
	CaseBudget    caseBudgetDoc   `json:"case_budget"`
	RunnerCommand string          `json:"runner_command"`
}

func decodeSuiteConfig(raw []byte) (suiteConfigDoc, error) {
	var doc suiteConfigDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("suite config: %w", err)
	}
	if doc.SchemaVersion != suiteConfigSchemaVersion {
		return doc, fmt.Errorf("suite config: unsupported schema version %q (expected %q)",
			doc.SchemaVersion, suiteConfigSchemaVersion)
	}
	if doc.RunnerCommand == "" {
		return doc, fmt.Errorf("suite config: runner_command is required")
	}
	return doc, nil
}

func (doc suiteConfigDoc) toSuiteConfig() (pbt.SuiteConfig, error) {
	params := make([]pbt.ParamSpec, len(doc.Params))
	for i, p := range doc.Params {
		switch p.Kind {
		case "i32":
			params[i] = pbt.ParamSpec{Name: p.Name, Gen: pbt.I32Gen{Min: p.I32Min, Max: p.I32Max}}
		case "bytes":
			params[i] = pbt.ParamSpec{Name: p.Name, Gen: pbt.BytesGen{MaxLen: p.BytesMaxLen}}
		default:
			return pbt.SuiteConfig{}, fmt.Errorf("suite config: param %s: unknown kind %q", p.Name, p.Kind)
		}
	}
	var budgetScope *pbt.BudgetScope
	if doc.BudgetScope != nil {
		budgetScope = &pbt.BudgetScope{AllocBytes: doc.BudgetScope.AllocBytes}
	}
	return pbt.SuiteConfig{
		TestID:       doc.TestID,
		Entry:        doc.Entry,
		World:        doc.World,
		ArtifactPath: doc.ArtifactPath,
		SuiteSeed:    doc.SuiteSeed,
		Cases:        doc.Cases,
		MaxShrinks:   doc.MaxShrinks,
		Params:       params,
		BudgetScope:  budgetScope,
		CaseBudget: pbt.RunConfig{
			SolveFuel:           doc.CaseBudget.SolveFuel,
			MaxMemoryBytes:      doc.CaseBudget.MaxMemoryBytes,
			MaxOutputBytes:      doc.CaseBudget.MaxOutputBytes,
			CPUTimeLimitSeconds: doc.CaseBudget.CPUTimeLimitSeconds,
		},
	}, nil
}
