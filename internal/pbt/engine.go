package pbt

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/x07lang/x07ast/internal/canon"
	"github.com/x07lang/x07ast/internal/seed"
)

// FailureRecordSchemaVersion marks every emitted repro document.
const FailureRecordSchemaVersion = "x07ast.pbt.failure/v1"

// ShrinkResult is the closed outcome of the shrinking pass.
type ShrinkResult string

const (
	MinimalFound ShrinkResult = "minimal_found"
	LimitHit     ShrinkResult = "limit_hit"
)

// SuiteConfig is everything one property suite run needs.
type SuiteConfig struct {
	TestID       string
	Entry        string
	World        string
	ArtifactPath string
	SuiteSeed    uint64
	Cases        int
	MaxShrinks   int
	Params       []ParamSpec
	CaseBudget   RunConfig
	BudgetScope  *BudgetScope
}

// ToolIdentity stamps every emitted artifact with the engine's name
// and a run id derived from the test id and effective seed, for
// forensic correlation across repro files without breaking
// repro-determinism.
type ToolIdentity struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	RunID   string `json:"run_id"`
}

// TestIdentity records which property, entry, and world produced the
// artifact.
type TestIdentity struct {
	ID    string `json:"id"`
	Entry string `json:"entry"`
	World string `json:"world"`
}

// CaseCounts records how many cases were configured versus actually
// run before the loop stopped.
type CaseCounts struct {
	Configured int `json:"configured"`
	Attempted  int `json:"attempted"`
}

// ShrinkingSummary records the shrink pass's budget and outcome.
type ShrinkingSummary struct {
	Limit     int          `json:"limit"`
	Attempted int          `json:"attempted"`
	Result    ShrinkResult `json:"result"`
}

// FailureClassification is the case-failure shape embedded in a repro.
type FailureClassification struct {
	Kind       FailureKind `json:"kind"`
	TrapID     string      `json:"trap_id,omitempty"`
	TrapRaw    string      `json:"trap_raw,omitempty"`
	AssertCode uint32      `json:"assert_code,omitempty"`
}

// ParamValue is one counterexample parameter, typed.
type ParamValue struct {
	Name     string `json:"name"`
	Kind     ValueKind `json:"kind"`
	I32      *int32  `json:"i32,omitempty"`
	BytesB64 string  `json:"bytes_b64,omitempty"`
}

// Counterexample is the minimal failing value tuple, both typed and
// as the raw case bytes it was encoded from.
type Counterexample struct {
	Params  []ParamValue `json:"params"`
	CaseB64 string       `json:"case_b64"`
}

// FailureRecord is the full reproducible artifact emitted on failure.
type FailureRecord struct {
	SchemaVersion  string                 `json:"schema_version"`
	Tool           ToolIdentity           `json:"tool"`
	Test           TestIdentity           `json:"test"`
	SuiteSeed      uint64                 `json:"suite_seed"`
	EffectiveSeed  uint64                 `json:"effective_seed"`
	Cases          CaseCounts             `json:"cases"`
	Shrinking      ShrinkingSummary       `json:"shrinking"`
	Failure        FailureClassification  `json:"failure"`
	Counterexample Counterexample         `json:"counterexample"`
	CaseBudget     RunConfig              `json:"case_budget"`
}

// JSON renders the record as canonicalised pretty JSON, per the
// toolchain's standard repro format.
func (r *FailureRecord) JSON() ([]byte, error) { return canon.MarshalPretty(r) }

// Engine drives suites against a runner collaborator.
type Engine struct {
	Runner RunnerClient
}

// NewEngine constructs an Engine backed by runner.
func NewEngine(runner RunnerClient) *Engine {
	return &Engine{Runner: runner}
}

// runID derives the repro artifact's run identifier deterministically
// from the test id and effective seed — the same inputs the artifact
// already records — so running the engine twice on the same failing
// property produces a byte-identical repro document. An 8-character
// lowercase hex prefix of SHA-256 over "testID:effSeed", matching the
// mono package's mangled-name hashing convention.
func runID(testID string, effSeed uint64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", testID, effSeed)))
	return hex.EncodeToString(sum[:])[:8]
}

// RunSuite drives cfg.Cases generated cases through the runner. A nil
// *FailureRecord with a nil error means every case passed.
func (e *Engine) RunSuite(ctx context.Context, cfg SuiteConfig) (*FailureRecord, error) {
	effSeed := seed.Derive(cfg.TestID, cfg.SuiteSeed)
	lcg := seed.NewLCG(effSeed)

	for k := 0; k < cfg.Cases; k++ {
		size := k + 1
		values := make([]Value, len(cfg.Params))
		for i, p := range cfg.Params {
			values[i] = p.Gen.Draw(lcg, size)
		}
		res, err := e.Runner.RunArtifactFile(ctx, cfg.CaseBudget, cfg.ArtifactPath, EncodeCase(values))
		if err != nil {
			return nil, fmt.Errorf("pbt: case %d: %w", k, err)
		}
		cf, ierr := classify(res)
		if ierr != nil {
			return nil, fmt.Errorf("pbt: case %d: %w", k, ierr)
		}
		if cf == nil {
			continue
		}
		return e.shrinkAndRecord(ctx, cfg, effSeed, values, *cf, k+1)
	}
	return nil, nil
}

// shrinkAndRecord runs the shrinking pass starting from the first
// failing tuple, then assembles the failure artifact.
func (e *Engine) shrinkAndRecord(ctx context.Context, cfg SuiteConfig, effSeed uint64, firstValues []Value, firstFailure CaseFailure, attemptedCases int) (*FailureRecord, error) {
	current := firstValues
	currentFailure := firstFailure
	attempts := 0
	result := MinimalFound

pass:
	for attempts < cfg.MaxShrinks {
		improved := false
		for i := range current {
			candidates := cfg.Params[i].Gen.Shrink(current[i])
			for _, cand := range candidates {
				if attempts >= cfg.MaxShrinks {
					result = LimitHit
					break pass
				}
				attempts++
				trial := append([]Value(nil), current...)
				trial[i] = cand
				res, err := e.Runner.RunArtifactFile(ctx, cfg.CaseBudget, cfg.ArtifactPath, EncodeCase(trial))
				if err != nil {
					continue
				}
				cf, ierr := classify(res)
				if ierr != nil || cf == nil {
					continue
				}
				current = trial
				currentFailure = *cf
				improved = true
				break
			}
		}
		if !improved {
			break
		}
	}

	return &FailureRecord{
		SchemaVersion: FailureRecordSchemaVersion,
		Tool: ToolIdentity{
			Name:    "x07ast-pbt",
			Version: FailureRecordSchemaVersion,
			RunID:   runID(cfg.TestID, effSeed),
		},
		Test:          TestIdentity{ID: cfg.TestID, Entry: cfg.Entry, World: cfg.World},
		SuiteSeed:     cfg.SuiteSeed,
		EffectiveSeed: effSeed,
		Cases:         CaseCounts{Configured: cfg.Cases, Attempted: attemptedCases},
		Shrinking:     ShrinkingSummary{Limit: cfg.MaxShrinks, Attempted: attempts, Result: result},
		Failure: FailureClassification{
			Kind:       currentFailure.Kind,
			TrapID:     currentFailure.TrapID,
			TrapRaw:    currentFailure.TrapRaw,
			AssertCode: currentFailure.AssertCode,
		},
		Counterexample: buildCounterexample(cfg.Params, current),
		CaseBudget:     cfg.CaseBudget,
	}, nil
}

func buildCounterexample(params []ParamSpec, values []Value) Counterexample {
	out := make([]ParamValue, len(values))
	for i, v := range values {
		pv := ParamValue{Name: params[i].Name, Kind: v.Kind}
		switch v.Kind {
		case KindI32:
			val := v.I32
			pv.I32 = &val
		case KindBytes:
			pv.BytesB64 = base64.StdEncoding.EncodeToString(v.Bytes)
		}
		out[i] = pv
	}
	return Counterexample{
		Params:  out,
		CaseB64: base64.StdEncoding.EncodeToString(EncodeCase(values)),
	}
}
