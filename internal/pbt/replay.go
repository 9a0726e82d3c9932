package pbt

import (
	"context"
	"encoding/base64"
	"fmt"
)

// Replay re-runs a recorded failure's exact case bytes once, against
// (presumably a freshly re-compiled driver for) the same artifact, and
// reports whether the classification still matches.
func Replay(ctx context.Context, runner RunnerClient, record *FailureRecord, recompiledArtifactPath string) (*CaseFailure, error) {
	caseBytes, err := base64.StdEncoding.DecodeString(record.Counterexample.CaseB64)
	if err != nil {
		return nil, fmt.Errorf("pbt: replay: decoding case_b64: %w", err)
	}
	res, err := runner.RunArtifactFile(ctx, record.CaseBudget, recompiledArtifactPath, caseBytes)
	if err != nil {
		return nil, fmt.Errorf("pbt: replay: %w", err)
	}
	cf, ierr := classify(res)
	if ierr != nil {
		return nil, fmt.Errorf("pbt: replay: %w", ierr)
	}
	return cf, nil
}

// MatchesRecorded reports whether a replayed failure's classification
// (kind and, where applicable, code/trap id) is identical to what the
// artifact originally recorded.
func MatchesRecorded(record *FailureRecord, replayed *CaseFailure) bool {
	if replayed == nil {
		return false
	}
	if replayed.Kind != record.Failure.Kind {
		return false
	}
	switch replayed.Kind {
	case Assert:
		return replayed.AssertCode == record.Failure.AssertCode
	case Trap, Fuel, Timeout:
		return replayed.TrapID == record.Failure.TrapID
	default:
		return true
	}
}
