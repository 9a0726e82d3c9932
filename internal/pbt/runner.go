package pbt

import "context"

// RunConfig is the per-case resource budget handed to the runner
// collaborator.
type RunConfig struct {
	SolveFuel           uint64
	MaxMemoryBytes      uint64
	MaxOutputBytes      uint64
	CPUTimeLimitSeconds float64
}

// PropertyOutput is the compiled property's result, decoded by the
// runner from the artifact's solve output: a status tag (1 = ok, 0 =
// assert-failed, anything else is a fatal shape violation) plus the
// assert code carried alongside a failing tag.
type PropertyOutput struct {
	StatusTag  uint32
	AssertCode uint32
}

// RunResult is one case invocation's outcome.
type RunResult struct {
	Ok     bool
	Trap   string
	Output PropertyOutput
}

// RunnerClient is the narrow collaborator contract the engine drives
// cases through; the engine never compiles or executes an artifact
// itself.
type RunnerClient interface {
	RunArtifactFile(ctx context.Context, cfg RunConfig, artifactPath string, input []byte) (RunResult, error)
}
