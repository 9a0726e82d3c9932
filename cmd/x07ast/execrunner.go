package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/x07lang/x07ast/internal/pbt"
)

// execRunner is a thin exec.Command adapter satisfying
// pbt.RunnerClient for manual smoke use: it shells out to an external
// command (the real compiled-artifact runtime, entirely out of this
// module's scope) passing the artifact path as its only argument and
// the raw case bytes on stdin, and expects one JSON line on stdout
// describing the outcome. Follows the same exec-an-external-interpreter-and-parse-
// its-output pattern as other runner-client wrappers — this is
// dev-CLI wiring, not an implementation of the runner contract itself.
type execRunner struct {
	Command string
}

type execRunnerOutput struct {
	Ok         bool   `json:"ok"`
	Trap       string `json:"trap,omitempty"`
	StatusTag  uint32 `json:"status_tag"`
	AssertCode uint32 `json:"assert_code,omitempty"`
}

func (r execRunner) RunArtifactFile(ctx context.Context, cfg pbt.RunConfig, artifactPath string, input []byte) (pbt.RunResult, error) {
	cmd := exec.CommandContext(ctx, r.Command, artifactPath)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return pbt.RunResult{}, fmt.Errorf("execRunner: %s: %w (stderr: %s)", r.Command, err, stderr.String())
	}

	var out execRunnerOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return pbt.RunResult{}, fmt.Errorf("execRunner: decoding %s output: %w", r.Command, err)
	}
	return pbt.RunResult{
		Ok:   out.Ok,
		Trap: out.Trap,
		Output: pbt.PropertyOutput{
			StatusTag:  out.StatusTag,
			AssertCode: out.AssertCode,
		},
	}, nil
}
