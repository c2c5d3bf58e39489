// Package ai defines the contract between the evaluation agents and the
// external text-generation service.
package ai

import "context"

// Request is one text-generation call. The system instruction and sampling
// temperature vary per agent.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
}

// Generator produces free text for a prompt. Implementations must be safe
// for concurrent use; the pipeline fans out many calls at once.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Model() string
}
