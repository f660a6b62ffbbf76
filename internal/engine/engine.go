// Package engine abstracts the in-process inference runtime used to generate
// chat completions. The real implementation wraps go-llama.cpp and is enabled
// with the 'llama' build tag; default builds get a no-CGO stub whose
// constructor fails, so the service degrades to unavailable mode instead of
// mocking inference.
package engine

import "context"

// Options configures model construction.
type Options struct {
	// ContextSize is the token window the model is loaded with.
	ContextSize int
	// GPULayers is the number of layers to offload to the GPU (0 = CPU only).
	GPULayers int
}

// Params captures generation parameters for a single completion call.
type Params struct {
	MaxTokens   int
	Temperature float32
	TopK        int
	TopP        float32
	// Stop sequences; generation halts when any sequence is matched and the
	// matched text is not included in the output.
	Stop []string
}

// Choice is one generated alternative. The wrapped runtime produces exactly
// one, but the shape is kept so callers must validate it explicitly.
type Choice struct {
	Text string
}

// Result is the raw outcome of a completion call.
type Result struct {
	Choices []Choice
}

// Engine is a loaded model ready to produce completions. Implementations must
// be safe for use from a single loader goroutine at startup and any number of
// request goroutines afterwards; the binding serializes actual generation.
type Engine interface {
	// Complete generates text for prompt and returns when generation stops by
	// token limit or stop sequence. The prompt is not echoed in the output.
	Complete(ctx context.Context, prompt string, p Params) (Result, error)
	// Close releases the model memory.
	Close() error
}
