//go:build llama

package engine

import (
	"context"
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaEngine owns one loaded gguf model for the process lifetime.
type llamaEngine struct {
	model *llama.LLama
}

// New loads the model at path with the given context size and GPU offload.
func New(path string, opts Options) (Engine, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("model path is empty")
	}
	mo := []llama.ModelOption{
		llama.SetContext(opts.ContextSize),
	}
	if opts.GPULayers > 0 {
		mo = append(mo, llama.SetGPULayers(opts.GPULayers))
	}
	m, err := llama.New(path, mo...)
	if err != nil {
		return nil, err
	}
	return &llamaEngine{model: m}, nil
}

func (e *llamaEngine) Complete(ctx context.Context, prompt string, p Params) (Result, error) {
	if e.model == nil {
		return Result{}, errors.New("llama model not initialized")
	}
	// Abort generation when the context is canceled.
	e.model.SetTokenCallback(func(string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
			return true
		}
	})
	po := []llama.PredictOption{
		llama.SetTokens(max(1, p.MaxTokens)),
		llama.SetTemperature(p.Temperature),
		llama.SetTopK(p.TopK),
		llama.SetTopP(p.TopP),
		// Reuse prompt-prefix computation across requests; the static
		// preamble dominates every prompt this service builds.
		llama.EnablePromptCacheAll,
	}
	if len(p.Stop) > 0 {
		po = append(po, llama.SetStopWords(p.Stop...))
	}
	text, err := e.model.Predict(prompt, po...)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, err
	}
	return Result{Choices: []Choice{{Text: text}}}, nil
}

func (e *llamaEngine) Close() error {
	if e.model != nil {
		e.model.Free()
		e.model = nil
	}
	return nil
}
