//go:build !llama

package engine

import "errors"

// This file provides a no-CGO stub compiled when the 'llama' build tag is not
// set, keeping default builds and CI CGO-free. The real adapter lives in
// engine_llama.go (tagged 'llama').

// New fails fast: the llama runtime is not available in this build. The
// lifecycle manager treats this like any other load failure and the service
// runs in unavailable mode.
func New(path string, opts Options) (Engine, error) {
	return nil, errors.New("llama support not built (missing 'llama' build tag)")
}
