package manager

// unavailableError signals that the model handle never became ready, for 503
// mapping at the HTTP layer.
type unavailableError struct{ reason string }

func (e unavailableError) Error() string { return "model unavailable: " + e.reason }

// IsUnavailable reports whether err indicates the model is not loaded.
func IsUnavailable(err error) bool {
	_, ok := err.(unavailableError)
	return ok
}

// badOutputError signals that the engine returned a result of unexpected
// shape (no choices).
type badOutputError struct{}

func (badOutputError) Error() string { return "engine returned no choices" }

// IsBadOutput reports whether err indicates a malformed engine result.
func IsBadOutput(err error) bool {
	_, ok := err.(badOutputError)
	return ok
}

// inferenceError wraps a failure raised by the engine during generation. The
// wrapped detail is for server logs only and must never reach the client.
type inferenceError struct{ err error }

func (e inferenceError) Error() string { return "inference failed: " + e.err.Error() }
func (e inferenceError) Unwrap() error { return e.err }

// IsInferenceFailure reports whether err came from the generation call.
func IsInferenceFailure(err error) bool {
	_, ok := err.(inferenceError)
	return ok
}
