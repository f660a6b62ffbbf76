// Package manager owns the model lifecycle and the chat operation. It is
// structured into small files by concern:
//
//   - manager.go: Handle variant, Manager type, startup Load.
//   - prompt.go: the fixed two-turn instructional template.
//   - chat.go: the chat operation and sampling parameters.
//   - errors.go: error types and helpers (IsUnavailable, IsBadOutput).
//   - status.go: status snapshot for /status.
//
// Lifecycle: Load runs exactly once in main, before the HTTP listener starts,
// and its result is injected into New. The handle is never reassigned, so it
// has a single writer at startup and many readers afterwards; reads need no
// synchronization. A failed load is not fatal: the handle stays unavailable
// for the process lifetime and every chat request maps to 503 until the
// process is restarted with a corrected configuration.
//
// Exactly one model instance exists per process. Deployments must run a
// single process per model copy; no request queue is layered here because the
// llama binding serializes generation itself.
package manager
