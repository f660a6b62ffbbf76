package manager

import (
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"

	"chatbotd/internal/config"
	"chatbotd/internal/engine"
)

// State of the model handle. There are exactly two and both are terminal for
// the process lifetime.
type State string

const (
	StateReady       State = "ready"
	StateUnavailable State = "unavailable"
)

// Handle is a tagged variant over the loaded engine: Ready carries a usable
// engine, Unavailable carries the reason loading failed. Call sites branch on
// Ready() instead of nil-checking an engine pointer.
type Handle struct {
	engine engine.Engine
	reason string
}

// Ready wraps a loaded engine in a ready handle.
func Ready(e engine.Engine) Handle { return Handle{engine: e} }

// Unavailable returns a handle that rejects all chat calls with reason.
func Unavailable(reason string) Handle { return Handle{reason: reason} }

// IsReady reports whether the handle carries a loaded engine.
func (h Handle) IsReady() bool { return h.engine != nil }

// Reason returns why the handle is unavailable; empty when ready.
func (h Handle) Reason() string { return h.reason }

// Manager serves chat completions against a single immutable model handle.
type Manager struct {
	cfg       config.Config
	handle    Handle
	log       zerolog.Logger
	conv      zerolog.Logger
	startTime time.Time
}

// New builds a Manager around an already-established handle. Diagnostics go
// to log (stderr in main); the conversation log goes to stdout.
func New(cfg config.Config, h Handle, log zerolog.Logger) *Manager {
	return &Manager{
		cfg:       cfg,
		handle:    h,
		log:       log,
		conv:      zerolog.New(os.Stdout).With().Timestamp().Logger(),
		startTime: time.Now(),
	}
}

// Load attempts to load the configured model exactly once. Failures are
// logged and downgraded to an unavailable handle; they never crash the
// process.
func Load(cfg config.Config, log zerolog.Logger) Handle {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Error().Str("path", cfg.ModelPath).
				Msg("model file not found; set LLM_MODEL_PATH or place the file next to the binary")
			return Unavailable("model file not found: " + cfg.ModelPath)
		}
		// Not a missing file: surface the real stat failure (permissions,
		// a file in the middle of the path, ...).
		log.Error().Err(err).Str("path", cfg.ModelPath).Msg("model file not accessible")
		return Unavailable("model file not accessible: " + err.Error())
	}
	log.Info().Str("path", cfg.ModelPath).
		Int("n_ctx", cfg.ContextSize).
		Int("n_gpu_layers", cfg.GPULayers).
		Msg("loading model")
	eng, err := engine.New(cfg.ModelPath, engine.Options{
		ContextSize: cfg.ContextSize,
		GPULayers:   cfg.GPULayers,
	})
	if err != nil {
		log.Error().Err(err).Msg("model load failed")
		return Unavailable(err.Error())
	}
	log.Info().Msg("model loaded; prompt caching enabled for completions")
	return Ready(eng)
}

// Ready reports whether the model handle can serve completions.
func (m *Manager) Ready() bool { return m.handle.IsReady() }

// Close releases the engine, if one was loaded.
func (m *Manager) Close() {
	if m.handle.IsReady() {
		if err := m.handle.engine.Close(); err != nil {
			m.log.Warn().Err(err).Msg("engine close")
		}
	}
}
