package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultModelPath   = "llama-2-7b-chat.Q4_K_M.gguf"
	DefaultPort        = 5000
	DefaultContextSize = 4096
	DefaultGPULayers   = 0
)

// Config holds runtime parameters for the service. It is established once at
// startup and never mutated afterwards.
type Config struct {
	ModelPath   string `json:"model_path" yaml:"model_path" toml:"model_path"`
	Port        int    `json:"port" yaml:"port" toml:"port"`
	ContextSize int    `json:"context_size" yaml:"context_size" toml:"context_size"`
	GPULayers   int    `json:"gpu_layers" yaml:"gpu_layers" toml:"gpu_layers"`
}

// FromEnv builds a Config from the process environment. Unset or empty
// variables fall back to defaults; a set-but-unparseable integer is a startup
// error rather than a silent fallback.
func FromEnv() (Config, error) {
	cfg := Config{
		ModelPath:   DefaultModelPath,
		Port:        DefaultPort,
		ContextSize: DefaultContextSize,
		GPULayers:   DefaultGPULayers,
	}
	if v := os.Getenv("LLM_MODEL_PATH"); v != "" {
		cfg.ModelPath = v
	}
	var err error
	if cfg.Port, err = intEnv("HOST_PORT", cfg.Port); err != nil {
		return cfg, err
	}
	if cfg.ContextSize, err = intEnv("LLM_N_CTX", cfg.ContextSize); err != nil {
		return cfg, err
	}
	if cfg.GPULayers, err = intEnv("LLM_N_GPU_LAYERS", cfg.GPULayers); err != nil {
		return cfg, err
	}
	if cfg.ModelPath, err = ExpandHome(cfg.ModelPath); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Merge overlays non-zero fields of over onto base.
func Merge(base, over Config) Config {
	out := base
	if over.ModelPath != "" {
		out.ModelPath = over.ModelPath
	}
	if over.Port != 0 {
		out.Port = over.Port
	}
	if over.ContextSize != 0 {
		out.ContextSize = over.ContextSize
	}
	if over.GPULayers != 0 {
		out.GPULayers = over.GPULayers
	}
	return out
}

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/models/llama-2-7b-chat.Q4_K_M.gguf
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
