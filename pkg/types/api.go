package types

// ChatRequest is the payload accepted by POST /chatbot.
type ChatRequest struct {
	// User message to send to the assistant.
	// example: What is 2+2?
	Message string `json:"message" example:"What is 2+2?"`
}

// ChatResponse carries the generated reply. The 503 and 500 failure
// responses reuse the same shape with a fixed human-readable message,
// matching the public contract of the endpoint.
type ChatResponse struct {
	// Generated assistant text, trimmed of surrounding whitespace.
	// example: 2+2 equals 4.
	Response string `json:"response" example:"2+2 equals 4."`
}

// ErrorResponse is the JSON payload for request validation failures.
type ErrorResponse struct {
	// Error message.
	// example: No message provided
	Error string `json:"error" example:"No message provided"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Model handle state: ready or unavailable.
	// example: ready
	State string `json:"state" example:"ready"`
	// Why the model is unavailable; empty when ready.
	// example: model file not found
	Reason string `json:"reason,omitempty" example:"model file not found"`
	// Path of the configured model file.
	// example: /models/llama-2-7b-chat.Q4_K_M.gguf
	ModelPath string `json:"model_path" example:"/models/llama-2-7b-chat.Q4_K_M.gguf"`
	// Context window size the engine was loaded with.
	// example: 4096
	ContextSize int `json:"context_size" example:"4096"`
	// Number of layers offloaded to the GPU.
	// example: 0
	GPULayers int `json:"gpu_layers" example:"0"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
