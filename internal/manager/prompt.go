package manager

// systemPreamble is the static instruction that opens every prompt. Keeping
// it byte-stable across requests lets the engine's prompt cache reuse the
// prefix computation.
const systemPreamble = "A chat between a curious user and an AI assistant. " +
	"The assistant gives helpful, concise, and polite answers to the user's questions. " +
	"If the assistant does not know the answer, it says so.\n\n"

// BuildPrompt wraps a user message into the fixed two-turn template: the
// preamble, a User section, and an empty Assistant section the model
// completes.
func BuildPrompt(message string) string {
	return systemPreamble +
		"### User:\n" + message + "\n\n" +
		"### Assistant:\n"
}
