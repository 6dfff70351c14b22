package config

const (
	// DefaultHistoryLimit is how many recent messages are replayed to the model.
	// Older messages stay readable through the history endpoint.
	DefaultHistoryLimit = 20

	// MaxHistoryLimit bounds HISTORY_LIMIT.
	MaxHistoryLimit = 200

	// DefaultFallbackReply replaces an empty model output.
	DefaultFallbackReply = "O modelo não retornou texto."

	// DefaultModel is used when DEFAULT_MODEL is unset.
	DefaultModel = "gemini-1.5-flash"

	// MaxPromptLength is the maximum prompt length in characters.
	MaxPromptLength = 100_000

	// MaxRequestBodyBytes caps JSON request bodies.
	MaxRequestBodyBytes = 10 << 20

	// DefaultLogMaxFiles is how many log files LOG_DIR keeps.
	DefaultLogMaxFiles = 10
)
