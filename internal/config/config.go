package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"conversa/internal/capabilities"
	"conversa/internal/domain"
)

// Store backends accepted by STORE_BACKEND
const (
	BackendFirestore = "firestore"
	BackendMongo     = "mongo"
	BackendPostgres  = "postgres"
	BackendRedis     = "redis"
	BackendMemory    = "memory"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Logging
	LogDir      string
	LogMaxFiles int
	// Storage
	StoreBackend       string
	DatabaseURL        string
	DatabaseName       string // mongo database name
	FirestoreProjectID string
	TablePrefix        string // postgres tables, redis keys, firestore/mongo collections
	TablePrefixSet     bool   // TABLE_PREFIX was given explicitly
	// Model
	DefaultModel     string
	GeminiAPIKey     string
	OpenAIAPIKey     string
	AnthropicAPIKey  string
	OpenRouterAPIKey string
	SystemPrompt     string
	// Conversation
	HistoryLimit  int
	FallbackReply string
	// Debug exposes internal error details in responses
	Debug bool
}

// Error is returned by Load when a required value is missing or invalid.
// It matches domain.ErrConfiguration.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return "invalid configuration: " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == domain.ErrConfiguration }

// Load reads the configuration from the environment once at startup and
// validates it. Callers are expected to fail fast on error.
func Load() (*Config, error) {
	env := getEnv("ENVIRONMENT", "dev")

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        env,
		CORSOrigins:        getEnv("CORS_ORIGINS", "*"),
		LogDir:             getEnv("LOG_DIR", ""),
		LogMaxFiles:        getEnvInt("LOG_MAX_FILES", DefaultLogMaxFiles),
		StoreBackend:       strings.ToLower(getEnv("STORE_BACKEND", BackendMongo)),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DatabaseName:       getEnv("DATABASE_NAME", "conversa"),
		FirestoreProjectID: getEnv("FIRESTORE_PROJECT_ID", ""),
		TablePrefix:        getTablePrefix(env),
		TablePrefixSet:     strings.TrimSpace(os.Getenv("TABLE_PREFIX")) != "",
		DefaultModel:       getEnv("DEFAULT_MODEL", DefaultModel),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey:    getEnv("ANTHROPIC_API_KEY", ""),
		OpenRouterAPIKey:   getEnv("OPENROUTER_API_KEY", ""),
		SystemPrompt:       getEnv("SYSTEM_PROMPT", ""),
		HistoryLimit:       getEnvInt("HISTORY_LIMIT", DefaultHistoryLimit),
		FallbackReply:      getEnv("FALLBACK_REPLY", DefaultFallbackReply),
		Debug:              getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}

	if err := cfg.Validate(); err != nil {
		return nil, &Error{Err: err}
	}
	return cfg, nil
}

// Validate checks required values for the selected backend and model provider
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.StoreBackend,
			validation.Required,
			validation.In(BackendFirestore, BackendMongo, BackendPostgres, BackendRedis, BackendMemory),
		),
		validation.Field(&c.DatabaseURL,
			validation.When(c.needsDatabaseURL(), validation.Required.Error("DATABASE_URL is required for "+c.StoreBackend)),
		),
		validation.Field(&c.FirestoreProjectID,
			validation.When(c.StoreBackend == BackendFirestore, validation.Required.Error("FIRESTORE_PROJECT_ID is required")),
		),
		validation.Field(&c.DatabaseName,
			validation.When(c.StoreBackend == BackendMongo, validation.Required),
		),
		validation.Field(&c.DefaultModel, validation.Required),
		validation.Field(&c.HistoryLimit, validation.Min(1), validation.Max(MaxHistoryLimit)),
		validation.Field(&c.FallbackReply, validation.Required),
		validation.Field(&c.LogMaxFiles, validation.Min(1)),
	)
	if err != nil {
		return err
	}

	info, err := capabilities.ParseModel(c.DefaultModel)
	if err != nil {
		return fmt.Errorf("DEFAULT_MODEL: %w", err)
	}
	if info.Provider != capabilities.ProviderLorem && c.APIKeyFor(info.Provider) == "" {
		return fmt.Errorf("%s is required for model %s", apiKeyEnv(info.Provider), c.DefaultModel)
	}

	return nil
}

// APIKeyFor returns the configured API key of a provider, or "" if unknown
func (c *Config) APIKeyFor(provider string) string {
	switch provider {
	case capabilities.ProviderGemini:
		return c.GeminiAPIKey
	case capabilities.ProviderOpenAI:
		return c.OpenAIAPIKey
	case capabilities.ProviderAnthropic:
		return c.AnthropicAPIKey
	case capabilities.ProviderOpenRouter:
		return c.OpenRouterAPIKey
	default:
		return ""
	}
}

// IsProduction reports whether destructive tooling must be refused
func (c *Config) IsProduction() bool {
	return c.Environment == "prod"
}

func (c *Config) needsDatabaseURL() bool {
	switch c.StoreBackend {
	case BackendMongo, BackendPostgres, BackendRedis:
		return true
	default:
		return false
	}
}

func apiKeyEnv(provider string) string {
	switch provider {
	case capabilities.ProviderGemini:
		return "GEMINI_API_KEY"
	case capabilities.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case capabilities.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case capabilities.ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	default:
		return strings.ToUpper(provider) + "_API_KEY"
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		// Out-of-range sentinel so Validate reports the bad value
		return -1
	}
	return i
}
