package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBPath   string
	Timezone string

	// IdentitySecret is the shared HMAC secret of the external identity
	// provider; incoming bearer tokens are verified against it.
	IdentitySecret string
	RoleCacheTTL   time.Duration

	// Remote scoring service (optional, silent fallback when unset).
	ScoringBaseURL   string
	ScoringModelType string

	// Conversational assistant (optional).
	AssistantBaseURL string
	AssistantAPIKey  string
	AssistantModel   string

	// Telegram reminder delivery (optional).
	TelegramBotToken string
	TelegramChatID   string
	ReminderInterval time.Duration
}

func Load() *Config {
	// Load .env if present; absence is fine.
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		DBPath:   getEnv("DB_PATH", "data/cyra.db"),
		Timezone: getEnv("TZ", "UTC"),

		IdentitySecret: getEnv("IDENTITY_SECRET", "change_me_in_production"),
		RoleCacheTTL:   getDuration("ROLE_CACHE_TTL", 5*time.Minute),

		ScoringBaseURL:   getEnv("SCORING_BASE_URL", ""),
		ScoringModelType: getEnv("SCORING_MODEL_TYPE", "cycle_prediction"),

		AssistantBaseURL: getEnv("ASSISTANT_BASE_URL", ""),
		AssistantAPIKey:  getEnv("ASSISTANT_API_KEY", ""),
		AssistantModel:   getEnv("ASSISTANT_MODEL", "gpt-4o-mini"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		ReminderInterval: getDuration("REMINDER_INTERVAL", 6*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
		return parsed
	}
	if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
