package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	DatabaseURL        string
	RedisAddr          string
	RedisPassword      string
	RedisTLS           bool
	CORSAllowedOrigins []string

	// Auth
	AuthJWTSecret  string
	AdminJWTSecret string
	TokenTTL       time.Duration

	// Chatbot pipeline
	CanonicalLanguage string
	AdapterTimeout    time.Duration
	KeywordCacheTTL   time.Duration
	FuzzyThreshold    float64
	ChatRateLimit     float64
	ChatRateBurst     int

	// External capability providers
	TranslateAPIKey string
	GeminiAPIKey    string
	GeminiModelID   string

	// Default admin bootstrap
	DefaultAdminEmail    string
	DefaultAdminPassword string
}

// Load reads configuration from environment variables. A local .env file is
// applied first when present so development matches deployed behavior.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisTLS:           getEnvAsBool("REDIS_TLS", false),
		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		AuthJWTSecret:  getEnv("AUTH_JWT_SECRET", ""),
		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		TokenTTL:       getEnvAsDuration("TOKEN_TTL", 7*24*time.Hour),

		CanonicalLanguage: getEnv("CANONICAL_LANGUAGE", "en"),
		AdapterTimeout:    getEnvAsDuration("ADAPTER_TIMEOUT", 5*time.Second),
		KeywordCacheTTL:   getEnvAsDuration("KEYWORD_CACHE_TTL", 30*time.Second),
		FuzzyThreshold:    getEnvAsFloat("FUZZY_THRESHOLD", 0.6),
		ChatRateLimit:     getEnvAsFloat("CHAT_RATE_LIMIT", 0),
		ChatRateBurst:     getEnvAsInt("CHAT_RATE_BURST", 20),

		TranslateAPIKey: getEnv("TRANSLATE_API_KEY", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:   getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),

		DefaultAdminEmail:    getEnv("DEFAULT_ADMIN_EMAIL", "admin@wellnesscare.com"),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
