package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string

	TemplatesDir string
	OutputDir    string
	StaticDir    string
	PagesDir     string
	MaxUploadMB  int

	LLMProvider string

	OpenRouterAPIKey   string
	OpenRouterBase     string
	OpenRouterModel    string
	OpenRouterAppTitle string
	OpenRouterReferer  string

	GeminiAPIKey string
	GeminiModel  string

	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),

		TemplatesDir: getEnv("TEMPLATES_DIR", "portfolio_templates"),
		OutputDir:    getEnv("OUTPUT_DIR", "generated_sites"),
		StaticDir:    getEnv("STATIC_DIR", "static"),
		PagesDir:     getEnv("PAGES_DIR", "templates"),
		MaxUploadMB:  getEnvInt("MAX_UPLOAD_MB", 15),

		LLMProvider: strings.ToLower(getEnv("LLM_PROVIDER", "openrouter")),

		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBase:     os.Getenv("OPENROUTER_BASE_URL"),
		OpenRouterModel:    os.Getenv("OPENROUTER_MODEL"),
		OpenRouterAppTitle: getEnv("OPENROUTER_APP_TITLE", "portfolio-optimiser"),
		OpenRouterReferer:  os.Getenv("OPENROUTER_REFERER"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "portfolio-optimiser"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),
	}
	return cfg
}

// MaxUploadBytes is the upload cap in bytes.
func (c Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 15 << 20
	}
	return int64(c.MaxUploadMB) << 20
}

// UseLocalModels reports whether the annotator must run without a remote model,
// either by choice or because the selected provider has no key.
func (c Config) UseLocalModels() bool {
	switch c.LLMProvider {
	case "local":
		return true
	case "gemini":
		return c.GeminiAPIKey == ""
	default:
		return c.OpenRouterAPIKey == ""
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
