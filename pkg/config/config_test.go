package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "TEMPLATES_DIR", "OUTPUT_DIR", "MAX_UPLOAD_MB", "LLM_PROVIDER", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "portfolio_templates", cfg.TemplatesDir)
	assert.Equal(t, "generated_sites", cfg.OutputDir)
	assert.Equal(t, 15, cfg.MaxUploadMB)
	assert.Equal(t, "openrouter", cfg.LLMProvider)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "k")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, int64(2<<20), cfg.MaxUploadBytes())
	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.False(t, cfg.UseLocalModels())
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("JWT_TTL_MINUTES", "soon")
	cfg := Load()
	assert.Equal(t, 60, cfg.JWTTTLMinutes)
}

func TestUseLocalModels(t *testing.T) {
	assert.True(t, Config{LLMProvider: "local", OpenRouterAPIKey: "x"}.UseLocalModels())
	assert.True(t, Config{LLMProvider: "openrouter"}.UseLocalModels())
	assert.False(t, Config{LLMProvider: "openrouter", OpenRouterAPIKey: "x"}.UseLocalModels())
	assert.True(t, Config{LLMProvider: "gemini"}.UseLocalModels())
}

func TestMaxUploadBytes_NonPositive(t *testing.T) {
	assert.Equal(t, int64(15<<20), Config{}.MaxUploadBytes())
}
