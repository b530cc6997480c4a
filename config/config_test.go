package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "DB_DRIVER", "LLM_PROVIDER", "OPENAI_MODEL", "DEV_OWNER_ID", "CORS_ORIGINS", "QUIZ_TITLE", "GOOGLE_SEARCH_API_KEY", "SPOTIFY_CLIENT_ID"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "local", cfg.DevOwnerID)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.False(t, cfg.ImageSearchEnabled())
	assert.False(t, cfg.AudioSearchEnabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("GOOGLE_SEARCH_API_KEY", "key")
	t.Setenv("GOOGLE_SEARCH_ENGINE_ID", "cx")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.ImageSearchEnabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestImageSearchNeedsBothKeys(t *testing.T) {
	cfg := &Config{GoogleSearchAPIKey: "key"}
	assert.False(t, cfg.ImageSearchEnabled())
}
