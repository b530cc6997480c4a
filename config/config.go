package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBDriver string
	DBURL    string

	LLMProvider     string
	OpenAIAPIKey    string
	OpenAIModel     string
	AnthropicAPIKey string

	YouTubeAPIKey        string
	GoogleSearchAPIKey   string
	GoogleSearchEngineID string
	SpotifyClientID      string
	SpotifyClientSecret  string

	PineconeAPIKey    string
	PineconeIndexName string

	AuthJWTSecret string
	DevOwnerID    string
	CORSOrigins   []string
	QuizTitle     string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] Failed to read .env file: %v", err)
	}

	return &Config{
		Port:     getenvOr("PORT", "8080"),
		DBDriver: getenvOr("DB_DRIVER", "postgres"),
		DBURL:    os.Getenv("DB_URL"),

		LLMProvider:     getenvOr("LLM_PROVIDER", "openai"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getenvOr("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),

		YouTubeAPIKey:        os.Getenv("YOUTUBE_API_KEY"),
		GoogleSearchAPIKey:   os.Getenv("GOOGLE_SEARCH_API_KEY"),
		GoogleSearchEngineID: os.Getenv("GOOGLE_SEARCH_ENGINE_ID"),
		SpotifyClientID:      os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret:  os.Getenv("SPOTIFY_CLIENT_SECRET"),

		PineconeAPIKey:    os.Getenv("PINECONE_API_KEY"),
		PineconeIndexName: getenvOr("PINECONE_INDEX", "quiznight-questions"),

		AuthJWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		DevOwnerID:    getenvOr("DEV_OWNER_ID", "local"),
		CORSOrigins:   splitList(getenvOr("CORS_ORIGINS", "http://localhost:3000")),
		QuizTitle:     getenvOr("QUIZ_TITLE", "Quiz Night"),
	}
}

func (c *Config) ImageSearchEnabled() bool {
	return c.GoogleSearchAPIKey != "" && c.GoogleSearchEngineID != ""
}

func (c *Config) AudioSearchEnabled() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != ""
}

// ArchiveEnabled reports whether the question archive can run. It embeds
// with OpenAI, so both keys are needed.
func (c *Config) ArchiveEnabled() bool {
	return c.PineconeAPIKey != "" && c.OpenAIAPIKey != ""
}

func getenvOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
