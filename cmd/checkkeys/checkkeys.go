package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"quiznight/config"
	"quiznight/db"
	"quiznight/models"
	"quiznight/services/archive"
	"quiznight/services/generator"
	"quiznight/services/search"
)

type check struct {
	name       string
	configured bool
	run        func(ctx context.Context) error
}

func main() {
	cfg := config.Load()

	youtube := search.NewYouTubeClient(cfg.YouTubeAPIKey, nil)
	images := search.NewImageClient(cfg.GoogleSearchAPIKey, cfg.GoogleSearchEngineID, nil)
	audio := search.NewAudioClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret, nil)

	checks := []check{
		{
			name:       "Database (" + cfg.DBDriver + ")",
			configured: cfg.DBURL != "" || cfg.DBDriver == string(db.DriverSQLite),
			run: func(ctx context.Context) error {
				database, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBURL)
				if err != nil {
					return err
				}
				return database.Close()
			},
		},
		{
			name:       "OpenAI " + maskKey(cfg.OpenAIAPIKey),
			configured: cfg.OpenAIAPIKey != "",
			run: func(ctx context.Context) error {
				c, err := generator.NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIModel)
				if err != nil {
					return err
				}
				_, err = c.Complete(ctx, `Reply with {"questions": []}`)
				return err
			},
		},
		{
			name:       "Anthropic " + maskKey(cfg.AnthropicAPIKey),
			configured: cfg.AnthropicAPIKey != "",
			run: func(ctx context.Context) error {
				c, err := generator.NewAnthropicCompleter(cfg.AnthropicAPIKey)
				if err != nil {
					return err
				}
				_, err = c.Complete(ctx, `Reply with {"questions": []}`)
				return err
			},
		},
		{
			name:       "YouTube " + maskKey(cfg.YouTubeAPIKey),
			configured: cfg.YouTubeAPIKey != "",
			run: func(ctx context.Context) error {
				_, err := youtube.SearchVideos(ctx, "test")
				return err
			},
		},
		{
			name:       "Google image search " + maskKey(cfg.GoogleSearchAPIKey),
			configured: cfg.ImageSearchEnabled(),
			run: func(ctx context.Context) error {
				_, err := images.SearchImages(ctx, "test")
				return err
			},
		},
		{
			name:       "Spotify",
			configured: cfg.AudioSearchEnabled(),
			run: func(ctx context.Context) error {
				_, err := audio.SearchPreview(ctx, "test")
				return err
			},
		},
		{
			name:       "Pinecone " + maskKey(cfg.PineconeAPIKey),
			configured: cfg.ArchiveEnabled(),
			run: func(ctx context.Context) error {
				svc, err := archive.NewService(cfg.PineconeAPIKey, cfg.OpenAIAPIKey, cfg.PineconeIndexName)
				if err != nil {
					return err
				}
				_, err = svc.Similar(ctx, "test", models.CategoryGeneral, 1)
				return err
			},
		},
	}

	if failed := runChecks(context.Background(), os.Stdout, checks); failed > 0 {
		log.Printf("[ERROR] %d checks failed", failed)
		os.Exit(1)
	}
}

// runChecks probes every configured service in turn and returns how many
// probes failed. Unconfigured services are reported but not counted.
func runChecks(ctx context.Context, w io.Writer, checks []check) int {
	failed := 0
	for _, c := range checks {
		if !c.configured {
			fmt.Fprintf(w, "%-36s missing\n", c.name)
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err := c.run(callCtx)
		cancel()

		if err != nil {
			failed++
			fmt.Fprintf(w, "%-36s FAILED: %v\n", c.name, err)
			continue
		}
		fmt.Fprintf(w, "%-36s ok\n", c.name)
	}
	return failed
}

// maskKey shows only the start of a key.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "(set)"
	}
	return "(" + key[:8] + "...)"
}
