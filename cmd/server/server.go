package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiznight/auth"
	"quiznight/config"
	"quiznight/db"
	"quiznight/handlers"
	"quiznight/services"
	"quiznight/services/archive"
	"quiznight/services/enrichment"
	"quiznight/services/generator"
	"quiznight/services/printing"
	"quiznight/services/search"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	database, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBURL)
	if err != nil {
		log.Fatalf("Failed to initialize quiz database: %v", err)
	}
	quizRepo := db.NewSQLQuizRepository(database)
	defer quizRepo.Close()

	// The archive stays a nil interface when disabled so services skip it.
	var history generator.History
	var questionArchive services.QuestionArchive
	if cfg.ArchiveEnabled() {
		archiveService, err := archive.NewService(cfg.PineconeAPIKey, cfg.OpenAIAPIKey, cfg.PineconeIndexName)
		if err != nil {
			log.Printf("[WARN] Question archive disabled: %v", err)
		} else {
			history = archiveService
			questionArchive = archiveService
		}
	} else {
		log.Printf("[INFO] PINECONE_API_KEY not set, question archive disabled")
	}

	completer, err := newCompleter(cfg)
	if err != nil {
		log.Printf("[WARN] Question generation disabled: %v", err)
	}
	generatorService := generator.NewService(completer, history)

	youtubeClient := search.NewYouTubeClient(cfg.YouTubeAPIKey, nil)
	imageClient := search.NewImageClient(cfg.GoogleSearchAPIKey, cfg.GoogleSearchEngineID, nil)
	audioClient := search.NewAudioClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret, nil)

	var videos enrichment.VideoSearcher
	if cfg.YouTubeAPIKey != "" {
		videos = youtubeClient
	} else {
		log.Printf("[INFO] YOUTUBE_API_KEY not set, music and film clips disabled")
	}
	var images enrichment.ImageSearcher
	if cfg.ImageSearchEnabled() {
		images = imageClient
	} else {
		log.Printf("[INFO] Google image search not configured, picture rounds need manual images")
	}
	var audio enrichment.AudioSearcher
	if cfg.AudioSearchEnabled() {
		audio = audioClient
	}
	enricher := enrichment.NewEnricher(videos, images, audio)

	renderer, err := printing.NewRenderer(cfg.QuizTitle)
	if err != nil {
		log.Fatalf("Failed to initialize print renderer: %v", err)
	}

	quizStoreService := services.NewQuizStoreService(quizRepo, questionArchive)

	generateHandler := handlers.NewGenerateHandler(generatorService, enricher)
	searchHandler := handlers.NewSearchHandler(enricher, imageClient, audioClient)
	quizStoreHandler := handlers.NewQuizStoreHandler(quizStoreService)
	printHandler := handlers.NewPrintHandler(quizStoreService, renderer)

	verifier := auth.NewVerifier(cfg.AuthJWTSecret, cfg.DevOwnerID)

	router := mux.NewRouter()
	router.Use(recoveryMiddleware)
	router.Use(loggingMiddleware)
	router.Use(jsonMiddleware)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	protected := router.NewRoute().Subrouter()
	protected.Use(verifier.Middleware)

	generateHandler.RegisterRoutes(protected)
	searchHandler.RegisterRoutes(protected)
	printHandler.RegisterRoutes(protected)
	quizStoreHandler.RegisterRoutes(protected)

	// CORS wraps the router so preflight requests never reach route matching.
	handler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	})(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[INFO] Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("[INFO] Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] Server forced to shutdown: %v", err)
	}
}

// newCompleter picks the language model backend. It returns a nil
// Completer when the chosen provider has no key.
func newCompleter(cfg *config.Config) (generator.Completer, error) {
	switch cfg.LLMProvider {
	case "anthropic":
		c, err := generator.NewAnthropicCompleter(cfg.AnthropicAPIKey)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "openai":
		c, err := generator.NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, errors.New("unknown LLM_PROVIDER " + cfg.LLMProvider)
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
