package main

import (
	"context"
	"flag"
	"log"

	"quiznight/config"
	"quiznight/db"
	"quiznight/models"
	"quiznight/services/archive"
)

type quizSource interface {
	ListQuizzes(ctx context.Context, ownerID string) ([]*models.Quiz, error)
	GetQuizTree(ctx context.Context, quizID string) (*models.QuizTree, error)
}

type quizIndexer interface {
	IndexQuiz(ctx context.Context, tree *models.QuizTree) error
}

// indexquestions backfills the question archive with every saved quiz of
// one owner.
func main() {
	log.Printf("[INFO] Starting question archive backfill")

	cfg := config.Load()
	owner := flag.String("owner", cfg.DevOwnerID, "owner whose quizzes are indexed")
	flag.Parse()

	if !cfg.ArchiveEnabled() {
		log.Fatal("[ERROR] PINECONE_API_KEY and OPENAI_API_KEY environment variables are required")
	}

	ctx := context.Background()

	database, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBURL)
	if err != nil {
		log.Fatalf("[ERROR] Failed to initialize quiz database: %v", err)
	}
	repo := db.NewSQLQuizRepository(database)
	defer repo.Close()

	archiveService, err := archive.NewService(cfg.PineconeAPIKey, cfg.OpenAIAPIKey, cfg.PineconeIndexName)
	if err != nil {
		log.Fatalf("[ERROR] Failed to initialize question archive: %v", err)
	}

	if err := archiveService.EnsureIndex(ctx); err != nil {
		log.Fatalf("[ERROR] Failed to ensure Pinecone index: %v", err)
	}

	failed, err := backfill(ctx, repo, archiveService, *owner)
	if err != nil {
		log.Fatalf("[ERROR] Failed to retrieve quizzes: %v", err)
	}
	if failed > 0 {
		log.Fatalf("[ERROR] Backfill finished with %d failed quizzes", failed)
	}
	log.Printf("[INFO] Question archive backfill completed successfully")
}

// backfill indexes every quiz of owner and returns how many could not be
// loaded or indexed. A failing quiz does not stop the rest.
func backfill(ctx context.Context, quizzes quizSource, index quizIndexer, owner string) (int, error) {
	list, err := quizzes.ListQuizzes(ctx, owner)
	if err != nil {
		return 0, err
	}
	log.Printf("[INFO] Retrieved %d quizzes for owner %s", len(list), owner)

	failed := 0
	for i, quiz := range list {
		log.Printf("[INFO] Processing quiz %d/%d (ID: %s)", i+1, len(list), quiz.ID)

		tree, err := quizzes.GetQuizTree(ctx, quiz.ID)
		if err != nil {
			log.Printf("[ERROR] Failed to load quiz %s: %v", quiz.ID, err)
			failed++
			continue
		}

		// Vector ids are stable per question, so reruns overwrite.
		if err := index.IndexQuiz(ctx, tree); err != nil {
			log.Printf("[ERROR] Failed to index quiz %s: %v", quiz.ID, err)
			failed++
			continue
		}
		log.Printf("[INFO] Successfully indexed quiz %s with %d questions", quiz.ID, tree.QuestionCount())
	}
	return failed, nil
}
