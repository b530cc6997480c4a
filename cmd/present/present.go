package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"quiznight/config"
	"quiznight/db"
	"quiznight/models"
	"quiznight/services/player"
)

func main() {
	file := flag.String("file", "", "present a quiz exported as JSON instead of loading it from the database")
	flag.Parse()

	tree, err := loadQuiz(*file, flag.Arg(0))
	if err != nil {
		log.Fatalf("[ERROR] Failed to load quiz: %v", err)
	}

	p, err := player.New(tree)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		renderSlide(os.Stdout, tree.Name, p)
		fmt.Print(colorize(ColorBlue, "> "))
		if !scanner.Scan() {
			return
		}
		if !apply(p, scanner.Text()) {
			return
		}
	}
}

func loadQuiz(file, quizID string) (*models.QuizTree, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		var tree models.QuizTree
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		return &tree, nil
	}

	if quizID == "" {
		return nil, fmt.Errorf("usage: present <quiz-id> | present -file quiz.json")
	}

	cfg := config.Load()
	ctx := context.Background()

	database, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBURL)
	if err != nil {
		return nil, err
	}
	repo := db.NewSQLQuizRepository(database)
	defer repo.Close()

	return repo.GetQuizTree(ctx, quizID)
}
