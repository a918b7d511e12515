// Command papyrus-seed bulk-loads articles from a JSON file into the database.
//
// The input file is an array of records keyed in Spanish (the corpus this
// service was built for ships its metadata that way); columns in the database
// are English. The mapping happens here, once, at the edge.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/papyrus-dev/papyrus/internal/config"
	"github.com/papyrus-dev/papyrus/internal/model"
	"github.com/papyrus-dev/papyrus/internal/storage"
	"github.com/papyrus-dev/papyrus/migrations"
)

// seedRecord mirrors one entry of data.json.
type seedRecord struct {
	Title           *string  `json:"título"`
	Author          *string  `json:"autor"`
	PubYear         *int32   `json:"año de publicación"`
	Abstract        *string  `json:"abstract"`
	KeyWords        []string `json:"keywords"`
	RelatedArticles []string `json:"artículos relacionados —grafo"`
	SummarySentence *string  `json:"Frase de resumen"`
}

func (r seedRecord) article() model.Article {
	return model.Article{
		Title:           r.Title,
		Author:          r.Author,
		PubYear:         r.PubYear,
		Abstract:        r.Abstract,
		KeyWords:        r.KeyWords,
		RelatedArticles: r.RelatedArticles,
		SummarySentence: r.SummarySentence,
	}
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	var (
		dataPath = flag.String("data", "data.json", "path to the article JSON file")
		migrate  = flag.Bool("migrate", false, "run schema migrations before seeding")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	raw, err := os.ReadFile(*dataPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", *dataPath, err)
	}

	var records []seedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("parse %s: %w", *dataPath, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("%s contains no articles", *dataPath)
	}

	db, err := storage.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer db.Close()

	if *migrate {
		if err := db.RunMigrations(ctx, migrations.FS); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	articles := make([]model.Article, 0, len(records))
	for _, r := range records {
		if r.Title != nil {
			logger.Info("queueing article", "title", *r.Title)
		}
		articles = append(articles, r.article())
	}

	// One transaction for the whole file: either every article lands or the
	// table is untouched. Transient conflicts get a couple of retries.
	var inserted int
	err = storage.WithRetry(ctx, 3, 200*time.Millisecond, func() error {
		var err error
		inserted, err = db.InsertArticles(ctx, articles)
		return err
	})
	if err != nil {
		return fmt.Errorf("insert: %w", err)
	}

	logger.Info("seed complete", "articles", inserted)
	return nil
}
