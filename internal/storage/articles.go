package storage

import (
	"context"
	"fmt"

	"github.com/papyrus-dev/papyrus/internal/model"
)

// fieldQueries maps each allowed field to a fixed, compile-time-known query.
// Single-field access never builds SQL from request input: a field name is
// either a key in this table or the request is rejected before any query
// runs. Keep the keys in sync with model.Fields.
var fieldQueries = map[model.Field]string{
	model.FieldTitle:           `SELECT title FROM articles WHERE id = $1`,
	model.FieldAuthor:          `SELECT author FROM articles WHERE id = $1`,
	model.FieldPubYear:         `SELECT pub_year FROM articles WHERE id = $1`,
	model.FieldAbstract:        `SELECT abstract FROM articles WHERE id = $1`,
	model.FieldKeyWords:        `SELECT key_words FROM articles WHERE id = $1`,
	model.FieldRelatedArticles: `SELECT related_articles FROM articles WHERE id = $1`,
	model.FieldSummarySentence: `SELECT summary_sentence FROM articles WHERE id = $1`,
}

// GetArticle retrieves a full article row by ID.
func (db *DB) GetArticle(ctx context.Context, id int64) (model.Article, error) {
	var a model.Article
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, author, pub_year, abstract, key_words, related_articles, summary_sentence
		 FROM articles WHERE id = $1`, id,
	).Scan(
		&a.ID, &a.Title, &a.Author, &a.PubYear, &a.Abstract,
		&a.KeyWords, &a.RelatedArticles, &a.SummarySentence,
	)
	if err != nil {
		return model.Article{}, wrap("get article", err)
	}
	return a, nil
}

// ArticleField retrieves a single column of an article. The field must be a
// member of the allowed set; anything else returns ErrInvalidField without
// touching the database.
func (db *DB) ArticleField(ctx context.Context, id int64, field model.Field) (any, error) {
	query, ok := fieldQueries[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	row := db.pool.QueryRow(ctx, query, id)

	var val any
	var err error
	switch field {
	case model.FieldPubYear:
		var v *int32
		err = row.Scan(&v)
		val = v
	case model.FieldKeyWords, model.FieldRelatedArticles:
		var v []string
		err = row.Scan(&v)
		val = v
	default:
		var v *string
		err = row.Scan(&v)
		val = v
	}
	if err != nil {
		return nil, wrap("get article field", err)
	}
	return val, nil
}

// InsertArticles inserts all given articles in one transaction. Either every
// row is committed or none is; a failure mid-loop rolls back the prior
// inserts of the run. IDs are assigned by the database.
func (db *DB) InsertArticles(ctx context.Context, articles []model.Article) (int, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, wrap("begin seed", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i, a := range articles {
		_, err := tx.Exec(ctx,
			`INSERT INTO articles (title, author, pub_year, abstract, key_words, related_articles, summary_sentence)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			a.Title, a.Author, a.PubYear, a.Abstract,
			a.KeyWords, a.RelatedArticles, a.SummarySentence,
		)
		if err != nil {
			return 0, wrap(fmt.Sprintf("insert article %d", i), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, wrap("commit seed", err)
	}
	return len(articles), nil
}
