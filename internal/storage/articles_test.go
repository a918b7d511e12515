package storage

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papyrus-dev/papyrus/internal/model"
)

func newMockDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	logger := slog.New(slog.DiscardHandler)
	return NewWithPool(mock, logger), mock
}

const fullArticleQuery = `SELECT id, title, author, pub_year, abstract, key_words, related_articles, summary_sentence
		 FROM articles WHERE id = $1`

func articleColumns() []string {
	return []string{"id", "title", "author", "pub_year", "abstract", "key_words", "related_articles", "summary_sentence"}
}

func TestGetArticle(t *testing.T) {
	db, mock := newMockDB(t)

	title := "Attention Is All You Need"
	author := "Vaswani et al."
	year := int32(2017)
	abstract := "The dominant sequence transduction models..."
	summary := "Introduces the Transformer architecture."

	mock.ExpectQuery(regexp.QuoteMeta(fullArticleQuery)).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(articleColumns()).
			AddRow(int64(5), &title, &author, &year, &abstract,
				[]string{"attention", "transformer"}, []string{"BERT"}, &summary))

	a, err := db.GetArticle(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), a.ID)
	assert.Equal(t, &title, a.Title)
	assert.Equal(t, &year, a.PubYear)
	assert.Equal(t, []string{"attention", "transformer"}, a.KeyWords)
	assert.Equal(t, []string{"BERT"}, a.RelatedArticles)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetArticleNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(fullArticleQuery)).
		WithArgs(int64(404)).
		WillReturnRows(pgxmock.NewRows(articleColumns()))

	_, err := db.GetArticle(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetArticleUnavailable(t *testing.T) {
	db, mock := newMockDB(t)

	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	mock.ExpectQuery(regexp.QuoteMeta(fullArticleQuery)).
		WithArgs(int64(1)).
		WillReturnError(dialErr)

	_, err := db.GetArticle(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUnavailable)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleFieldQueriesCoverAllowedSet(t *testing.T) {
	// Every allowed field must have a fixed query, and nothing else may.
	assert.Len(t, fieldQueries, len(model.Fields))
	for _, f := range model.Fields {
		assert.Contains(t, fieldQueries, f)
	}
}

func TestArticleField(t *testing.T) {
	tests := []struct {
		name  string
		field model.Field
		row   any
		want  any
	}{
		{"title", model.FieldTitle, ptr("Deep Residual Learning"), ptr("Deep Residual Learning")},
		{"pub_year", model.FieldPubYear, ptr(int32(2015)), ptr(int32(2015))},
		{"key_words", model.FieldKeyWords, []string{"resnet", "vision"}, []string{"resnet", "vision"}},
		{"related_articles", model.FieldRelatedArticles, []string{"VGG"}, []string{"VGG"}},
		{"null title", model.FieldTitle, (*string)(nil), (*string)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)

			mock.ExpectQuery(regexp.QuoteMeta(fieldQueries[tt.field])).
				WithArgs(int64(7)).
				WillReturnRows(pgxmock.NewRows([]string{string(tt.field)}).AddRow(tt.row))

			got, err := db.ArticleField(context.Background(), 7, tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestArticleFieldNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(fieldQueries[model.FieldAuthor])).
		WithArgs(int64(404)).
		WillReturnRows(pgxmock.NewRows([]string{"author"}))

	_, err := db.ArticleField(context.Background(), 404, model.FieldAuthor)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleFieldRejectsUnknownWithoutQuery(t *testing.T) {
	db, mock := newMockDB(t)

	// No expectations registered: any query issued would fail the test.
	_, err := db.ArticleField(context.Background(), 7, model.Field("password"))
	assert.ErrorIs(t, err, ErrInvalidField)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertArticlesSingleTransaction(t *testing.T) {
	db, mock := newMockDB(t)

	insertRe := regexp.QuoteMeta(`INSERT INTO articles (title, author, pub_year, abstract, key_words, related_articles, summary_sentence)`)

	mock.ExpectBegin()
	mock.ExpectExec(insertRe).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(insertRe).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	n, err := db.InsertArticles(context.Background(), []model.Article{
		{Title: ptr("first")}, {Title: ptr("second")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertArticlesRollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)

	insertRe := regexp.QuoteMeta(`INSERT INTO articles`)

	mock.ExpectBegin()
	mock.ExpectExec(insertRe).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(insertRe).WillReturnError(errors.New("value too long"))
	mock.ExpectRollback()

	_, err := db.InsertArticles(context.Background(), []model.Article{
		{Title: ptr("ok")}, {Title: ptr("too long")},
	})
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func ptr[T any](v T) *T { return &v }
