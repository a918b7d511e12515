// Package model defines the article record, the allowed field set, and the
// request/response payloads for the HTTP API.
package model

import "fmt"

// Article is one row of the articles table. Every column except the primary
// key is nullable from the application's perspective; the seed loader is the
// only writer and the API never mutates rows.
type Article struct {
	ID              int64    `json:"id"`
	Title           *string  `json:"title"`
	Author          *string  `json:"author"`
	PubYear         *int32   `json:"pub_year"`
	Abstract        *string  `json:"abstract"`
	KeyWords        []string `json:"key_words"`
	RelatedArticles []string `json:"related_articles"`
	SummarySentence *string  `json:"summary_sentence"`
}

// FieldValue returns the value of the named column, mirroring what a
// single-field query for that column would produce.
func (a Article) FieldValue(f Field) any {
	switch f {
	case FieldTitle:
		return a.Title
	case FieldAuthor:
		return a.Author
	case FieldPubYear:
		return a.PubYear
	case FieldAbstract:
		return a.Abstract
	case FieldKeyWords:
		return a.KeyWords
	case FieldRelatedArticles:
		return a.RelatedArticles
	case FieldSummarySentence:
		return a.SummarySentence
	}
	return nil
}

// Field identifies one column of the articles table that single-field
// endpoints may read. Only the seven declared constants are valid; anything
// else must be rejected before a query is built. Keep this set in sync with
// the articles schema: a new column is invisible to single-field access
// until a constant is added here.
type Field string

const (
	FieldTitle           Field = "title"
	FieldAuthor          Field = "author"
	FieldPubYear         Field = "pub_year"
	FieldAbstract        Field = "abstract"
	FieldKeyWords        Field = "key_words"
	FieldRelatedArticles Field = "related_articles"
	FieldSummarySentence Field = "summary_sentence"
)

// Fields lists all allowed fields in schema order.
var Fields = []Field{
	FieldTitle,
	FieldAuthor,
	FieldPubYear,
	FieldAbstract,
	FieldKeyWords,
	FieldRelatedArticles,
	FieldSummarySentence,
}

// Valid reports whether f is a member of the allowed field set.
func (f Field) Valid() bool {
	switch f {
	case FieldTitle, FieldAuthor, FieldPubYear, FieldAbstract,
		FieldKeyWords, FieldRelatedArticles, FieldSummarySentence:
		return true
	}
	return false
}

// ParseField converts a raw field name into a Field, rejecting anything
// outside the allowed set.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if !f.Valid() {
		return "", fmt.Errorf("model: invalid field %q", s)
	}
	return f, nil
}
