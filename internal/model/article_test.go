package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
}

func TestParseFieldRejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "id", "password", "title; DROP TABLE articles", "Title"} {
		_, err := ParseField(name)
		assert.Error(t, err, "field %q should be rejected", name)
	}
}

func TestFieldValueMatchesColumns(t *testing.T) {
	title := "On the Electrodynamics of Moving Bodies"
	author := "A. Einstein"
	year := int32(1905)
	abstract := "It is known that Maxwell's electrodynamics..."
	summary := "Special relativity unifies space and time."

	a := Article{
		ID:              1,
		Title:           &title,
		Author:          &author,
		PubYear:         &year,
		Abstract:        &abstract,
		KeyWords:        []string{"relativity", "electrodynamics"},
		RelatedArticles: []string{"Does the inertia of a body depend upon its energy-content?"},
		SummarySentence: &summary,
	}

	assert.Equal(t, &title, a.FieldValue(FieldTitle))
	assert.Equal(t, &author, a.FieldValue(FieldAuthor))
	assert.Equal(t, &year, a.FieldValue(FieldPubYear))
	assert.Equal(t, &abstract, a.FieldValue(FieldAbstract))
	assert.Equal(t, a.KeyWords, a.FieldValue(FieldKeyWords))
	assert.Equal(t, a.RelatedArticles, a.FieldValue(FieldRelatedArticles))
	assert.Equal(t, &summary, a.FieldValue(FieldSummarySentence))
	assert.Nil(t, a.FieldValue(Field("nope")))
}
