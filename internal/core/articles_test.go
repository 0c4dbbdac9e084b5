package core

import (
	"testing"

	"github.com/siahsang/news/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListArticlesQueryDefaults(t *testing.T) {
	query, args, err := buildListArticlesQuery("", "created_at", "desc", filter.Default())

	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Contains(t, query, "FROM articles")
	assert.Contains(t, query, "LEFT JOIN comments ON articles.article_id = comments.article_id")
	assert.Contains(t, query, "GROUP BY articles.article_id")
	assert.Contains(t, query, "ORDER BY articles.created_at DESC")
	assert.Contains(t, query, "LIMIT 10 OFFSET 0")
	assert.NotContains(t, query, "WHERE")

	// Listing rows elide the body column.
	assert.NotContains(t, query, "articles.body")
}

func TestBuildListArticlesQueryTopicFilter(t *testing.T) {
	query, args, err := buildListArticlesQuery("mitch", "created_at", "desc", filter.Default())

	require.NoError(t, err)
	assert.Contains(t, query, "WHERE articles.topic = $1")
	assert.Equal(t, []any{"mitch"}, args)
}

func TestBuildListArticlesQuerySorting(t *testing.T) {
	tests := []struct {
		sortBy string
		order  string
		want   string
	}{
		{"comment_count", "asc", "ORDER BY comment_count ASC"},
		{"votes", "desc", "ORDER BY articles.votes DESC"},
		{"title", "ASC", "ORDER BY articles.title ASC"},
		{"author", "desc", "ORDER BY articles.author DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy+" "+tt.order, func(t *testing.T) {
			query, _, err := buildListArticlesQuery("", tt.sortBy, tt.order, filter.Default())

			require.NoError(t, err)
			assert.Contains(t, query, tt.want)
		})
	}
}

func TestBuildListArticlesQueryPagination(t *testing.T) {
	query, _, err := buildListArticlesQuery("", "created_at", "desc", filter.NewFilter(5, 3))

	require.NoError(t, err)
	assert.Contains(t, query, "LIMIT 5 OFFSET 10")
}

func TestBuildCountArticlesQuery(t *testing.T) {
	query, args, err := buildCountArticlesQuery("")
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM articles", query)
	assert.Empty(t, args)

	query, args, err = buildCountArticlesQuery("coding")
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM articles WHERE articles.topic = $1", query)
	assert.Equal(t, []any{"coding"}, args)
}

func TestOverflowsLastPage(t *testing.T) {
	tests := []struct {
		name       string
		totalCount int64
		limit      int64
		page       int64
		want       bool
	}{
		{"first page of many", 13, 10, 1, false},
		{"last partial page", 13, 10, 2, false},
		{"one past the last page", 13, 10, 3, true},
		{"exact page boundary", 10, 10, 1, false},
		{"one past exact boundary", 10, 10, 2, true},
		{"empty result set never overflows", 0, 10, 1, false},
		{"empty result set on a high page", 0, 10, 99, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overflowsLastPage(tt.totalCount, filter.NewFilter(tt.limit, tt.page))
			assert.Equal(t, tt.want, got)
		})
	}
}
