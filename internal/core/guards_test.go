package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSortColumn(t *testing.T) {
	valid := []string{"created_at", "comment_count", "article_id", "title", "topic", "author", "votes"}
	for _, token := range valid {
		assert.True(t, IsValidSortColumn(token), "expected %q to be a valid sort column", token)
	}

	invalid := []string{"", "body", "votes;", "created_at DESC", "article_img_url", "articles.title", "1; DROP TABLE articles"}
	for _, token := range invalid {
		assert.False(t, IsValidSortColumn(token), "expected %q to be rejected", token)
	}
}

func TestIsValidSortDirection(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"asc", true},
		{"desc", true},
		{"ASC", true},
		{"DeSc", true},
		{"", false},
		{"ascending", false},
		{"desc;--", false},
		{"up", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidSortDirection(tt.token), "token %q", tt.token)
	}
}

func TestIsValidImageURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"jpg", "https://example.com/cat.jpg", true},
		{"png", "https://example.com/cat.png", true},
		{"empty", "", false},
		{"no extension", "https://example.com/cat", false},
		{"wrong extension", "https://example.com/cat.gif", false},
		{"two extensions", "https://example.com/cat.jpg.png", false},
		{"repeated extension", "https://example.com/cat.jpg/dog.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidImageURL(tt.url))
		})
	}
}
