package core

import (
	"regexp"
	"strings"
)

// sortColumns maps every accepted sort_by token to the column expression used
// in the listing query. Only these fixed expressions ever reach the query
// text; user input itself is never interpolated.
var sortColumns = map[string]string{
	"created_at":    "articles.created_at",
	"comment_count": "comment_count",
	"article_id":    "articles.article_id",
	"title":         "articles.title",
	"topic":         "articles.topic",
	"author":        "articles.author",
	"votes":         "articles.votes",
}

var imageExtensionPattern = regexp.MustCompile(`\.jpg|\.png`)

func IsValidSortColumn(token string) bool {
	_, ok := sortColumns[token]
	return ok
}

func IsValidSortDirection(token string) bool {
	switch strings.ToLower(token) {
	case "asc", "desc":
		return true
	default:
		return false
	}
}

// IsValidImageURL accepts a non-empty URL containing exactly one .jpg or
// .png extension. Zero matches and more than one match are both rejected.
func IsValidImageURL(url string) bool {
	if url == "" {
		return false
	}
	return len(imageExtensionPattern.FindAllString(url, -1)) == 1
}
