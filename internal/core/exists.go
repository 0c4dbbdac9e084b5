package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/news/internal/utils/databaseutils"
)

// Existence checks run before their dependent mutation and short-circuit on
// failure, so a missing entity never costs a wasted write.

func (c *Core) CheckArticleExists(ctx context.Context, articleID int64) error {
	const existsSQL = `
		SELECT EXISTS (
			SELECT 1 FROM articles WHERE article_id = $1
		)
	`
	return c.checkExists(ctx, existsSQL, articleID)
}

func (c *Core) CheckCommentExists(ctx context.Context, commentID int64) error {
	const existsSQL = `
		SELECT EXISTS (
			SELECT 1 FROM comments WHERE comment_id = $1
		)
	`
	return c.checkExists(ctx, existsSQL, commentID)
}

func (c *Core) CheckTopicExists(ctx context.Context, slug string) error {
	const existsSQL = `
		SELECT EXISTS (
			SELECT 1 FROM topics WHERE slug = $1
		)
	`
	return c.checkExists(ctx, existsSQL, slug)
}

func (c *Core) CheckUserExists(ctx context.Context, username string) error {
	const existsSQL = `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE username = $1
		)
	`
	return c.checkExists(ctx, existsSQL, username)
}

func (c *Core) checkExists(ctx context.Context, existsSQL string, key any) error {
	found, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, existsSQL, func(rows *sql.Rows) (bool, error) {
		var exists bool
		if err := rows.Scan(&exists); err != nil {
			return false, xerrors.New(err)
		}
		return exists, nil
	}, key)

	if err != nil {
		return classifyError(err)
	}
	if !found {
		return xerrors.New(NoRecordFound)
	}

	return nil
}
