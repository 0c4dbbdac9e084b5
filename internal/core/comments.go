package core

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/news/internal/filter"
	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/siahsang/news/models"
)

type NewComment struct {
	Author string
	Body   string
}

// GetCommentsByArticleID returns one page of an article's comments, newest
// first. The article existence gate runs first so an unknown article is a
// not-found, while an article without comments is an empty page.
func (c *Core) GetCommentsByArticleID(ctx context.Context, articleID int64, f filter.Filter) ([]*models.Comment, error) {
	if err := c.CheckArticleExists(ctx, articleID); err != nil {
		return nil, err
	}

	selectSQL, args, err := psql.Select("comment_id", "article_id", "author", "body", "votes", "created_at").
		From("comments").
		Where(sq.Eq{"article_id": articleID}).
		OrderBy("created_at DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset())).
		ToSql()
	if err != nil {
		return nil, xerrors.New(err)
	}

	comments, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, selectSQL, scanCommentRow, args...)
	if err != nil {
		return nil, classifyError(err)
	}

	if comments == nil {
		comments = []*models.Comment{}
	}

	return comments, nil
}

// CreateComment inserts a comment on an article. The article gate runs
// before the insert; an unknown author surfaces from the store's foreign-key
// violation, classified at the boundary.
func (c *Core) CreateComment(ctx context.Context, articleID int64, newComment *NewComment) (*models.Comment, error) {
	if err := c.CheckArticleExists(ctx, articleID); err != nil {
		return nil, err
	}

	const insertSQL = `
		INSERT INTO comments (article_id, author, body)
		VALUES ($1, $2, $3)
		RETURNING comment_id, article_id, author, body, votes, created_at
	`

	comment, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertSQL, scanCommentRow, articleID, newComment.Author, newComment.Body)
	if err != nil {
		return nil, classifyError(err)
	}

	return comment, nil
}

// IncrementCommentVotes mirrors IncrementArticleVotes: a single atomic
// additive update, not-found when no row was updated.
func (c *Core) IncrementCommentVotes(ctx context.Context, commentID int64, delta int64) (*models.Comment, error) {
	const updateSQL = `
		UPDATE comments
		SET votes = votes + $1
		WHERE comment_id = $2
		RETURNING comment_id, article_id, author, body, votes, created_at
	`

	comment, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, updateSQL, scanCommentRow, delta, commentID)
	if err != nil {
		return nil, classifyError(err)
	}

	return comment, nil
}

func (c *Core) DeleteComment(ctx context.Context, commentID int64) error {
	if err := c.CheckCommentExists(ctx, commentID); err != nil {
		return err
	}

	const deleteSQL = `DELETE FROM comments WHERE comment_id = $1`

	affected, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, deleteSQL, commentID)
	if err != nil {
		return classifyError(err)
	}
	if affected == 0 {
		return xerrors.New(NoRecordFound)
	}

	return nil
}

func scanCommentRow(rows *sql.Rows) (*models.Comment, error) {
	var comment models.Comment
	if err := rows.Scan(
		&comment.CommentID,
		&comment.ArticleID,
		&comment.Author,
		&comment.Body,
		&comment.Votes,
		&comment.CreatedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return &comment, nil
}
