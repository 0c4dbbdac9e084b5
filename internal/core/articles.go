package core

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/news/internal/filter"
	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/siahsang/news/models"
	"golang.org/x/sync/errgroup"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	DefaultSortColumn    = "created_at"
	DefaultSortDirection = "desc"
)

type NewArticle struct {
	Author        string
	Title         string
	Body          string
	Topic         string
	ArticleImgURL string
}

// ListArticles returns one page of article rows together with the total
// number of rows matching the topic filter. Listing rows omit the body.
func (c *Core) ListArticles(ctx context.Context, topic, sortBy, order string, f filter.Filter) ([]*models.Article, filter.Metadata, error) {
	if sortBy == "" {
		sortBy = DefaultSortColumn
	}
	if order == "" {
		order = DefaultSortDirection
	}

	// Sort tokens cannot be bound as parameters, so they are rejected before
	// any query text is built.
	if !IsValidSortColumn(sortBy) || !IsValidSortDirection(order) {
		return nil, filter.Metadata{}, xerrors.New(ErrInvalidQuery)
	}

	// An unknown topic is a 404; a known topic with no articles is an empty
	// page. The existence check keeps the two cases apart.
	if topic != "" {
		if err := c.CheckTopicExists(ctx, topic); err != nil {
			return nil, filter.Metadata{}, err
		}
	}

	listSQL, listArgs, err := buildListArticlesQuery(topic, sortBy, order, f)
	if err != nil {
		return nil, filter.Metadata{}, xerrors.New(err)
	}
	countSQL, countArgs, err := buildCountArticlesQuery(topic)
	if err != nil {
		return nil, filter.Metadata{}, xerrors.New(err)
	}

	var (
		articles   []*models.Article
		totalCount int64
	)

	// The count and the page are independent round trips, started together
	// and joined before the response is built.
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		count, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, groupCtx, countSQL, func(rows *sql.Rows) (int64, error) {
			var count int64
			if err := rows.Scan(&count); err != nil {
				return 0, xerrors.New(err)
			}
			return count, nil
		}, countArgs...)
		if err != nil {
			return classifyError(err)
		}
		totalCount = count
		return nil
	})

	group.Go(func() error {
		page, err := databaseutils.ExecuteQuery(c.sqlTemplate, groupCtx, listSQL, scanArticleListRow, listArgs...)
		if err != nil {
			return classifyError(err)
		}
		articles = page
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, filter.Metadata{}, err
	}

	if overflowsLastPage(totalCount, f) {
		return nil, filter.Metadata{}, xerrors.New(NoRecordFound)
	}

	if articles == nil {
		articles = []*models.Article{}
	}

	return articles, filter.Metadata{TotalCount: totalCount}, nil
}

// overflowsLastPage reports whether the requested page lies beyond the last
// page. A zero total never overflows: filtering an existing but empty topic
// yields an empty page, not an error.
func overflowsLastPage(totalCount int64, f filter.Filter) bool {
	if totalCount == 0 {
		return false
	}
	totalPages := (totalCount + f.Limit - 1) / f.Limit
	return f.Page > totalPages
}

func buildListArticlesQuery(topic, sortBy, order string, f filter.Filter) (string, []any, error) {
	builder := psql.Select(
		"articles.article_id",
		"articles.title",
		"articles.topic",
		"articles.author",
		"articles.created_at",
		"articles.votes",
		"articles.article_img_url",
		"CAST(COUNT(comments.comment_id) AS INTEGER) AS comment_count",
	).
		From("articles").
		LeftJoin("comments ON articles.article_id = comments.article_id")

	if topic != "" {
		builder = builder.Where(sq.Eq{"articles.topic": topic})
	}

	// Only the fixed expressions from sortColumns reach the ORDER BY clause.
	builder = builder.
		GroupBy("articles.article_id").
		OrderBy(sortColumns[sortBy] + " " + strings.ToUpper(order)).
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset()))

	return builder.ToSql()
}

func buildCountArticlesQuery(topic string) (string, []any, error) {
	builder := psql.Select("COUNT(*)").From("articles")
	if topic != "" {
		builder = builder.Where(sq.Eq{"articles.topic": topic})
	}
	return builder.ToSql()
}

func scanArticleListRow(rows *sql.Rows) (*models.Article, error) {
	var article models.Article
	if err := rows.Scan(
		&article.ArticleID,
		&article.Title,
		&article.Topic,
		&article.Author,
		&article.CreatedAt,
		&article.Votes,
		&article.ArticleImgURL,
		&article.CommentCount,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return &article, nil
}

// GetArticleByID returns a single article including its body, with the
// comment count aggregated over a left join so that an article without
// comments still comes back with a zero count.
func (c *Core) GetArticleByID(ctx context.Context, articleID int64) (*models.Article, error) {
	const selectSQL = `
		SELECT articles.article_id, articles.title, articles.topic, articles.author, articles.body,
		       articles.created_at, articles.votes, articles.article_img_url,
		       COALESCE(c.comment_count, 0) AS comment_count
		FROM articles
		LEFT JOIN (
			SELECT article_id, CAST(COUNT(*) AS INTEGER) AS comment_count
			FROM comments
			GROUP BY article_id
		) c ON articles.article_id = c.article_id
		WHERE articles.article_id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	executor := databaseutils.GetSQLExecutor(ctx, c.db)

	article := &models.Article{}
	if err := executor.GetContext(ctx, article, selectSQL, articleID); err != nil {
		return nil, classifyError(err)
	}

	return article, nil
}

// IncrementArticleVotes applies an unconditional additive update. The store's
// `votes = votes + $1` is atomic under concurrent requests, so no in-process
// locking is needed. A zero-row update means the article vanished between the
// existence check and this statement.
func (c *Core) IncrementArticleVotes(ctx context.Context, articleID int64, delta int64) (*models.Article, error) {
	const updateSQL = `
		UPDATE articles
		SET votes = votes + $1
		WHERE article_id = $2
		RETURNING article_id, title, topic, author, body, created_at, votes, article_img_url
	`

	article, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, updateSQL, func(rows *sql.Rows) (*models.Article, error) {
		var article models.Article
		if err := rows.Scan(
			&article.ArticleID,
			&article.Title,
			&article.Topic,
			&article.Author,
			&article.Body,
			&article.CreatedAt,
			&article.Votes,
			&article.ArticleImgURL,
		); err != nil {
			return nil, xerrors.New(err)
		}
		return &article, nil
	}, delta, articleID)

	if err != nil {
		return nil, classifyError(err)
	}

	return article, nil
}

// CreateArticle inserts a new article and returns it with store defaults
// applied and a zero comment count. Votes always start at 0 regardless of
// what the caller supplied. The image URL column is omitted when no URL was
// given so the store default takes over.
func (c *Core) CreateArticle(ctx context.Context, newArticle *NewArticle) (*models.Article, error) {
	if newArticle.ArticleImgURL != "" && !IsValidImageURL(newArticle.ArticleImgURL) {
		return nil, xerrors.New(ErrInvalidImageType)
	}

	columns := []string{"author", "title", "body", "topic"}
	values := []any{newArticle.Author, newArticle.Title, newArticle.Body, newArticle.Topic}
	if newArticle.ArticleImgURL != "" {
		columns = append(columns, "article_img_url")
		values = append(values, newArticle.ArticleImgURL)
	}

	insertSQL, args, err := psql.Insert("articles").
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING article_id").
		ToSql()
	if err != nil {
		return nil, xerrors.New(err)
	}

	articleID, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertSQL, func(rows *sql.Rows) (int64, error) {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, xerrors.New(err)
		}
		return id, nil
	}, args...)

	if err != nil {
		return nil, classifyError(err)
	}

	return c.GetArticleByID(ctx, articleID)
}

// DeleteArticle removes an article and its comments in one transaction. The
// existence check runs first so a missing id is reported before anything is
// written.
func (c *Core) DeleteArticle(ctx context.Context, articleID int64) error {
	if err := c.CheckArticleExists(ctx, articleID); err != nil {
		return err
	}

	return c.session.DoTransactionally(ctx, func(txCtx context.Context) error {
		const deleteCommentsSQL = `DELETE FROM comments WHERE article_id = $1`
		if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, txCtx, deleteCommentsSQL, articleID); err != nil {
			return classifyError(err)
		}

		const deleteArticleSQL = `DELETE FROM articles WHERE article_id = $1`
		affected, err := databaseutils.ExecuteUpdate(c.sqlTemplate, txCtx, deleteArticleSQL, articleID)
		if err != nil {
			return classifyError(err)
		}
		if affected == 0 {
			return xerrors.New(NoRecordFound)
		}

		return nil
	})
}
