package core

import (
	"context"
	"database/sql"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/siahsang/news/models"
)

func (c *Core) GetTopics(ctx context.Context) ([]*models.Topic, error) {
	const selectSQL = `
		SELECT slug, description
		FROM topics
	`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var topics []*models.Topic
	if err := c.db.SelectContext(ctx, &topics, selectSQL); err != nil {
		return nil, classifyError(err)
	}

	if topics == nil {
		topics = []*models.Topic{}
	}

	return topics, nil
}

// CreateTopic inserts a topic. A slug collision surfaces as the store's
// unique violation, classified at the boundary.
func (c *Core) CreateTopic(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	const insertSQL = `
		INSERT INTO topics (slug, description)
		VALUES ($1, $2)
		RETURNING slug, description
	`

	created, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertSQL, func(rows *sql.Rows) (*models.Topic, error) {
		var topic models.Topic
		if err := rows.Scan(&topic.Slug, &topic.Description); err != nil {
			return nil, xerrors.New(err)
		}
		return &topic, nil
	}, topic.Slug, topic.Description)

	if err != nil {
		return nil, classifyError(err)
	}

	return created, nil
}
