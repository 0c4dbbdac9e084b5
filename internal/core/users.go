package core

import (
	"context"
	"time"

	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/siahsang/news/models"
)

func (c *Core) GetUsers(ctx context.Context) ([]*models.User, error) {
	const selectSQL = `
		SELECT username, name, avatar_url
		FROM users
	`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var users []*models.User
	if err := c.db.SelectContext(ctx, &users, selectSQL); err != nil {
		return nil, classifyError(err)
	}

	if users == nil {
		users = []*models.User{}
	}

	return users, nil
}

func (c *Core) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const selectSQL = `
		SELECT username, name, avatar_url
		FROM users
		WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	executor := databaseutils.GetSQLExecutor(ctx, c.db)

	user := &models.User{}
	if err := executor.GetContext(ctx, user, selectSQL, username); err != nil {
		return nil, classifyError(err)
	}

	return user, nil
}
