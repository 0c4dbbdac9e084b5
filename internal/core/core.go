package core

import (
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/siahsang/news/internal/utils/databaseutils"
)

type Core struct {
	log         *slog.Logger
	db          *sqlx.DB
	sqlTemplate *databaseutils.SQLTemplate
	session     databaseutils.Session
}

func NewCore(dbConn *sqlx.DB, log *slog.Logger, sqlTemplate *databaseutils.SQLTemplate) *Core {
	return &Core{
		log:         log,
		db:          dbConn,
		sqlTemplate: sqlTemplate,
		session:     databaseutils.NewSession(dbConn),
	}
}
