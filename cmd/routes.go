package main

import "net/http"
import "github.com/julienschmidt/httprouter"

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)

	router.HandlerFunc(http.MethodGet, "/api", app.getEndpoints)

	router.HandlerFunc(http.MethodGet, "/api/topics", app.getTopics)
	router.HandlerFunc(http.MethodPost, "/api/topics", app.createTopic)

	router.HandlerFunc(http.MethodGet, "/api/articles", app.getArticles)
	router.HandlerFunc(http.MethodPost, "/api/articles", app.createArticle)
	router.HandlerFunc(http.MethodGet, "/api/articles/:article_id", app.getArticleByID)
	router.HandlerFunc(http.MethodPatch, "/api/articles/:article_id", app.patchArticleByID)
	router.HandlerFunc(http.MethodDelete, "/api/articles/:article_id", app.deleteArticleByID)
	router.HandlerFunc(http.MethodGet, "/api/articles/:article_id/comments", app.getCommentsByArticleID)
	router.HandlerFunc(http.MethodPost, "/api/articles/:article_id/comments", app.createCommentForArticle)

	router.HandlerFunc(http.MethodPatch, "/api/comments/:comment_id", app.patchCommentByID)
	router.HandlerFunc(http.MethodDelete, "/api/comments/:comment_id", app.deleteCommentByID)

	router.HandlerFunc(http.MethodGet, "/api/users", app.getUsers)
	router.HandlerFunc(http.MethodGet, "/api/users/:username", app.getUserByUsername)

	return app.recoverPanic(router)
}
