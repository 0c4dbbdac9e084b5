package main

import (
	"errors"
	"net/http"

	"github.com/siahsang/news/internal/core"
	"github.com/siahsang/news/internal/filter"
	"github.com/siahsang/news/internal/validator"
)

func (app *application) getArticles(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	query := r.URL.Query()

	topic := app.readString(query, "topic", "")
	sortBy := app.readString(query, "sort_by", "")
	order := app.readString(query, "order", "")

	limit := app.readInt(query, "limit", filter.DefaultLimit, v)
	page := app.readInt(query, "p", filter.DefaultPage, v)

	filters := filter.NewFilter(limit, page)

	filter.ValidateFilters(filters, v)
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	articles, metadata, err := app.core.ListArticles(r.Context(), topic, sortBy, order, filters)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidQuery):
			app.badRequestResponse(w, r, &AppError{
				ErrorMessage: "Bad Request: Invalid Query",
				ErrorStack:   err,
			})
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	response := envelope{
		"articles":    articles,
		"total_count": metadata.TotalCount,
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getArticleByID(w http.ResponseWriter, r *http.Request) {
	articleID, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: "Bad Request: Invalid Input",
			ErrorStack:   err,
		})
		return
	}

	article, err := app.core.GetArticleByID(r.Context(), articleID)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createArticle(w http.ResponseWriter, r *http.Request) {
	type input struct {
		Author        string `json:"author"`
		Title         string `json:"title"`
		Body          string `json:"body"`
		Topic         string `json:"topic"`
		ArticleImgURL string `json:"article_img_url"`
	}

	var requestPayload input

	if err := app.readJSON(w, r, &requestPayload); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	v.CheckNotBlank(requestPayload.Author, "author", "must be provided")
	v.CheckNotBlank(requestPayload.Title, "title", "must be provided")
	v.CheckNotBlank(requestPayload.Body, "body", "must be provided")
	v.CheckNotBlank(requestPayload.Topic, "topic", "must be provided")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: "Bad Request: Missing Required Field",
			ErrorDetails: v.Errors,
		})
		return
	}

	article, err := app.core.CreateArticle(r.Context(), &core.NewArticle{
		Author:        requestPayload.Author,
		Title:         requestPayload.Title,
		Body:          requestPayload.Body,
		Topic:         requestPayload.Topic,
		ArticleImgURL: requestPayload.ArticleImgURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidImageType):
			app.badRequestResponse(w, r, &AppError{
				ErrorMessage: "Bad Request: Invalid Image Type",
				ErrorStack:   err,
			})
		case errors.Is(err, core.ErrUnknownUser), errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) patchArticleByID(w http.ResponseWriter, r *http.Request) {
	articleID, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: "Bad Request: Invalid Input",
			ErrorStack:   err,
		})
		return
	}

	type input struct {
		IncVotes *int64 `json:"inc_votes"`
	}

	var requestPayload input

	if err := app.readJSON(w, r, &requestPayload); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	v.Check(requestPayload.IncVotes != nil, "inc_votes", "must be provided")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: "Bad Request: Missing Required Field",
			ErrorDetails: v.Errors,
		})
		return
	}

	if err := app.core.CheckArticleExists(r.Context(), articleID); err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	article, err := app.core.IncrementArticleVotes(r.Context(), articleID, *requestPayload.IncVotes)
	if err != nil {
		switch {
		// The article can vanish between the check and the update.
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteArticleByID(w http.ResponseWriter, r *http.Request) {
	articleID, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: "Bad Request: Invalid Input",
			ErrorStack:   err,
		})
		return
	}

	if err := app.core.DeleteArticle(r.Context(), articleID); err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
