package main

import (
	"errors"
	"net/http"

	"github.com/siahsang/news/internal/core"
	"github.com/siahsang/news/internal/filter"
	"github.com/siahsang/news/internal/validator"
)

func (app *application) getCommentsByArticleID(w http.ResponseWriter, r *http.Request) {
	articleID, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: "Bad Request: Invalid Input",
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	query := r.URL.Query()

	limit := app.readInt(query, "limit", filter.DefaultLimit, v)
	page := app.readInt(query, "p", filter.DefaultPage, v)

	filters := filter.NewFilter(limit, page)

	filter.ValidateFilters(filters, v)
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	comments, err := app.core.GetCommentsByArticleID(r.Context(), articleID, filters)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"comments": comments}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createCommentForArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := app.readIDParam(r, "article_id")
	if err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: "Bad Request: Invalid Input",
			ErrorStack:   err,
		})
		return
	}

	type input struct {
		Username string `json:"username"`
		Body     string `json:"body"`
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
	v.CheckNotBlank(requestPayload.Username, "username", "must be provided")
	v.CheckNotBlank(requestPayload.Body, "body", "must be provided")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: "Bad Request: Missing Required Field",
			ErrorDetails: v.Errors,
		})
		return
	}

	comment, err := app.core.CreateComment(r.Context(), articleID, &core.NewComment{
		Author: requestPayload.Username,
		Body:   requestPayload.Body,
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrUnknownUser), errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) patchCommentByID(w http.ResponseWriter, r *http.Request) {
	commentID, err := app.readIDParam(r, "comment_id")
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

	comment, err := app.core.IncrementCommentVotes(r.Context(), commentID, *requestPayload.IncVotes)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"comment": comment}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteCommentByID(w http.ResponseWriter, r *http.Request) {
	commentID, err := app.readIDParam(r, "comment_id")
	if err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: "Bad Request: Invalid Input",
			ErrorStack:   err,
		})
		return
	}

	if err := app.core.DeleteComment(r.Context(), commentID); err != nil {
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
