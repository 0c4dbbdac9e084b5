package main

import (
	"errors"
	"net/http"

	"github.com/siahsang/news/internal/core"
	"github.com/siahsang/news/internal/validator"
	"github.com/siahsang/news/models"
)

func (app *application) getTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := app.core.GetTopics(r.Context())
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"topics": topics}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createTopic(w http.ResponseWriter, r *http.Request) {
	type input struct {
		Slug        string `json:"slug"`
		Description string `json:"description"`
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
	v.CheckNotBlank(requestPayload.Slug, "slug", "must be provided")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: "Bad Request: Missing Required Field",
			ErrorDetails: v.Errors,
		})
		return
	}

	topic, err := app.core.CreateTopic(r.Context(), &models.Topic{
		Slug:        requestPayload.Slug,
		Description: requestPayload.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrAlreadyExists):
			app.badRequestResponse(w, r, &AppError{
				ErrorMessage: "Bad Request: Already Exists",
				ErrorStack:   err,
			})
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"topic": topic}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
