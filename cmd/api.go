package main

import (
	_ "embed"
	"encoding/json"
	"net/http"
)

// The endpoint descriptor is a static document served verbatim; it is not
// generated from the route table.
//
//go:embed endpoints.json
var endpointsJSON []byte

func (app *application) getEndpoints(w http.ResponseWriter, r *http.Request) {
	response := envelope{
		"endpoints": json.RawMessage(endpointsJSON),
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
