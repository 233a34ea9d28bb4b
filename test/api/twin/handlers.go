/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package twin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const (
	msgCreated        = "Successfully created!"
	msgEdited         = "Successfully edited"
	msgDeleted        = "Deleted successfully!"
	msgUnableToEdit   = "Unable to edit this story spoiler!"
	msgUnableToDelete = "Unable to delete this story spoiler!"
	msgInvalidLogin   = "Invalid username or password!"
)

type credentials struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type storyRequest struct {
	Title       string  `json:"Title" validate:"required"`
	Description string  `json:"Description" validate:"required"`
	URL         *string `json:"Url"`
}

type message struct {
	Msg     string `json:"msg"`
	StoryID string `json:"storyId,omitempty"`
}

// problem mirrors the validation problem details the real service emits.
type problem struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, contentType string, status int, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, m message) {
	writeJSON(w, "application/json; charset=utf-8", status, m)
}

func writeProblem(w http.ResponseWriter, fields map[string][]string) {
	writeJSON(w, "application/problem+json; charset=utf-8", http.StatusBadRequest, problem{
		Type:   "https://tools.ietf.org/html/rfc9110#section-15.5.1",
		Title:  "One or more validation errors occurred.",
		Status: http.StatusBadRequest,
		Errors: fields,
	})
}

// decodeStory binds and validates a story payload, writing a 400 on failure.
func (t *Twin) decodeStory(w http.ResponseWriter, r *http.Request) (*storyRequest, bool) {
	var request storyRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeProblem(w, map[string][]string{"$": {err.Error()}})
		return nil, false
	}

	if err := t.validate.Struct(&request); err != nil {
		fields := map[string][]string{}

		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fieldErr := range validationErrors {
				fields[fieldErr.Field()] = append(fields[fieldErr.Field()], fmt.Sprintf("The %s field is required.", fieldErr.Field()))
			}
		}

		writeProblem(w, fields)

		return nil, false
	}

	return &request, true
}

// authenticate handles POST /api/User/Authentication.
func (t *Twin) authenticate(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeProblem(w, map[string][]string{"$": {err.Error()}})
		return
	}

	if creds.UserName != t.config.Username || creds.Password != t.config.Password {
		writeMessage(w, http.StatusUnauthorized, message{Msg: msgInvalidLogin})
		return
	}

	token, err := t.issueToken(creds.UserName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, "application/json; charset=utf-8", http.StatusOK, map[string]string{
		"username":    creds.UserName,
		"accessToken": token,
	})
}

// createStory handles POST /api/Story/Create.
func (t *Twin) createStory(w http.ResponseWriter, r *http.Request) {
	request, ok := t.decodeStory(w, r)
	if !ok {
		return
	}

	story := t.store.Create(subjectFromContext(r.Context()), request.Title, request.Description, request.URL)

	writeMessage(w, http.StatusCreated, message{Msg: msgCreated, StoryID: story.ID})
}

// editStory handles PUT /api/Story/Edit/{storyId}.
func (t *Twin) editStory(w http.ResponseWriter, r *http.Request) {
	request, ok := t.decodeStory(w, r)
	if !ok {
		return
	}

	if !t.store.Update(chi.URLParam(r, "storyId"), request.Title, request.Description, request.URL) {
		writeMessage(w, http.StatusBadRequest, message{Msg: msgUnableToEdit})
		return
	}

	writeMessage(w, http.StatusOK, message{Msg: msgEdited})
}

// listStories handles GET /api/Story/All.
func (t *Twin) listStories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, "application/json; charset=utf-8", http.StatusOK, t.store.List())
}

// deleteStory handles DELETE /api/Story/Delete/{storyId}.
func (t *Twin) deleteStory(w http.ResponseWriter, r *http.Request) {
	if !t.store.Delete(chi.URLParam(r, "storyId")) {
		writeMessage(w, http.StatusBadRequest, message{Msg: msgUnableToDelete})
		return
	}

	writeMessage(w, http.StatusOK, message{Msg: msgDeleted})
}
