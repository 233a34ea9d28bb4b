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

// Package twin is an in-memory stand-in for the Story Spoiler service.
// It implements just enough of the user and story endpoints, with the same
// status codes and messages, for the suites to run without a deployment.
package twin

import (
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultUsername = "storyspoiler"
	DefaultPassword = "storyspoiler"

	issuer = "storyspoiler-twin"
)

// Config configures the twin.
type Config struct {
	// Username and Password are the only credentials accepted by login.
	Username string
	Password string
	// SigningKey signs issued tokens, a random key is used when empty.
	SigningKey []byte
	TokenTTL   time.Duration
}

// DefaultConfig returns a config accepting the default credentials.
func DefaultConfig() *Config {
	return &Config{
		Username: DefaultUsername,
		Password: DefaultPassword,
		TokenTTL: time.Hour,
	}
}

// Twin serves the story API from a MemoryStore.
type Twin struct {
	config   *Config
	store    *MemoryStore
	validate *validator.Validate
	router   *chi.Mux
}

// New creates a twin with an empty store.
func New(config *Config) *Twin {
	if len(config.SigningKey) == 0 {
		config.SigningKey = make([]byte, 32)
		_, _ = rand.Read(config.SigningKey)
	}

	t := &Twin{
		config:   config,
		store:    NewMemoryStore(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		router:   chi.NewRouter(),
	}

	t.router.Use(middleware.RequestID)
	t.router.Use(middleware.Recoverer)

	t.router.Post("/api/User/Authentication", t.authenticate)

	t.router.Group(func(r chi.Router) {
		r.Use(t.requireBearer)
		r.Post("/api/Story/Create", t.createStory)
		r.Put("/api/Story/Edit/{storyId}", t.editStory)
		r.Get("/api/Story/All", t.listStories)
		r.Delete("/api/Story/Delete/{storyId}", t.deleteStory)
	})

	return t
}

// NewServer starts a twin on a loopback listener. Callers must Close it.
func NewServer(config *Config) (*Twin, *httptest.Server) {
	t := New(config)

	return t, httptest.NewServer(t)
}

// Store exposes the twin state for assertions.
func (t *Twin) Store() *MemoryStore {
	return t.store
}

func (t *Twin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t.router.ServeHTTP(w, r)
}
