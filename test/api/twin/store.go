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
	"sync"
	"time"

	"github.com/google/uuid"
)

// Story is a stored story as returned by the listing endpoint.
type Story struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         *string   `json:"url"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MemoryStore holds all story twin state.
type MemoryStore struct {
	mu      sync.RWMutex
	stories map[string]*Story
	order   []string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stories: map[string]*Story{},
	}
}

// Create stores a new story under a fresh ID.
func (s *MemoryStore) Create(owner, title, description string, url *string) Story {
	s.mu.Lock()
	defer s.mu.Unlock()

	story := &Story{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		URL:         url,
		Owner:       owner,
		CreatedAt:   time.Now().UTC(),
	}

	s.stories[story.ID] = story
	s.order = append(s.order, story.ID)

	return *story
}

// Update replaces the mutable fields of a story, returning false if it does not exist.
func (s *MemoryStore) Update(id, title, description string, url *string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	story, ok := s.stories[id]
	if !ok {
		return false
	}

	story.Title = title
	story.Description = description
	story.URL = url

	return true
}

// Get returns a copy of a story.
func (s *MemoryStore) Get(id string) (Story, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	story, ok := s.stories[id]
	if !ok {
		return Story{}, false
	}

	return *story, true
}

// List returns all stories in creation order.
func (s *MemoryStore) List() []Story {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stories := make([]Story, 0, len(s.order))
	for _, id := range s.order {
		stories = append(stories, *s.stories[id])
	}

	return stories
}

// Delete removes a story, returning false if it does not exist.
func (s *MemoryStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stories[id]; !ok {
		return false
	}

	delete(s.stories, id)

	for i, storyID := range s.order {
		if storyID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return true
}
