package api

import (
	"fmt"

	"github.com/google/uuid"

	"k8s.io/utils/ptr"
)

func generateRandomName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

func GenerateTestID() string {
	return generateRandomName("test")
}

// GenerateMissingStoryID returns a well formed story ID that cannot exist.
func GenerateMissingStoryID() string {
	return uuid.NewString()
}

// StoryDraftBuilder builds story payloads for testing.
type StoryDraftBuilder struct {
	draft StoryDraft
}

// NewStoryDraft creates a builder populated with the canonical create payload.
func NewStoryDraft() *StoryDraftBuilder {
	return &StoryDraftBuilder{
		draft: StoryDraft{
			Title:       "My New Story",
			Description: "Demo description",
			URL:         ptr.To(""),
		},
	}
}

// NewEditedStoryDraft creates a builder populated with the canonical edit payload.
func NewEditedStoryDraft() *StoryDraftBuilder {
	return NewStoryDraft().
		WithTitle("Edited Title").
		WithDescription("Edited Description")
}

// NewInvalidStoryDraft creates a payload missing every required field.
func NewInvalidStoryDraft() *StoryDraftBuilder {
	return NewStoryDraft().
		WithTitle("").
		WithDescription("").
		WithoutURL()
}

// WithTitle sets the story title.
func (b *StoryDraftBuilder) WithTitle(title string) *StoryDraftBuilder {
	b.draft.Title = title
	return b
}

// WithDescription sets the story description.
func (b *StoryDraftBuilder) WithDescription(desc string) *StoryDraftBuilder {
	b.draft.Description = desc
	return b
}

// WithURL sets the story URL, the empty string is sent as-is.
func (b *StoryDraftBuilder) WithURL(url string) *StoryDraftBuilder {
	b.draft.URL = ptr.To(url)
	return b
}

// WithoutURL sends the URL as null.
func (b *StoryDraftBuilder) WithoutURL() *StoryDraftBuilder {
	b.draft.URL = nil
	return b
}

// Build returns the completed story payload.
func (b *StoryDraftBuilder) Build() StoryDraft {
	return b.draft
}
