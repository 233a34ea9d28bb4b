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

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"k8s.io/utils/ptr"
)

var (
	// ErrUnexpectedMessage is returned when a response carries the wrong msg.
	ErrUnexpectedMessage = errors.New("unexpected response message")

	// ErrMissingStoryID is returned when a create response has no storyId.
	ErrMissingStoryID = errors.New("create response has no storyId")

	// ErrNoStories is returned when listing after a create returns nothing.
	ErrNoStories = errors.New("story list is empty")
)

// LifecycleStep records the outcome of one call in a lifecycle run.
type LifecycleStep struct {
	Name    string
	Message string
}

// LifecycleReport describes a completed, or partially completed, lifecycle run.
type LifecycleReport struct {
	StoryID    string
	StoryCount int
	Steps      []LifecycleStep
}

func (r *LifecycleReport) record(name string, response *APIResponse) {
	r.Steps = append(r.Steps, LifecycleStep{
		Name:    name,
		Message: ptr.Deref(response.Msg, ""),
	})
}

func expectMessage(response *APIResponse, expected string) error {
	if actual := ptr.Deref(response.Msg, ""); actual != expected {
		return fmt.Errorf("%w: expected %q, got %q", ErrUnexpectedMessage, expected, actual)
	}

	return nil
}

// RunStoryLifecycle creates a story, edits it, lists stories, deletes it and
// finally checks that a second delete is rejected. If anything fails after
// the story exists it is deleted before returning.
//
//nolint:cyclop,nonamedreturns // linear sequence, err is inspected by the cleanup
func RunStoryLifecycle(ctx context.Context, client *APIClient, draft, edit StoryDraft) (report *LifecycleReport, err error) {
	report = &LifecycleReport{}

	created, err := client.CreateStory(ctx, draft)
	if err != nil {
		return report, err
	}

	if err := expectMessage(created, MsgCreated); err != nil {
		return report, fmt.Errorf("creating story: %w", err)
	}

	storyID := ptr.Deref(created.StoryID, "")
	if storyID == "" {
		return report, ErrMissingStoryID
	}

	report.StoryID = storyID
	report.record("create", created)

	deleted := false

	defer func() {
		if err == nil || deleted {
			return
		}

		if _, cleanupErr := client.DeleteStory(context.WithoutCancel(ctx), storyID); cleanupErr != nil {
			err = errors.Join(err, fmt.Errorf("cleaning up story %s: %w", storyID, cleanupErr))
		}
	}()

	edited, err := client.EditStory(ctx, storyID, edit)
	if err != nil {
		return report, err
	}

	if err := expectMessage(edited, MsgEdited); err != nil {
		return report, fmt.Errorf("editing story %s: %w", storyID, err)
	}

	report.record("edit", edited)

	stories, err := client.ListStories(ctx)
	if err != nil {
		return report, err
	}

	if len(stories) == 0 {
		return report, ErrNoStories
	}

	report.StoryCount = len(stories)
	report.Steps = append(report.Steps, LifecycleStep{Name: "list"})

	removed, err := client.DeleteStory(ctx, storyID)
	if err != nil {
		return report, err
	}

	deleted = true

	if err := expectMessage(removed, MsgDeleted); err != nil {
		return report, fmt.Errorf("deleting story %s: %w", storyID, err)
	}

	report.record("delete", removed)

	_, repeatErr := client.DeleteStory(ctx, storyID)
	if repeatErr == nil {
		return report, fmt.Errorf("repeated delete of story %s: expected status %d, got %d", storyID, http.StatusBadRequest, http.StatusOK)
	}

	if code := StatusCode(repeatErr); code != http.StatusBadRequest {
		return report, fmt.Errorf("repeated delete of story %s: expected status %d, got %d: %w", storyID, http.StatusBadRequest, code, repeatErr)
	}

	report.Steps = append(report.Steps, LifecycleStep{Name: "repeat-delete"})

	return report, nil
}
