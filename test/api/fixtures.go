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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spjmurray/go-util/pkg/set"
)

// CreateStoryWithCleanup creates a story, asserts the creation contract and
// schedules its deletion for when the spec or container finishes.
func CreateStoryWithCleanup(client *APIClient, ctx context.Context, draft StoryDraft) (*APIResponse, string) {
	created, err := client.CreateStory(ctx, draft)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	ExpectWithOffset(1, created.StoryID).To(HaveValue(Not(BeEmpty())))
	ExpectWithOffset(1, created.Msg).To(HaveValue(Equal(MsgCreated)))

	storyID := *created.StoryID

	GinkgoWriter.Printf("Created story with ID: %s\n", storyID)

	// Schedule cleanup - this runs whether the test passes or fails so we don't need to clean up manually
	DeferCleanup(func() {
		GinkgoWriter.Printf("Cleaning up story: %s\n", storyID)

		_, deleteErr := client.DeleteStory(ctx, storyID)

		switch {
		case deleteErr == nil:
			GinkgoWriter.Printf("Successfully deleted story: %s\n", storyID)
		case StatusCode(deleteErr) == http.StatusBadRequest:
			GinkgoWriter.Printf("Story %s was already deleted\n", storyID)
		default:
			GinkgoWriter.Printf("Warning: Failed to delete story %s: %v\n", storyID, deleteErr)
		}
	})

	return created, storyID
}

// ExpectStatusError asserts that err is, or wraps, a *StatusError with the given status.
func ExpectStatusError(err error, status int) *StatusError {
	var statusErr *StatusError

	ExpectWithOffset(1, errors.As(err, &statusErr)).To(BeTrue(), "expected a status error, got: %v", err)
	ExpectWithOffset(1, statusErr.StatusCode).To(Equal(status), "trace ID: %s", statusErr.TraceID)

	return statusErr
}

// ExpectErrorMessage asserts the status of err and the msg field of its body.
func ExpectErrorMessage(err error, status int, msg string) {
	statusErr := ExpectStatusError(err, status)

	response, decodeErr := statusErr.APIResponse()
	ExpectWithOffset(1, decodeErr).NotTo(HaveOccurred())
	ExpectWithOffset(1, response.Msg).To(HaveValue(Equal(msg)))
}

// VerifyDistinctStoryIDs verifies that no story ID was handed out twice.
func VerifyDistinctStoryIDs(storyIDs []string) {
	unique := 0

	for range set.New[string](storyIDs...).All() {
		unique++
	}

	ExpectWithOffset(1, unique).To(Equal(len(storyIDs)), "expected story IDs %v to be distinct", storyIDs)
}
