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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/storyspoiler/test/api"
)

var _ = Describe("Story Lifecycle", func() {
	// Specs in this container share the created story and must run in order.
	// A failure does not stop later specs, they fail on the missing ID instead.
	Context("When managing a story step by step", Ordered, ContinueOnFailure, func() {
		var (
			storyID string
			deleted bool
		)

		AfterAll(func() {
			if storyID == "" || deleted {
				return
			}

			GinkgoWriter.Printf("Cleaning up story: %s\n", storyID)

			if _, err := client.DeleteStory(ctx, storyID); err != nil {
				GinkgoWriter.Printf("Warning: Failed to delete story %s: %v\n", storyID, err)
			}
		})

		It("should create the story and return its ID", func() {
			created, err := client.CreateStory(ctx, api.NewStoryDraft().Build())
			Expect(err).NotTo(HaveOccurred())
			Expect(created.StoryID).To(HaveValue(Not(BeEmpty())))
			Expect(created.Msg).To(HaveValue(Equal(api.MsgCreated)))

			storyID = *created.StoryID
		})

		It("should edit the created story", func() {
			Expect(storyID).NotTo(BeEmpty(), "no story was created")

			edited, err := client.EditStory(ctx, storyID, api.NewEditedStoryDraft().Build())
			Expect(err).NotTo(HaveOccurred())
			Expect(edited.Msg).To(HaveValue(Equal(api.MsgEdited)))
		})

		It("should list a non-empty set of stories", func() {
			stories, err := client.ListStories(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(stories).NotTo(BeEmpty())
		})

		It("should delete the created story", func() {
			Expect(storyID).NotTo(BeEmpty(), "no story was created")

			removed, err := client.DeleteStory(ctx, storyID)
			Expect(err).NotTo(HaveOccurred())
			Expect(removed.Msg).To(HaveValue(Equal(api.MsgDeleted)))

			deleted = true
		})

		It("should reject deleting the same story again", func() {
			Expect(storyID).NotTo(BeEmpty(), "no story was created")
			Expect(deleted).To(BeTrue(), "the story was never deleted")

			_, err := client.DeleteStory(ctx, storyID)
			api.ExpectStatusError(err, http.StatusBadRequest)
		})
	})

	Context("When running the lifecycle as one workflow", func() {
		Describe("Given a fresh story", func() {
			It("should create, edit, list and delete it", func() {
				report, err := api.RunStoryLifecycle(ctx, client,
					api.NewStoryDraft().
						WithTitle(api.GenerateTestID()).
						Build(),
					api.NewEditedStoryDraft().Build())
				Expect(err).NotTo(HaveOccurred())
				Expect(report.StoryID).NotTo(BeEmpty())
				Expect(report.StoryCount).To(BeNumerically(">", 0))
			})

			It("should accept an edit that sets a URL", func() {
				_, storyID := api.CreateStoryWithCleanup(client, ctx,
					api.NewStoryDraft().
						WithTitle(api.GenerateTestID()).
						Build())

				edited, err := client.EditStory(ctx, storyID,
					api.NewEditedStoryDraft().
						WithURL("https://example.com/spoiler.png").
						Build())
				Expect(err).NotTo(HaveOccurred())
				Expect(edited.Msg).To(HaveValue(Equal(api.MsgEdited)))
			})
		})

		Describe("Given several stories", func() {
			It("should hand out a distinct ID for every story", func() {
				storyIDs := make([]string, 3)

				for i := range storyIDs {
					_, storyIDs[i] = api.CreateStoryWithCleanup(client, ctx,
						api.NewStoryDraft().
							WithTitle(api.GenerateTestID()).
							Build())
				}

				api.VerifyDistinctStoryIDs(storyIDs)
			})
		})
	})
})
