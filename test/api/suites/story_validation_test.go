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

	"github.com/unikorn-cloud/storyspoiler/test/api"
)

var _ = Describe("Story Validation", func() {
	Context("When creating a story", func() {
		DescribeTable("Given required fields are missing",
			func(draft api.StoryDraft) {
				_, err := client.CreateStory(ctx, draft)
				api.ExpectStatusError(err, http.StatusBadRequest)
			},
			Entry("without a URL", api.NewInvalidStoryDraft().Build()),
			Entry("with an empty URL", api.NewInvalidStoryDraft().WithURL("").Build()),
			Entry("with a URL", api.NewInvalidStoryDraft().WithURL("https://example.com").Build()),
		)
	})

	Context("When editing a story", func() {
		Describe("Given the story does not exist", func() {
			It("should reject the edit", func() {
				_, err := client.EditStory(ctx, api.GenerateMissingStoryID(),
					api.NewStoryDraft().
						WithTitle("X").
						WithDescription("Y").
						Build())
				api.ExpectStatusError(err, http.StatusBadRequest)
			})
		})
	})

	Context("When deleting a story", func() {
		Describe("Given the story does not exist", func() {
			It("should reject the delete with an explanation", func() {
				_, err := client.DeleteStory(ctx, "123")
				api.ExpectErrorMessage(err, http.StatusBadRequest, api.MsgUnableToDelete)
			})
		})
	})
})
