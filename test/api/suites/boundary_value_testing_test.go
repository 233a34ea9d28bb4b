//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/storyspoiler/test/api"
)

var _ = Describe("Boundary Value Testing", func() {
	Context("When submitting partially filled drafts", func() {
		DescribeTable("Given a single required field is empty",
			func(draft api.StoryDraft) {
				_, err := client.CreateStory(ctx, draft)
				api.ExpectStatusError(err, http.StatusBadRequest)
			},
			Entry("with an empty title", api.NewStoryDraft().WithTitle("").Build()),
			Entry("with an empty description", api.NewStoryDraft().WithDescription("").Build()),
		)
	})

	Context("When submitting minimal drafts", func() {
		It("should accept single character fields and no URL", func() {
			created, _ := api.CreateStoryWithCleanup(client, ctx, api.NewStoryDraft().
				WithTitle("a").
				WithDescription("b").
				WithoutURL().
				Build())
			Expect(created.Msg).To(HaveValue(Equal(api.MsgCreated)))
		})

		It("should accept a long description", func() {
			created, _ := api.CreateStoryWithCleanup(client, ctx, api.NewStoryDraft().
				WithDescription(strings.Repeat("spoiler ", 128)).
				Build())
			Expect(created.Msg).To(HaveValue(Equal(api.MsgCreated)))
		})
	})

	Context("When editing an existing story", func() {
		It("should reject an edit that clears the required fields", func() {
			_, storyID := api.CreateStoryWithCleanup(client, ctx, api.NewStoryDraft().Build())

			_, err := client.EditStory(ctx, storyID, api.NewInvalidStoryDraft().Build())
			api.ExpectStatusError(err, http.StatusBadRequest)
		})
	})
})
