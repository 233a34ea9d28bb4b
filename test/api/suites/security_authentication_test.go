package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/storyspoiler/test/api"
)

var _ = Describe("Security and Authentication", func() {
	Context("When logging in", func() {
		Describe("Given invalid credentials", func() {
			It("should not issue a token", func() {
				token, err := newAnonymousClient().Login(ctx, config.Username, "not-"+config.Password)
				Expect(err).To(HaveOccurred())
				Expect(token).To(BeEmpty())
				Expect(api.StatusCode(err)).To(BeNumerically(">=", http.StatusBadRequest))
			})
		})
	})

	Context("When accessing stories with different authentication states", func() {
		Describe("Given no authentication", func() {
			It("should reject the request with 401 Unauthorized", func() {
				_, err := newAnonymousClient().ListStories(ctx)
				api.ExpectStatusError(err, http.StatusUnauthorized)
			})
		})

		Describe("Given an invalid token", func() {
			It("should reject the request with 401 Unauthorized", func() {
				anonymous := newAnonymousClient()
				anonymous.SetAuthToken("invalid-token")

				_, err := anonymous.CreateStory(ctx, api.NewStoryDraft().Build())
				api.ExpectStatusError(err, http.StatusUnauthorized)
			})
		})
	})
})
