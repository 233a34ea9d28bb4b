//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/storyspoiler/test/api"

	"k8s.io/utils/ptr"
)

const concurrentCreates = 5

var _ = Describe("Concurrency and Performance", func() {
	Context("When several stories are created at once", func() {
		It("should hand out a distinct ID to each story", func() {
			var (
				wg       sync.WaitGroup
				mu       sync.Mutex
				storyIDs []string
				errs     []error
			)

			for range concurrentCreates {
				wg.Add(1)

				go func() {
					defer GinkgoRecover()
					defer wg.Done()

					created, err := client.CreateStory(ctx, api.NewStoryDraft().
						WithTitle(api.GenerateTestID()).
						Build())

					mu.Lock()
					defer mu.Unlock()

					if err != nil {
						errs = append(errs, err)
						return
					}

					storyIDs = append(storyIDs, ptr.Deref(created.StoryID, ""))
				}()
			}

			wg.Wait()

			DeferCleanup(func() {
				for _, storyID := range storyIDs {
					if storyID == "" {
						continue
					}

					if _, err := client.DeleteStory(ctx, storyID); err != nil {
						GinkgoWriter.Printf("Warning: Failed to delete story %s: %v\n", storyID, err)
					}
				}
			})

			Expect(errs).To(BeEmpty())
			Expect(storyIDs).To(HaveLen(concurrentCreates))
			Expect(storyIDs).NotTo(ContainElement(BeEmpty()))
			api.VerifyDistinctStoryIDs(storyIDs)
		})
	})
})
