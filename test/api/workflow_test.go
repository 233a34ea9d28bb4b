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

package api_test

import (
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/storyspoiler/test/api"
	"github.com/unikorn-cloud/storyspoiler/test/api/twin"
)

// TestRunStoryLifecycle ensures the full workflow passes against the twin and leaves nothing behind.
func TestRunStoryLifecycle(t *testing.T) {
	t.Parallel()

	tw, client := newTwinSession(t)

	report, err := api.RunStoryLifecycle(t.Context(), client, api.NewStoryDraft().Build(), api.NewEditedStoryDraft().Build())
	require.NoError(t, err)
	require.NotEmpty(t, report.StoryID)
	require.Equal(t, 1, report.StoryCount)

	names := make([]string, len(report.Steps))
	for i, step := range report.Steps {
		names[i] = step.Name
	}

	require.Equal(t, []string{"create", "edit", "list", "delete", "repeat-delete"}, names)
	require.Equal(t, api.MsgCreated, report.Steps[0].Message)
	require.Equal(t, api.MsgDeleted, report.Steps[3].Message)
	require.Empty(t, tw.Store().List())
}

// TestRunStoryLifecycleCleanup ensures a story is deleted when a later step fails.
func TestRunStoryLifecycleCleanup(t *testing.T) {
	t.Parallel()

	tw := twin.New(twin.DefaultConfig())

	// Fail every edit so the workflow aborts after the create.
	server := newServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		tw.ServeHTTP(w, r)
	}))

	config := testConfig(server.URL)

	client, err := api.NewSession(t.Context(), config, newClient(t, config))
	require.NoError(t, err)

	client.SetLogWriter(io.Discard)

	report, err := api.RunStoryLifecycle(t.Context(), client, api.NewStoryDraft().Build(), api.NewEditedStoryDraft().Build())
	require.Error(t, err)
	require.Equal(t, http.StatusInternalServerError, api.StatusCode(err))
	require.NotEmpty(t, report.StoryID)
	require.Empty(t, tw.Store().List())
}

// TestRunStoryLifecycleRepeatDelete ensures a repeated delete that succeeds is reported.
func TestRunStoryLifecycleRepeatDelete(t *testing.T) {
	t.Parallel()

	tw := twin.New(twin.DefaultConfig())

	var deletes atomic.Int32

	// Answer the second delete as if it succeeded.
	server := newServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			if deletes.Add(1) > 1 {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"msg":"Deleted successfully!"}`))

				return
			}
		}

		tw.ServeHTTP(w, r)
	}))

	config := testConfig(server.URL)

	client, err := api.NewSession(t.Context(), config, newClient(t, config))
	require.NoError(t, err)

	client.SetLogWriter(io.Discard)

	_, err = api.RunStoryLifecycle(t.Context(), client, api.NewStoryDraft().Build(), api.NewEditedStoryDraft().Build())
	require.ErrorContains(t, err, "repeated delete")
}
