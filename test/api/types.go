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
	"encoding/json"
	"fmt"
)

// Messages returned by the story service on success and on known failures.
const (
	MsgCreated        = "Successfully created!"
	MsgEdited         = "Successfully edited"
	MsgDeleted        = "Deleted successfully!"
	MsgUnableToDelete = "Unable to delete this story spoiler!"
)

// StoryDraft is the request payload for creating and editing a story.
// The service binds these fields by their Pascal case names.
type StoryDraft struct {
	Title       string  `json:"Title"`
	Description string  `json:"Description"`
	URL         *string `json:"Url"`
}

// APIResponse is the common envelope returned by the story endpoints.
// Both fields are optional as not every endpoint returns both.
type APIResponse struct {
	Msg     *string `json:"msg,omitempty"`
	StoryID *string `json:"storyId,omitempty"`
}

func decodeAPIResponse(body []byte) (*APIResponse, error) {
	var response APIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("unmarshaling story response: %w", err)
	}

	return &response, nil
}
