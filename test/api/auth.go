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
	"encoding/json"
	"fmt"
	"net/http"
)

//go:generate mockgen -source=auth.go -destination=mock/interfaces.go -package=mock

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// Login authenticates against the user service and returns the access token.
// The response is decoded generically, only accessToken is required.
func (c *APIClient) Login(ctx context.Context, username, password string) (string, error) {
	payload := map[string]string{
		"userName": username,
		"password": password,
	}

	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doJSON(ctx, "authenticate", http.MethodPost, c.endpoints.Authenticate(), payload, http.StatusOK)
	if err != nil {
		return "", fmt.Errorf("authenticating %s: %w", username, err)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(respBody, &body); err != nil {
		return "", fmt.Errorf("unmarshaling authentication response: %w", err)
	}

	token, ok := body["accessToken"].(string)
	if !ok || token == "" {
		return "", fmt.Errorf("authentication response for %s has no accessToken", username)
	}

	return token, nil
}

// Authenticate implements Authenticator.
func (c *APIClient) Authenticate(ctx context.Context, username, password string) (string, error) {
	return c.Login(ctx, username, password)
}

// NewSession builds the authenticated client shared by a test run. A
// pre-issued token in the config bypasses the login call.
func NewSession(ctx context.Context, config *TestConfig, authenticator Authenticator) (*APIClient, error) {
	token := config.AuthToken

	if token == "" {
		t, err := authenticator.Authenticate(ctx, config.Username, config.Password)
		if err != nil {
			return nil, fmt.Errorf("logging in: %w", err)
		}

		token = t
	}

	client, err := NewAPIClientWithConfig(config)
	if err != nil {
		return nil, err
	}

	client.SetAuthToken(token)

	return client, nil
}
