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

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type APIClient struct {
	baseURL   string
	client    *http.Client
	authToken string
	config    *TestConfig
	endpoints *Endpoints
	tracing   *tracing
	metrics   *Metrics
	validator *ResponseValidator
	out       io.Writer
}

// NewAPIClientWithConfig returns an unauthenticated client for config.BaseURL,
// unless config carries a pre-issued token.
func NewAPIClientWithConfig(config *TestConfig) (*APIClient, error) {
	var validator *ResponseValidator

	if config.ValidateResponses {
		v, err := NewResponseValidator(context.Background())
		if err != nil {
			return nil, err
		}

		validator = v
	}

	tracing := newTracing()

	return &APIClient{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		client: &http.Client{
			Timeout:   config.RequestTimeout,
			Transport: tracing.transport(http.DefaultTransport),
		},
		authToken: config.AuthToken,
		config:    config,
		endpoints: NewEndpoints(),
		tracing:   tracing,
		metrics:   NewMetrics(),
		validator: validator,
		out:       ginkgo.GinkgoWriter,
	}, nil
}

func (c *APIClient) SetAuthToken(token string) {
	c.authToken = token
}

// SetLogWriter redirects request logging, which goes to the Ginkgo writer by default.
func (c *APIClient) SetLogWriter(w io.Writer) {
	c.out = w
}

// Metrics returns the request metrics recorded by this client.
func (c *APIClient) Metrics() *Metrics {
	return c.metrics
}

// Close releases idle connections and flushes the tracer provider.
// The client must not be used afterwards.
func (c *APIClient) Close(ctx context.Context) error {
	c.client.CloseIdleConnections()

	if err := c.tracing.shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down tracer provider: %w", err)
	}

	return nil
}

// StatusError is returned when the service answers with a status other than the expected one.
type StatusError struct {
	Method     string
	Path       string
	Expected   int
	StatusCode int
	Body       []byte
	TraceID    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: expected %d, got %d, body: %s (trace ID: %s)", e.Expected, e.StatusCode, string(e.Body), e.TraceID)
}

// APIResponse decodes the error body as the common story envelope.
func (e *StatusError) APIResponse() (*APIResponse, error) {
	return decodeAPIResponse(e.Body)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not
// (and does not wrap) a *StatusError.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}

	return 0
}

func (c *APIClient) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	c.printf("[%s %s] ERROR %s duration=%s traceparent=%s error=%v\n", method, path, context, duration, traceParent, err)
	c.logTraceContext(traceParent)
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *APIClient) logUnexpectedStatus(method, path string, expectedStatus, actualStatus int, body, traceParent string) {
	c.printf("[%s %s] UNEXPECTED STATUS expected=%d got=%d body=%s traceparent=%s\n", method, path, expectedStatus, actualStatus, body, traceParent)
	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	c.printf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", extractTraceID(traceParent))
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// doJSON marshals payload, when not nil, as the request body.
func (c *APIClient) doJSON(ctx context.Context, operation, method, path string, payload any, expectedStatus int) (*http.Response, []byte, error) {
	if payload == nil {
		return c.doRequest(ctx, operation, method, path, nil, expectedStatus)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling %s body: %w", operation, err)
	}

	if c.config.DebugLogging {
		c.printf("[%s %s] request body: %s\n", method, path, string(body))
	}

	return c.doRequest(ctx, operation, method, path, bytes.NewReader(body), expectedStatus)
}

//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, operation, method, path string, body io.Reader, expectedStatus int) (*http.Response, []byte, error) {
	fullURL := c.baseURL + path

	ctx, span := c.tracing.start(ctx, operation)
	defer span.End()

	traceParent := c.tracing.traceParent(ctx)

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	// The traceparent header itself is injected by the transport.
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.metrics.observe(operation, method, 0, duration)
		span.RecordError(err)
		span.SetStatus(codes.Error, "http request failed")
		c.logError(method, path, duration, traceParent, err, "http request failed")

		return nil, nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	c.metrics.observe(operation, method, resp.StatusCode, duration)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(method, path, duration, traceParent, err, "reading response body")
		return resp, nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.LogRequests {
		c.printf("[%s %s] status=%d duration=%s traceparent=%s\n", method, path, resp.StatusCode, duration, traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		c.printf("[%s %s] response body: %s\n", method, path, string(respBody))
	}

	if c.validator != nil {
		if err := c.validator.Validate(ctx, req, resp.StatusCode, resp.Header, respBody); err != nil {
			span.SetStatus(codes.Error, "contract violation")
			c.logError(method, path, duration, traceParent, err, "validating response")

			return resp, respBody, err
		}
	}

	if expectedStatus > 0 && resp.StatusCode != expectedStatus {
		span.SetStatus(codes.Error, "unexpected status")
		c.logUnexpectedStatus(method, path, expectedStatus, resp.StatusCode, string(respBody), traceParent)

		return resp, respBody, &StatusError{
			Method:     method,
			Path:       path,
			Expected:   expectedStatus,
			StatusCode: resp.StatusCode,
			Body:       respBody,
			TraceID:    extractTraceID(traceParent),
		}
	}

	return resp, respBody, nil
}

// CreateStory creates a new story, the service answers 201 Created.
func (c *APIClient) CreateStory(ctx context.Context, draft StoryDraft) (*APIResponse, error) {
	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doJSON(ctx, "createStory", http.MethodPost, c.endpoints.CreateStory(), draft, http.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("creating story: %w", err)
	}

	return decodeAPIResponse(respBody)
}

// EditStory replaces the title, description and URL of an existing story.
func (c *APIClient) EditStory(ctx context.Context, storyID string, draft StoryDraft) (*APIResponse, error) {
	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doJSON(ctx, "editStory", http.MethodPut, c.endpoints.EditStory(storyID), draft, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("editing story %s: %w", storyID, err)
	}

	return decodeAPIResponse(respBody)
}

// ListStories returns every story visible to the caller as generic JSON.
// It is an error for the body to be anything other than an array.
func (c *APIClient) ListStories(ctx context.Context) ([]interface{}, error) {
	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doRequest(ctx, "listStories", http.MethodGet, c.endpoints.ListStories(), nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("listing stories: %w", err)
	}

	var decoded interface{}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshaling stories response: %w", err)
	}

	stories, ok := decoded.([]interface{})
	if !ok {
		return nil, fmt.Errorf("stories response is %T, not a JSON array", decoded)
	}

	return stories, nil
}

// DeleteStory deletes a story by ID.
func (c *APIClient) DeleteStory(ctx context.Context, storyID string) (*APIResponse, error) {
	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doRequest(ctx, "deleteStory", http.MethodDelete, c.endpoints.DeleteStory(storyID), nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("deleting story %s: %w", storyID, err)
	}

	return decodeAPIResponse(respBody)
}
