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

// Package api provides integration test utilities for the Story Spoiler API.
//
// # Separate Client Implementation
//
// The story service publishes no client library, and the suites would not
// use one if it did. APIClient is written against the documented contract
// (see openapi/storyspoiler.yaml) so that any change to the service's
// behaviour shows up as a failing assertion rather than being absorbed by a
// regenerated client.
//
// The client includes features tailored for integration testing:
//   - W3C trace context propagation for request correlation
//   - Detailed error logging with trace IDs for debugging
//   - Response validation against the embedded OpenAPI document
//   - Per-operation request metrics reported at the end of a run
//   - Direct access to HTTP status codes and response bodies via StatusError
//
// # Targets
//
// With API_BASE_URL unset the suites start the in-process story twin (see
// package twin) and run hermetically. Setting API_BASE_URL together with
// API_USERNAME and API_PASSWORD points them at a live deployment.
package api
