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
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi/storyspoiler.yaml
var openAPISpec []byte

// ResponseValidator checks responses against the documented story API.
// Status codes the document does not describe are not checked.
type ResponseValidator struct {
	router routers.Router
}

// NewResponseValidator loads the embedded OpenAPI document.
func NewResponseValidator(ctx context.Context) (*ResponseValidator, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("loading story API schema: %w", err)
	}

	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building story API router: %w", err)
	}

	return &ResponseValidator{
		router: router,
	}, nil
}

// Validate checks a single response body and headers against the route matched by req.
func (v *ResponseValidator) Validate(ctx context.Context, req *http.Request, status int, header http.Header, body []byte) error {
	route, pathParams, err := v.router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("finding route for %s %s: %w", req.Method, req.URL.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
		},
		Status: status,
		Header: header,
	}

	input.SetBodyBytes(body)

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("response does not match the story API contract: %w", err)
	}

	return nil
}
