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
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/unikorn-cloud/storyspoiler/test/api"

// tracing owns a private tracer provider so every request gets its own W3C
// trace ID. Nothing is exported; the IDs exist so a failing request can be
// found in the service logs.
type tracing struct {
	provider   *sdktrace.TracerProvider
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

func newTracing() *tracing {
	provider := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))

	return &tracing{
		provider:   provider,
		tracer:     provider.Tracer(tracerName),
		propagator: propagation.TraceContext{},
	}
}

// transport injects traceparent headers for the span active on the request context.
func (t *tracing) transport(base http.RoundTripper) http.RoundTripper {
	return otelhttp.NewTransport(base,
		otelhttp.WithTracerProvider(t.provider),
		otelhttp.WithPropagators(t.propagator),
	)
}

// start opens the root span for one API operation.
func (t *tracing) start(ctx context.Context, operation string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, operation, trace.WithSpanKind(trace.SpanKindClient))
}

// traceParent renders the traceparent value for the span in ctx, for logging.
func (t *tracing) traceParent(ctx context.Context) string {
	carrier := propagation.MapCarrier{}
	t.propagator.Inject(ctx, carrier)

	return carrier.Get("traceparent")
}

func (t *tracing) shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}
