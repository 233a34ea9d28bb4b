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
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "storyspoiler"
	metricsSubsystem = "client"
)

// Metrics records every request the client makes, keyed by the logical
// operation rather than the raw path so story IDs don't explode cardinality.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates a metrics set on its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "requests_total",
			Help:      "Total number of requests made to the story service.",
		}, []string{"operation", "method", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Duration of requests made to the story service.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "method"}),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// observe records a completed request. A zero status means no response was received.
func (m *Metrics) observe(operation, method string, status int, duration time.Duration) {
	statusLabel := "error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}

	m.requests.WithLabelValues(operation, method, statusLabel).Inc()
	m.duration.WithLabelValues(operation, method).Observe(duration.Seconds())
}

// WriteSummary writes one line per operation, method and status with its request count.
func (m *Metrics) WriteSummary(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	name := prometheus.BuildFQName(metricsNamespace, metricsSubsystem, "requests_total")

	for _, family := range families {
		if family.GetName() != name {
			continue
		}

		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				labels = append(labels, label.GetName()+"="+label.GetValue())
			}

			if _, err := fmt.Fprintf(w, "%s count=%d\n", strings.Join(labels, " "), int64(metric.GetCounter().GetValue())); err != nil {
				return err
			}
		}
	}

	return nil
}
