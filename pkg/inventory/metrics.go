/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package inventory

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/carverauto/uem-inventory/pkg/logger"
)

const outcomeOK = "ok"

type clientMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newClientMetrics(meter metric.Meter, log logger.Logger) *clientMetrics {
	m := &clientMetrics{}

	requests, err := meter.Int64Counter(
		"uem.inventory.requests",
		metric.WithDescription("Inventory API calls by operation and outcome"),
	)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create inventory request counter")
	} else {
		m.requests = requests
	}

	duration, err := meter.Float64Histogram(
		"uem.inventory.request.duration",
		metric.WithDescription("Inventory API call latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create inventory latency histogram")
	} else {
		m.duration = duration
	}

	return m
}

func (m *clientMetrics) record(ctx context.Context, op Op, status int, err error, elapsed time.Duration) {
	outcome := outcomeOK
	if err != nil {
		outcome = string(KindOf(err))
	}

	attrs := metric.WithAttributes(
		attribute.String("op", string(op)),
		attribute.String("outcome", outcome),
		attribute.Int("status", status),
	)

	if m.requests != nil {
		m.requests.Add(ctx, 1, attrs)
	}

	if m.duration != nil {
		m.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
}
