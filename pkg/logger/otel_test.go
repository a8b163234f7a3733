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

package logger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDefaultOTelConfig(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TIMEOUT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-api-key = abc, broken")

	config := DefaultOTelConfig()

	if config.ServiceName != defaultServiceName {
		t.Errorf("Expected default service name %q, got %q", defaultServiceName, config.ServiceName)
	}

	if config.BatchTimeout != 5*time.Second {
		t.Errorf("Expected default BatchTimeout to be 5s, got %v", config.BatchTimeout)
	}

	if config.Headers["x-api-key"] != "abc" {
		t.Errorf("Expected parsed header, got %v", config.Headers)
	}

	if len(config.Headers) != 1 {
		t.Errorf("Malformed header pairs should be skipped, got %v", config.Headers)
	}
}

func TestNewOTELWriterRejectsIncompleteConfig(t *testing.T) {
	ctx := context.Background()

	if _, err := NewOTELWriter(ctx, OTelConfig{}); !errors.Is(err, ErrOTelLoggingDisabled) {
		t.Errorf("Expected ErrOTelLoggingDisabled, got %v", err)
	}

	if _, err := NewOTELWriter(ctx, OTelConfig{Enabled: true}); !errors.Is(err, ErrOTelEndpointRequired) {
		t.Errorf("Expected ErrOTelEndpointRequired, got %v", err)
	}
}

func TestInitializeMetricsDisabled(t *testing.T) {
	_, err := InitializeMetrics(context.Background(), MetricsConfig{OTel: &OTelConfig{Enabled: false}})
	if !errors.Is(err, ErrOTelMetricsDisabled) {
		t.Errorf("Expected ErrOTelMetricsDisabled, got %v", err)
	}
}

func TestMapZerologLevelToOTEL(t *testing.T) {
	tests := []struct {
		zerologLevel string
		expected     string
	}{
		{"trace", "TRACE"},
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"panic", "FATAL"},
		{"unknown", "INFO"},
	}

	for _, test := range tests {
		result := mapZerologLevelToOTEL(test.zerologLevel)
		if result.String() != test.expected {
			t.Errorf("mapZerologLevelToOTEL(%s) = %s, expected %s",
				test.zerologLevel, result.String(), test.expected)
		}
	}
}

func TestFormatAttributeValueTruncates(t *testing.T) {
	long := strings.Repeat("a", maxAttributeValueLength+10)

	got := formatAttributeValue(long)
	if len(got) != maxAttributeValueLength || !strings.HasSuffix(got, "...") {
		t.Errorf("Expected truncated value of %d bytes, got %d", maxAttributeValueLength, len(got))
	}

	if got := formatAttributeValue(map[string]interface{}{"ram_mb": 8192}); got != `{"ram_mb":8192}` {
		t.Errorf("Unexpected map formatting: %s", got)
	}
}

func TestDefaultOTelConfigReadsTimeout(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_TIMEOUT", "1m30s")

	if got := DefaultOTelConfig().BatchTimeout; got != 90*time.Second {
		t.Errorf("Expected BatchTimeout 1m30s, got %v", got)
	}

	t.Setenv("OTEL_EXPORTER_OTLP_TIMEOUT", "soon")

	if got := DefaultOTelConfig().BatchTimeout; got != 5*time.Second {
		t.Errorf("Expected fallback BatchTimeout 5s, got %v", got)
	}
}
