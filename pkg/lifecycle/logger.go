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

// Package lifecycle wires process-wide logging and telemetry for uemctl.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/carverauto/uem-inventory/pkg/logger"
)

// InitializeLogger builds the process logger and starts the optional OTel
// trace and metric pipelines. If config is nil, it uses the default configuration.
// Pipeline failures are logged and tolerated; only a bad logger config is fatal.
func InitializeLogger(ctx context.Context, config *logger.Config, serviceVersion string) (logger.Logger, error) {
	if config == nil {
		config = logger.DefaultConfig()
	}

	log, err := logger.NewLogger(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	serviceName := config.OTel.ServiceName

	if _, err := logger.InitializeTracing(ctx, logger.TracingConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Logger:         log,
		OTel:           &config.OTel,
	}); err != nil {
		log.Warn().Err(err).Msg("Tracing unavailable")
	}

	if _, err := logger.InitializeMetrics(ctx, logger.MetricsConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		OTel:           &config.OTel,
	}); err != nil && !errors.Is(err, logger.ErrOTelMetricsDisabled) {
		log.Warn().Err(err).Msg("Metrics export unavailable")
	}

	return log, nil
}

// CreateComponentLogger derives a logger tagged with the component name.
func CreateComponentLogger(parent logger.Logger, component string) logger.Logger {
	return logger.New(parent.WithComponent(component))
}

// ShutdownLogger shuts down the logger, flushing any pending logs, spans and metrics.
func ShutdownLogger() error {
	return logger.Shutdown()
}
