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

// Package config resolves uemctl settings from the environment.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/carverauto/uem-inventory/pkg/logger"
)

const (
	// EnvPrefix is prepended to every json tag to form the variable name.
	EnvPrefix = "UEM_"
	// DefaultAPIBaseURL is used when UEM_API_BASE_URL is unset.
	DefaultAPIBaseURL = "http://localhost:8080"
)

// Config is the resolved console configuration.
type Config struct {
	APIBaseURL string         `json:"api_base_url"`
	Logging    *logger.Config `json:"-"`
}

// Load resolves the configuration once: UEM_API_BASE_URL with a local
// fallback, and logging from the standard LOG_* / OTEL_* variables.
func Load(ctx context.Context, log logger.Logger) (*Config, error) {
	cfg := &Config{}

	if err := NewEnvConfigLoader(log, EnvPrefix).Load(ctx, cfg); err != nil {
		return nil, fmt.Errorf("load environment config: %w", err)
	}

	cfg.APIBaseURL = NormalizeBaseURL(cfg.APIBaseURL)
	cfg.Logging = logger.DefaultConfig()

	return cfg, nil
}

// NormalizeBaseURL applies the fallback, adds a scheme when missing and drops
// trailing slashes so paths can be appended directly.
func NormalizeBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return DefaultAPIBaseURL
	}

	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	return strings.TrimRight(base, "/")
}
