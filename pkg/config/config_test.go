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

package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/uem-inventory/pkg/logger"
)

func TestLoadDefaultsBaseURL(t *testing.T) {
	t.Setenv("UEM_API_BASE_URL", "")

	cfg, err := Load(context.Background(), logger.NewTestLogger())
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.NotNil(t, cfg.Logging)
}

func TestLoadReadsBaseURLFromEnv(t *testing.T) {
	t.Setenv("UEM_API_BASE_URL", "https://inventory.example.com/")

	cfg, err := Load(context.Background(), logger.NewTestLogger())
	require.NoError(t, err)

	assert.Equal(t, "https://inventory.example.com", cfg.APIBaseURL)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := map[string]string{
		"":                        DefaultAPIBaseURL,
		"   ":                     DefaultAPIBaseURL,
		"inventory.local:8443":    "https://inventory.local:8443",
		"http://10.0.0.5:8080//":  "http://10.0.0.5:8080",
		"https://api.example.com": "https://api.example.com",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeBaseURL(in), "input %q", in)
	}
}

func TestEnvConfigLoaderKinds(t *testing.T) {
	type nested struct {
		Enabled bool `json:"enabled"`
	}

	type sample struct {
		Name     string        `json:"name"`
		Limit    int           `json:"limit"`
		Timeout  time.Duration `json:"timeout"`
		Tags     []string      `json:"tags"`
		Nested   nested        `json:"nested"`
		Skipped  string        `json:"-"`
		Untagged string
	}

	t.Setenv("TEST_NAME", "ws-01")
	t.Setenv("TEST_LIMIT", "not-a-number")
	t.Setenv("TEST_TIMEOUT", "3s")
	t.Setenv("TEST_TAGS", "a, b")
	t.Setenv("TEST_NESTED_ENABLED", "true")

	s := sample{Limit: 100, Skipped: "keep", Untagged: "keep"}
	require.NoError(t, NewEnvConfigLoader(logger.NewTestLogger(), "TEST_").Load(context.Background(), &s))

	assert.Equal(t, "ws-01", s.Name)
	assert.Equal(t, 100, s.Limit, "invalid values leave the default in place")
	assert.Equal(t, 3*time.Second, s.Timeout)
	assert.Equal(t, []string{"a", "b"}, s.Tags)
	assert.True(t, s.Nested.Enabled)
	assert.Equal(t, "keep", s.Skipped)
	assert.Equal(t, "keep", s.Untagged)
}

func TestEnvConfigLoaderRejectsNonPointer(t *testing.T) {
	loader := NewEnvConfigLoader(nil, "")

	require.ErrorIs(t, loader.Load(context.Background(), struct{}{}), ErrDstMustBeNonNilPointer)

	s := "x"
	require.ErrorIs(t, loader.Load(context.Background(), &s), ErrDstMustBePointerToStruct)
}
