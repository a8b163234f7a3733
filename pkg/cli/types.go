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

package cli

import "strings"

// CmdConfig holds parsed command-line configuration.
type CmdConfig struct {
	Help   bool
	SubCmd string
	Args   []string

	APIURL       string
	Token        string
	OutputFormat string

	Hostname          string
	OSName            string
	OSVersion         string
	CPU               string
	RAMMB             int
	SerialNumber      string
	BIOSVersion       string
	InstalledSoftware []string

	FilterOSName   string
	FilterHostname string
	Limit          int

	DeviceID string
}

// stringSliceFlag collects repeatable or comma separated flag values.
type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			*s = append(*s, trimmed)
		}
	}

	return nil
}

// Interactive reports whether the parsed command launches the dashboard.
func (c *CmdConfig) Interactive() bool {
	return c.SubCmd == subCmdDashboard || c.SubCmd == ""
}
