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

import (
	"fmt"
	"io"
)

// ShowHelp prints usage for uemctl.
func ShowHelp(w io.Writer) {
	fmt.Fprint(w, `uemctl: register, list and remove endpoints in the UEM device inventory

Usage:
  uemctl [dashboard] [options]     launch the interactive dashboard (default)
  uemctl register [options]        register an endpoint
  uemctl list [options]            list managed endpoints
  uemctl delete -id <device-id>    remove an endpoint

Common options:
  -api-url string     inventory API base URL (default $UEM_API_BASE_URL or http://localhost:8080)
  -token string       pre-issued JWT bearer token

Options for register:
  -hostname string    device hostname (required)
  -os-name string     operating system name (default "Windows")
  -os-version string  operating system version (default "11")
  -cpu string         CPU architecture (default "x86_64")
  -ram-mb int         installed memory in MB (default 8192)
  -serial string      optional serial number
  -bios string        optional BIOS version
  -software list      installed software, repeatable or comma separated
  -format string      output format: text or json (default "text")

Options for list:
  -os-name string     filter by operating system name
  -hostname string    filter by hostname
  -limit int          maximum number of devices (1-500)
  -format string      output format: text or json (default "text")

Options for delete:
  -id string          device identifier (required)

Environment:
  UEM_API_BASE_URL    inventory API base URL
  LOG_LEVEL, DEBUG    logging verbosity
  LOG_OUTPUT          stdout, stderr, discard or file:<path> (default stderr)
  OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_LOGS_ENABLED, OTEL_SERVICE_NAME
                      optional OpenTelemetry export

Examples:
  # Launch the dashboard with a token prefilled
  uemctl dashboard -token "$JWT"

  # Register a workstation
  uemctl register -token "$JWT" -hostname ws-01

  # List Windows devices as JSON
  uemctl list -token "$JWT" -os-name Windows -format json

  # Remove a device
  uemctl delete -token "$JWT" -id dev-123
`)
}
