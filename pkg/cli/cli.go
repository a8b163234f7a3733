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

// Package cli implements the uemctl command line and its terminal dashboard.
package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/carverauto/uem-inventory/pkg/dashboard"
)

// Subcommand names.
const (
	subCmdRegister  = "register"
	subCmdList      = "list"
	subCmdDelete    = "delete"
	subCmdDashboard = "dashboard"
)

const (
	outputFormatText = "text"
	outputFormatJSON = "json"
)

// SubcommandHandler defines the interface for parsing subcommand flags.
type SubcommandHandler interface {
	Parse(args []string, cfg *CmdConfig) error
}

func newFlagSet(name string, cfg *CmdConfig) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.APIURL, "api-url", "", "inventory API base URL (overrides UEM_API_BASE_URL)")
	fs.StringVar(&cfg.Token, "token", "", "pre-issued JWT bearer token")

	return fs
}

// RegisterHandler handles flags for the register subcommand.
type RegisterHandler struct{}

// Parse processes the command-line arguments for the register subcommand.
func (RegisterHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subCmdRegister, cfg)
	hostname := fs.String("hostname", "", "device hostname (required)")
	osName := fs.String("os-name", dashboard.DefaultOSName, "operating system name")
	osVersion := fs.String("os-version", dashboard.DefaultOSVersion, "operating system version")
	cpu := fs.String("cpu", dashboard.DefaultCPU, "CPU architecture")
	ramMB := fs.Int("ram-mb", dashboard.DefaultRAMMB, "installed memory in MB")
	serial := fs.String("serial", "", "optional serial number")
	bios := fs.String("bios", "", "optional BIOS version")
	format := fs.String("format", outputFormatText, "output format: text or json")

	var software stringSliceFlag
	fs.Var(&software, "software", "installed software (repeatable or comma separated)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing register flags: %w", err)
	}

	cfg.Hostname = *hostname
	cfg.OSName = *osName
	cfg.OSVersion = *osVersion
	cfg.CPU = *cpu
	cfg.RAMMB = *ramMB
	cfg.SerialNumber = *serial
	cfg.BIOSVersion = *bios
	cfg.InstalledSoftware = append([]string(nil), software...)
	cfg.OutputFormat = strings.ToLower(strings.TrimSpace(*format))

	return nil
}

// ListHandler handles flags for the list subcommand.
type ListHandler struct{}

// Parse processes the command-line arguments for the list subcommand.
func (ListHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subCmdList, cfg)
	osName := fs.String("os-name", "", "filter by operating system name (substring)")
	hostname := fs.String("hostname", "", "filter by hostname (substring)")
	limit := fs.Int("limit", 0, "maximum number of devices to return (1-500, server default when unset)")
	format := fs.String("format", outputFormatText, "output format: text or json")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing list flags: %w", err)
	}

	cfg.FilterOSName = strings.TrimSpace(*osName)
	cfg.FilterHostname = strings.TrimSpace(*hostname)
	cfg.Limit = *limit
	cfg.OutputFormat = strings.ToLower(strings.TrimSpace(*format))

	return nil
}

// DeleteHandler handles flags for the delete subcommand.
type DeleteHandler struct{}

// Parse processes the command-line arguments for the delete subcommand.
func (DeleteHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subCmdDelete, cfg)
	id := fs.String("id", "", "device identifier (required)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing delete flags: %w", err)
	}

	cfg.DeviceID = strings.TrimSpace(*id)

	return nil
}

// DashboardHandler handles flags for the dashboard subcommand.
type DashboardHandler struct{}

// Parse processes the command-line arguments for the dashboard subcommand.
func (DashboardHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subCmdDashboard, cfg)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing dashboard flags: %w", err)
	}

	cfg.Args = fs.Args()

	return nil
}

func subcommands() map[string]SubcommandHandler {
	return map[string]SubcommandHandler{
		subCmdRegister:  RegisterHandler{},
		subCmdList:      ListHandler{},
		subCmdDelete:    DeleteHandler{},
		subCmdDashboard: DashboardHandler{},
	}
}

// ParseFlags parses args (without the program name). With no subcommand the
// dashboard is selected.
func ParseFlags(args []string) (*CmdConfig, error) {
	cfg := &CmdConfig{SubCmd: subCmdDashboard}

	if len(args) == 0 {
		return cfg, nil
	}

	switch args[0] {
	case "-h", "-help", "--help", "help":
		cfg.Help = true

		return cfg, nil
	}

	if strings.HasPrefix(args[0], "-") {
		return cfg, (DashboardHandler{}).Parse(args, cfg)
	}

	cfg.SubCmd = args[0]

	handler, ok := subcommands()[cfg.SubCmd]
	if !ok {
		return cfg, fmt.Errorf("%w: %q", errUnknownSubcommand, cfg.SubCmd)
	}

	if err := handler.Parse(args[1:], cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func normalizeOutputFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	if format == "" || format == outputFormatText {
		return outputFormatText, nil
	}

	if format == outputFormatJSON {
		return outputFormatJSON, nil
	}

	return "", errInvalidOutputFormat
}

func requireToken(cfg *CmdConfig) error {
	if cfg.Token == "" {
		return errTokenRequired
	}

	return nil
}
