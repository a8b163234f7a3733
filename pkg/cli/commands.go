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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/carverauto/uem-inventory/pkg/dashboard"
	"github.com/carverauto/uem-inventory/pkg/inventory"
	"github.com/carverauto/uem-inventory/pkg/logger"
	"github.com/carverauto/uem-inventory/pkg/models"
)

// Run dispatches the parsed subcommand.
func Run(ctx context.Context, cfg *CmdConfig, svc inventory.Service, log logger.Logger, w io.Writer) error {
	switch cfg.SubCmd {
	case subCmdRegister:
		return RunRegister(ctx, cfg, svc, w)
	case subCmdList:
		return RunList(ctx, cfg, svc, w, time.Now())
	case subCmdDelete:
		return RunDelete(ctx, cfg, svc, w)
	case subCmdDashboard, "":
		return RunDashboard(ctx, cfg, svc, log)
	default:
		return fmt.Errorf("%w: %q", errUnknownSubcommand, cfg.SubCmd)
	}
}

// RunRegister handles the register subcommand.
func RunRegister(ctx context.Context, cfg *CmdConfig, svc inventory.Service, w io.Writer) error {
	outputFormat, err := normalizeOutputFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}

	if err := requireToken(cfg); err != nil {
		return err
	}

	req := models.RegistrationRequest{
		Hostname:          cfg.Hostname,
		OSName:            cfg.OSName,
		OSVersion:         cfg.OSVersion,
		CPU:               cfg.CPU,
		RAMMB:             cfg.RAMMB,
		SerialNumber:      cfg.SerialNumber,
		BIOSVersion:       cfg.BIOSVersion,
		InstalledSoftware: cfg.InstalledSoftware,
	}

	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid registration: %w", err)
	}

	resp, err := svc.Register(ctx, req, cfg.Token)
	if err != nil {
		return err
	}

	if outputFormat == outputFormatJSON {
		return writeJSON(w, resp)
	}

	fmt.Fprintln(w, dashboard.RegisteredMessage(resp.DeviceID))

	if len(resp.ProhibitedSoftwareAlerts) > 0 {
		fmt.Fprintf(w, "Prohibited software detected: %s\n", strings.Join(resp.ProhibitedSoftwareAlerts, ", "))
	}

	return nil
}

// RunList handles the list subcommand.
func RunList(ctx context.Context, cfg *CmdConfig, svc inventory.Service, w io.Writer, now time.Time) error {
	outputFormat, err := normalizeOutputFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}

	if err := requireToken(cfg); err != nil {
		return err
	}

	devices, err := svc.List(ctx, cfg.Token, models.DeviceFilter{
		OSName:   cfg.FilterOSName,
		Hostname: cfg.FilterHostname,
		Limit:    cfg.Limit,
	})
	if err != nil {
		return err
	}

	if outputFormat == outputFormatJSON {
		return writeJSON(w, devices)
	}

	printDeviceTable(w, devices, now)

	return nil
}

// RunDelete handles the delete subcommand.
func RunDelete(ctx context.Context, cfg *CmdConfig, svc inventory.Service, w io.Writer) error {
	if cfg.DeviceID == "" {
		return errDeviceIDRequired
	}

	if err := requireToken(cfg); err != nil {
		return err
	}

	if err := svc.Delete(ctx, cfg.DeviceID, cfg.Token); err != nil {
		return err
	}

	fmt.Fprintln(w, dashboard.RemovedMessage(cfg.DeviceID))

	return nil
}

func printDeviceTable(w io.Writer, devices []models.ManagedDevice, now time.Time) {
	if len(devices) == 0 {
		fmt.Fprintln(w, "No endpoints found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tHOSTNAME\tOS\tCPU\tRAM\tANTIVIRUS\tENCRYPTION\tLAST SEEN")

	for _, d := range devices {
		fmt.Fprintf(
			tw,
			"%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID,
			d.Hostname,
			strings.TrimSpace(d.OSName+" "+d.OSVersion),
			d.CPU,
			dashboard.FormatRAM(d.RAMMB),
			orDash(d.AntivirusStatus),
			orDash(d.EncryptionStatus),
			dashboard.FormatLastSeen(d.LastSeen, now),
		)
	}

	_ = tw.Flush()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}

	return s
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}
