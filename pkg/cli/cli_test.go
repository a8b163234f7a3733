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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/uem-inventory/pkg/inventory"
	"github.com/carverauto/uem-inventory/pkg/models"
)

func TestParseFlagsDefaultsToDashboard(t *testing.T) {
	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, subCmdDashboard, cfg.SubCmd)

	cfg, err = ParseFlags([]string{"-token", "tkn"})
	require.NoError(t, err)
	assert.Equal(t, subCmdDashboard, cfg.SubCmd)
	assert.Equal(t, "tkn", cfg.Token)
}

func TestParseFlagsRegister(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"register", "-token", "tkn", "-hostname", "ws-01", "-api-url", "inventory.local:9000",
		"-software", "uTorrent,7zip", "-software", "AnyDesk", "-format", "JSON",
	})
	require.NoError(t, err)

	assert.Equal(t, subCmdRegister, cfg.SubCmd)
	assert.Equal(t, "ws-01", cfg.Hostname)
	assert.Equal(t, "Windows", cfg.OSName)
	assert.Equal(t, "11", cfg.OSVersion)
	assert.Equal(t, "x86_64", cfg.CPU)
	assert.Equal(t, 8192, cfg.RAMMB)
	assert.Equal(t, "inventory.local:9000", cfg.APIURL)
	assert.Equal(t, []string{"uTorrent", "7zip", "AnyDesk"}, cfg.InstalledSoftware)
	assert.Equal(t, outputFormatJSON, cfg.OutputFormat)
}

func TestParseFlagsListAndDelete(t *testing.T) {
	cfg, err := ParseFlags([]string{"list", "-token", "tkn", "-os-name", " Linux ", "-limit", "25"})
	require.NoError(t, err)
	assert.Equal(t, "Linux", cfg.FilterOSName)
	assert.Equal(t, 25, cfg.Limit)

	cfg, err = ParseFlags([]string{"delete", "-token", "tkn", "-id", "dev-1"})
	require.NoError(t, err)
	assert.Equal(t, "dev-1", cfg.DeviceID)
}

func TestParseFlagsErrors(t *testing.T) {
	_, err := ParseFlags([]string{"reboot"})
	require.ErrorIs(t, err, errUnknownSubcommand)

	_, err = ParseFlags([]string{"list", "-limit", "many"})
	require.Error(t, err)

	_, err = ParseFlags([]string{"delete", "-h"})
	require.ErrorIs(t, err, flag.ErrHelp)

	cfg, err := ParseFlags([]string{"help"})
	require.NoError(t, err)
	assert.True(t, cfg.Help)
}

func TestRunRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := inventory.NewMockService(ctrl)

	cfg := &CmdConfig{Token: "tkn", Hostname: "ws-01", OSName: "Windows", OSVersion: "11", CPU: "x86_64", RAMMB: 8192}

	svc.EXPECT().
		Register(gomock.Any(), models.RegistrationRequest{
			Hostname: "ws-01", OSName: "Windows", OSVersion: "11", CPU: "x86_64", RAMMB: 8192,
		}, "tkn").
		Return(&models.RegistrationResponse{DeviceID: "dev-123", ProhibitedSoftwareAlerts: []string{"AnyDesk"}}, nil)

	var out bytes.Buffer

	require.NoError(t, RunRegister(context.Background(), cfg, svc, &out))
	assert.Equal(t,
		"Endpoint registered successfully. Device ID: dev-123\nProhibited software detected: AnyDesk\n",
		out.String())
}

func TestRunRegisterSendsFlagsAsGiven(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := inventory.NewMockService(ctrl)

	cfg := &CmdConfig{Token: "tkn", Hostname: " ws-01 ", OSName: "Windows", OSVersion: " 11", CPU: "x86_64", RAMMB: 0}

	svc.EXPECT().
		Register(gomock.Any(), models.RegistrationRequest{
			Hostname: " ws-01 ", OSName: "Windows", OSVersion: " 11", CPU: "x86_64", RAMMB: 0,
		}, "tkn").
		Return(&models.RegistrationResponse{DeviceID: "dev-5"}, nil)

	var out bytes.Buffer

	require.NoError(t, RunRegister(context.Background(), cfg, svc, &out))
	assert.Equal(t, "Endpoint registered successfully. Device ID: dev-5\n", out.String())
}

func TestRunRegisterValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := inventory.NewMockService(ctrl)

	var out bytes.Buffer

	err := RunRegister(context.Background(), &CmdConfig{Hostname: "ws-01", RAMMB: 1}, svc, &out)
	require.ErrorIs(t, err, errTokenRequired)

	err = RunRegister(context.Background(), &CmdConfig{Token: "tkn", RAMMB: 1}, svc, &out)
	require.ErrorIs(t, err, models.ErrMissingHostname)

	err = RunRegister(context.Background(), &CmdConfig{Token: "tkn", OutputFormat: "yaml"}, svc, &out)
	require.ErrorIs(t, err, errInvalidOutputFormat)

	assert.Empty(t, out.String())
}

func TestRunListText(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := inventory.NewMockService(ctrl)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	svc.EXPECT().
		List(gomock.Any(), "tkn", models.DeviceFilter{OSName: "Windows", Limit: 10}).
		Return([]models.ManagedDevice{{
			ID: "dev-1", Hostname: "ws-01", OSName: "Windows", OSVersion: "11", CPU: "x86_64", RAMMB: 16384,
			AntivirusStatus: "ok", LastSeen: "2025-01-01T11:00:00",
		}}, nil)

	var out bytes.Buffer

	cfg := &CmdConfig{Token: "tkn", FilterOSName: "Windows", Limit: 10}
	require.NoError(t, RunList(context.Background(), cfg, svc, &out, now))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "dev-1")
	assert.Contains(t, lines[1], "Windows 11")
	assert.Contains(t, lines[1], "16,384 MB")
	assert.Contains(t, lines[1], "1 hour ago")
}

func TestRunListEmptyAndJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := inventory.NewMockService(ctrl)

	svc.EXPECT().List(gomock.Any(), "tkn", gomock.Any()).Return([]models.ManagedDevice{}, nil).Times(2)

	var text bytes.Buffer

	require.NoError(t, RunList(context.Background(), &CmdConfig{Token: "tkn"}, svc, &text, time.Now()))
	assert.Equal(t, "No endpoints found.\n", text.String())

	var encoded bytes.Buffer

	require.NoError(t, RunList(context.Background(), &CmdConfig{Token: "tkn", OutputFormat: "json"}, svc, &encoded, time.Now()))

	var decoded []models.ManagedDevice
	require.NoError(t, json.Unmarshal(encoded.Bytes(), &decoded))
	assert.Empty(t, decoded)
	assert.Equal(t, "[]", strings.TrimSpace(encoded.String()))
}

func TestRunListSurfacesRealError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := inventory.NewMockService(ctrl)

	cause := &inventory.Error{Op: inventory.OpList, Kind: inventory.KindUnauthorized, StatusCode: 401, Message: "Invalid token"}
	svc.EXPECT().List(gomock.Any(), "tkn", gomock.Any()).Return(nil, cause)

	var out bytes.Buffer

	err := RunList(context.Background(), &CmdConfig{Token: "tkn"}, svc, &out, time.Now())
	require.ErrorIs(t, err, inventory.ErrUnauthorized)
	assert.Contains(t, err.Error(), "Invalid token")
}

func TestRunDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := inventory.NewMockService(ctrl)

	svc.EXPECT().Delete(gomock.Any(), "dev-1", "tkn").Return(nil)
	svc.EXPECT().Delete(gomock.Any(), "dev-2", "tkn").Return(errors.New("boom"))

	var out bytes.Buffer

	require.NoError(t, RunDelete(context.Background(), &CmdConfig{Token: "tkn", DeviceID: "dev-1"}, svc, &out))
	assert.Equal(t, "Endpoint removed: dev-1\n", out.String())

	require.Error(t, RunDelete(context.Background(), &CmdConfig{Token: "tkn", DeviceID: "dev-2"}, svc, &out))
	require.ErrorIs(t, RunDelete(context.Background(), &CmdConfig{Token: "tkn"}, svc, &out), errDeviceIDRequired)
}

func TestRunUnknownSubcommand(t *testing.T) {
	err := Run(context.Background(), &CmdConfig{SubCmd: "reboot"}, nil, nil, &bytes.Buffer{})
	require.ErrorIs(t, err, errUnknownSubcommand)
}
