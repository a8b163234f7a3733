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

// Package models holds the wire types exchanged with the device inventory API.
package models

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// MaxListLimit is the largest page the inventory API accepts.
	MaxListLimit = 500
)

var (
	ErrMissingHostname  = errors.New("hostname is required")
	ErrMissingOSName    = errors.New("operating system name is required")
	ErrMissingOSVersion = errors.New("operating system version is required")
	ErrMissingCPU       = errors.New("cpu is required")
	ErrInvalidRAM       = errors.New("ram_mb must be a whole number")
	ErrInvalidLimit     = fmt.Errorf("limit must be between 1 and %d", MaxListLimit)
)

// RegistrationRequest is the body of a device creation call.
type RegistrationRequest struct {
	Hostname  string `json:"hostname"`
	OSName    string `json:"os_name"`
	OSVersion string `json:"os_version"`
	CPU       string `json:"cpu"`
	RAMMB     int    `json:"ram_mb"`

	// Optional inventory details; omitted from the payload when unset.
	SerialNumber      string   `json:"serial_number,omitempty"`
	BIOSVersion       string   `json:"bios_version,omitempty"`
	InstalledSoftware []string `json:"installed_software_json,omitempty"`
}

// Validate reports the first empty required field. Values are otherwise
// passed to the server as entered; range checks are the server's job.
func (r *RegistrationRequest) Validate() error {
	switch {
	case r.Hostname == "":
		return ErrMissingHostname
	case r.OSName == "":
		return ErrMissingOSName
	case r.OSVersion == "":
		return ErrMissingOSVersion
	case r.CPU == "":
		return ErrMissingCPU
	}

	return nil
}

// RegistrationResponse is returned by the inventory after a device is created.
type RegistrationResponse struct {
	DeviceID                 string   `json:"device_id"`
	ProhibitedSoftwareAlerts []string `json:"prohibited_software_alerts,omitempty"`
}

// ManagedDevice is a device record as reported by the inventory. Clients treat
// it as read-only; ID is the only identity key.
type ManagedDevice struct {
	ID               string `json:"id"`
	Hostname         string `json:"hostname"`
	OSName           string `json:"os"`
	OSVersion        string `json:"os_version"`
	CPU              string `json:"cpu"`
	RAMMB            int    `json:"ram_mb"`
	AntivirusStatus  string `json:"antivirus_status"`
	EncryptionStatus string `json:"encryption_status"`
	LastSeen         string `json:"last_seen"`

	SerialNumber             string   `json:"serial_number,omitempty"`
	BIOSVersion              string   `json:"bios_version,omitempty"`
	BitlockerStatus          string   `json:"bitlocker_status,omitempty"`
	USBControlStatus         string   `json:"usb_control_status,omitempty"`
	BrowserControlStatus     string   `json:"browser_control_status,omitempty"`
	InstalledSoftware        []string `json:"installed_software,omitempty"`
	ProhibitedSoftwareAlerts []string `json:"prohibited_software_alerts,omitempty"`
}

// DeviceFilter narrows a list call. The zero value requests the server default.
type DeviceFilter struct {
	OSName   string
	Hostname string
	Limit    int
}

// Validate checks the filter bounds.
func (f DeviceFilter) Validate() error {
	if f.Limit < 0 || f.Limit > MaxListLimit {
		return ErrInvalidLimit
	}

	return nil
}

// Query encodes the filter as URL query parameters.
func (f DeviceFilter) Query() url.Values {
	params := url.Values{}

	if trimmed := strings.TrimSpace(f.OSName); trimmed != "" {
		params.Set("os_name", trimmed)
	}

	if trimmed := strings.TrimSpace(f.Hostname); trimmed != "" {
		params.Set("hostname", trimmed)
	}

	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}

	return params
}
