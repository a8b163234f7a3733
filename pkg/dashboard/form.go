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

package dashboard

import (
	"strconv"

	"github.com/carverauto/uem-inventory/pkg/models"
)

const (
	DefaultOSName    = "Windows"
	DefaultOSVersion = "11"
	DefaultCPU       = "x86_64"
	DefaultRAMMB     = 8192
)

// Form is the registration form as the operator filled it in. Token is the
// pre-issued bearer credential used for every call the dashboard makes.
type Form struct {
	Token     string
	Hostname  string
	OSName    string
	OSVersion string
	CPU       string
	// RAM is the memory field as typed, in MB.
	RAM       string

	SerialNumber      string
	BIOSVersion       string
	InstalledSoftware []string
}

// DefaultForm returns the form with its initial values.
func DefaultForm() Form {
	return Form{
		OSName:    DefaultOSName,
		OSVersion: DefaultOSVersion,
		CPU:       DefaultCPU,
		RAM:       strconv.Itoa(DefaultRAMMB),
	}
}

// Request converts the form into a registration payload. Every field
// including the token must be non-empty and RAM must be a number; values are
// sent exactly as entered.
func (f *Form) Request() (models.RegistrationRequest, error) {
	if f.Token == "" {
		return models.RegistrationRequest{}, ErrMissingToken
	}

	ram, err := ParseRAM(f.RAM)
	if err != nil {
		return models.RegistrationRequest{}, err
	}

	req := models.RegistrationRequest{
		Hostname:          f.Hostname,
		OSName:            f.OSName,
		OSVersion:         f.OSVersion,
		CPU:               f.CPU,
		RAMMB:             ram,
		SerialNumber:      f.SerialNumber,
		BIOSVersion:       f.BIOSVersion,
		InstalledSoftware: f.InstalledSoftware,
	}

	if err := req.Validate(); err != nil {
		return models.RegistrationRequest{}, err
	}

	return req, nil
}
