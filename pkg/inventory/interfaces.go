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

package inventory

import (
	"context"
	"net/http"

	"github.com/carverauto/uem-inventory/pkg/models"
)

//go:generate mockgen -destination=mock_inventory.go -package=inventory github.com/carverauto/uem-inventory/pkg/inventory HTTPClient,Service

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Service is the inventory contract consumed by the dashboard and the CLI.
// Every call is a single authenticated round trip; failures are returned as *Error.
type Service interface {
	Register(ctx context.Context, req models.RegistrationRequest, token string) (*models.RegistrationResponse, error)
	List(ctx context.Context, token string, filter models.DeviceFilter) ([]models.ManagedDevice, error)
	Delete(ctx context.Context, deviceID, token string) error
}
