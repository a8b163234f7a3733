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

// Package inventory is the HTTP client for the device inventory API.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/carverauto/uem-inventory/pkg/config"
	"github.com/carverauto/uem-inventory/pkg/logger"
	"github.com/carverauto/uem-inventory/pkg/models"
	"github.com/carverauto/uem-inventory/pkg/version"
)

const (
	devicesPath = "/devices/v1/devices"

	instrumentationName = "github.com/carverauto/uem-inventory/pkg/inventory"

	// maxErrorBody bounds how much of a failed response is kept for the error.
	maxErrorBody = 8192
	// maxDrainBody bounds how much of an ignored success body is drained.
	maxDrainBody = 64 << 10

	headerRequestID = "X-Request-ID"
)

// Client talks to the inventory API. It holds no session or cache; the bearer
// token is supplied per call.
type Client struct {
	baseURL      string
	httpClient   HTTPClient
	logger       logger.Logger
	tracer       trace.Tracer
	metrics      *clientMetrics
	newRequestID func() string
	userAgent    string
}

var _ Service = (*Client)(nil)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default transport.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

// WithRequestIDFunc overrides the X-Request-ID generator.
func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) {
		c.newRequestID = fn
	}
}

// NewClient builds a client for baseURL. The base URL is normalised once; an
// empty value falls back to the local development address.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      config.NormalizeBaseURL(baseURL),
		httpClient:   &http.Client{},
		logger:       logger.NewTestLogger(),
		tracer:       otel.Tracer(instrumentationName),
		newRequestID: uuid.NewString,
		userAgent:    version.UserAgent(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.metrics = newClientMetrics(otel.Meter(instrumentationName), c.logger)

	return c
}

// BaseURL returns the normalised API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register creates a device and returns the server-assigned identifier.
func (c *Client) Register(
	ctx context.Context, req models.RegistrationRequest, token string) (*models.RegistrationResponse, error) {
	var out models.RegistrationResponse

	if err := c.do(ctx, OpRegister, http.MethodPost, c.baseURL+devicesPath, req, &out, token); err != nil {
		return nil, err
	}

	return &out, nil
}

// List returns the devices in the order the server sent them.
func (c *Client) List(ctx context.Context, token string, filter models.DeviceFilter) ([]models.ManagedDevice, error) {
	if err := filter.Validate(); err != nil {
		return nil, &Error{Op: OpList, Kind: KindRequest, Err: err}
	}

	endpoint := c.baseURL + devicesPath
	if encoded := filter.Query().Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var devices []models.ManagedDevice

	if err := c.do(ctx, OpList, http.MethodGet, endpoint, nil, &devices, token); err != nil {
		return nil, err
	}

	if devices == nil {
		devices = []models.ManagedDevice{}
	}

	return devices, nil
}

// Delete removes the device with the given id. The server decides what
// deleting an unknown id means; its status is passed through as an *Error.
func (c *Client) Delete(ctx context.Context, deviceID, token string) error {
	if strings.TrimSpace(deviceID) == "" {
		return &Error{Op: OpDelete, Kind: KindRequest, Err: errEmptyDeviceID}
	}

	endpoint := c.baseURL + devicesPath + "/" + url.PathEscape(deviceID)

	return c.do(ctx, OpDelete, http.MethodDelete, endpoint, nil, nil, token)
}

func (c *Client) do(ctx context.Context, op Op, method, endpoint string, body, out interface{}, token string) (err error) {
	requestID := c.newRequestID()

	ctx, span := c.tracer.Start(ctx, "inventory."+string(op),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("uem.request_id", requestID),
		))

	start := time.Now()
	status := 0

	defer func() {
		elapsed := time.Since(start)
		c.metrics.record(ctx, op, status, err, elapsed)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(KindOf(err)))
		}

		span.End()

		c.logger.Debug().
			Str("op", string(op)).
			Str("method", method).
			Str("request_id", requestID).
			Int("status", status).
			Dur("elapsed", elapsed).
			Err(err).
			Msg("Inventory API call finished")
	}()

	reader := io.Reader(http.NoBody)

	if body != nil {
		payload, mErr := json.Marshal(body)
		if mErr != nil {
			return &Error{Op: op, Kind: KindRequest, Message: "encode request", Err: mErr}
		}

		reader = bytes.NewReader(payload)
	}

	req, rErr := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if rErr != nil {
		return &Error{Op: op, Kind: KindRequest, Message: "create request", Err: rErr}
	}

	c.applyHeaders(ctx, req, token, requestID, body != nil)

	resp, dErr := c.httpClient.Do(req)
	if dErr != nil {
		return &Error{Op: op, Kind: KindTransport, Err: dErr}
	}
	defer func() { _ = resp.Body.Close() }()

	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		message := readErrorBody(resp.Body)
		if message == "" {
			message = resp.Status
		}

		return &Error{Op: op, Kind: kindForStatus(status), StatusCode: status, Message: message}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBody))

		return nil
	}

	if dErr := json.NewDecoder(resp.Body).Decode(out); dErr != nil {
		return &Error{Op: op, Kind: KindDecode, StatusCode: status, Err: dErr}
	}

	return nil
}

// applyHeaders is the single header-construction rule shared by every call.
// The token is opaque and sent exactly as supplied.
func (c *Client) applyHeaders(ctx context.Context, req *http.Request, token, requestID string, hasBody bool) {
	req.Header.Set("Accept", "application/json")

	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set("Authorization", "Bearer "+token)

	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("User-Agent", c.userAgent)

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

// readErrorBody extracts a short failure description, preferring the JSON
// "detail" field the inventory API uses for errors.
func readErrorBody(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}

	var payload struct {
		Detail interface{} `json:"detail"`
	}

	if json.Unmarshal(raw, &payload) == nil {
		switch detail := payload.Detail.(type) {
		case string:
			return strings.TrimSpace(detail)
		case nil:
		default:
			if encoded, mErr := json.Marshal(detail); mErr == nil {
				return string(encoded)
			}
		}
	}

	return strings.TrimSpace(string(raw))
}
