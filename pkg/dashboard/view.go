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

// Package dashboard holds the presentation state of the inventory console:
// the registration form, the last result message, and the device list.
package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/carverauto/uem-inventory/pkg/inventory"
	"github.com/carverauto/uem-inventory/pkg/logger"
	"github.com/carverauto/uem-inventory/pkg/models"
)

// Messages shown in the result area. Failures never expose the underlying
// cause; it is kept in Outcome.Err and LastError instead.
const (
	MsgRegisterFailed  = "Failed to register endpoint in the inventory. Check the token and connectivity."
	MsgLoadFailed      = "Could not load endpoints. Check the JWT token."
	MsgDeleteFailed    = "Failed to remove endpoint."
	registeredTemplate = "Endpoint registered successfully. Device ID: %s"
	removedTemplate    = "Endpoint removed: %s"
)

// RegisteredMessage is the result text after a successful registration.
func RegisteredMessage(deviceID string) string {
	return fmt.Sprintf(registeredTemplate, deviceID)
}

// RemovedMessage is the result text after a successful deletion.
func RemovedMessage(deviceID string) string {
	return fmt.Sprintf(removedTemplate, deviceID)
}

// Outcome reports what an operation did to the view.
type Outcome struct {
	Op       inventory.Op
	Message  string
	DeviceID string
	Alerts   []string
	// Err is the real cause of a failure.
	Err error
	// Stale is set when a list result arrived after a newer one had been
	// applied and was therefore dropped.
	Stale bool
	// Refresh is the list reload that followed a successful mutation.
	Refresh *Outcome
}

// Failed reports whether the operation itself failed.
func (o *Outcome) Failed() bool {
	return o.Err != nil
}

// ViewModel drives an inventory.Service from form input. It is safe for
// concurrent use; each operation blocks until its round trips resolve.
type ViewModel struct {
	service inventory.Service
	logger  logger.Logger
	clock   func() time.Time

	mu      sync.Mutex
	form    Form
	loading bool
	message string
	devices []models.ManagedDevice
	lastErr error

	// listSeq is handed out at the start of every list call; appliedSeq is
	// the newest one whose result replaced devices.
	listSeq    uint64
	appliedSeq uint64
	// generation moves on every successful mutation so a refresh never
	// joins a list call that started before the change.
	generation uint64

	refresh singleflight.Group
}

// Option customises a ViewModel.
type Option func(*ViewModel)

// WithLogger sets the logger that records the real failure causes.
func WithLogger(log logger.Logger) Option {
	return func(v *ViewModel) {
		v.logger = log
	}
}

// WithClock overrides the time source used for relative timestamps.
func WithClock(clock func() time.Time) Option {
	return func(v *ViewModel) {
		v.clock = clock
	}
}

// WithForm sets the initial form values.
func WithForm(form Form) Option {
	return func(v *ViewModel) {
		v.form = form
	}
}

// NewViewModel returns an idle view with the default form and no devices.
func NewViewModel(service inventory.Service, opts ...Option) *ViewModel {
	v := &ViewModel{
		service: service,
		logger:  logger.NewTestLogger(),
		clock:   time.Now,
		form:    DefaultForm(),
		devices: []models.ManagedDevice{},
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// SubmitRegistration registers the device described by the form and, on
// success, reloads the device list.
func (v *ViewModel) SubmitRegistration(ctx context.Context) Outcome {
	v.mu.Lock()

	if v.loading {
		v.mu.Unlock()

		return Outcome{Op: inventory.OpRegister, Err: ErrSubmitInProgress}
	}

	v.loading = true
	v.message = ""
	form := v.form

	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.loading = false
		v.mu.Unlock()
	}()

	req, err := form.Request()
	if err != nil {
		return v.fail(inventory.OpRegister, MsgRegisterFailed, err)
	}

	resp, err := v.service.Register(ctx, req, form.Token)
	if err != nil {
		return v.fail(inventory.OpRegister, MsgRegisterFailed, err)
	}

	out := Outcome{
		Op:       inventory.OpRegister,
		Message:  RegisteredMessage(resp.DeviceID),
		DeviceID: resp.DeviceID,
		Alerts:   resp.ProhibitedSoftwareAlerts,
	}

	v.mu.Lock()
	v.generation++
	v.message = out.Message
	v.lastErr = nil
	v.mu.Unlock()

	v.logger.Info().
		Str("device_id", resp.DeviceID).
		Strs("alerts", resp.ProhibitedSoftwareAlerts).
		Msg("Endpoint registered")

	refresh := v.LoadDevices(ctx)
	out.Refresh = &refresh
	out.Message = v.Message()

	return out
}

// LoadDevices replaces the device list with the server's current one. On
// failure the list is left as it was.
//
// Concurrent refreshes share one list call. That call runs on a context that
// keeps ctx's values but not its cancellation, so one caller giving up does
// not fail the others; each caller stops waiting when its own ctx is done.
func (v *ViewModel) LoadDevices(ctx context.Context) Outcome {
	v.mu.Lock()
	v.listSeq++
	seq := v.listSeq
	token := v.form.Token
	key := strconv.FormatUint(v.generation, 10) + "/" + token
	v.mu.Unlock()

	shared := context.WithoutCancel(ctx)

	ch := v.refresh.DoChan(key, func() (interface{}, error) {
		return v.service.List(shared, token, models.DeviceFilter{})
	})

	var res singleflight.Result

	select {
	case res = <-ch:
	case <-ctx.Done():
		return v.fail(inventory.OpList, MsgLoadFailed, ctx.Err())
	}

	if res.Err != nil {
		return v.fail(inventory.OpList, MsgLoadFailed, res.Err)
	}

	devices, _ := res.Val.([]models.ManagedDevice)

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq < v.appliedSeq {
		v.logger.Debug().Uint64("seq", seq).Uint64("applied", v.appliedSeq).Msg("Dropping stale device list")

		return Outcome{Op: inventory.OpList, Message: v.message, Stale: true}
	}

	v.appliedSeq = seq
	v.devices = append(make([]models.ManagedDevice, 0, len(devices)), devices...)

	return Outcome{Op: inventory.OpList, Message: v.message}
}

// DeleteDevice removes the device and, on success, reloads the list.
func (v *ViewModel) DeleteDevice(ctx context.Context, deviceID string) Outcome {
	token := v.Form().Token

	if err := v.service.Delete(ctx, deviceID, token); err != nil {
		return v.fail(inventory.OpDelete, MsgDeleteFailed, err)
	}

	out := Outcome{Op: inventory.OpDelete, Message: RemovedMessage(deviceID), DeviceID: deviceID}

	v.mu.Lock()
	v.generation++
	v.message = out.Message
	v.lastErr = nil
	v.mu.Unlock()

	v.logger.Info().Str("device_id", deviceID).Msg("Endpoint removed")

	refresh := v.LoadDevices(ctx)
	out.Refresh = &refresh
	out.Message = v.Message()

	return out
}

func (v *ViewModel) fail(op inventory.Op, message string, err error) Outcome {
	v.mu.Lock()
	v.message = message
	v.lastErr = err
	v.mu.Unlock()

	v.logger.Warn().
		Err(err).
		Str("op", string(op)).
		Str("kind", string(inventory.KindOf(err))).
		Msg("Inventory operation failed")

	return Outcome{Op: op, Message: message, Err: err}
}

// Form returns a copy of the current form.
func (v *ViewModel) Form() Form {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.form
}

// SetForm replaces the form values.
func (v *ViewModel) SetForm(form Form) {
	v.mu.Lock()
	v.form = form
	v.mu.Unlock()
}

// UpdateForm applies fn to the form under the view lock.
func (v *ViewModel) UpdateForm(fn func(*Form)) {
	v.mu.Lock()
	fn(&v.form)
	v.mu.Unlock()
}

// Loading reports whether a registration is in flight.
func (v *ViewModel) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.loading
}

// Message is the current result text, empty when none is shown.
func (v *ViewModel) Message() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.message
}

// LastError is the cause of the most recent failure, nil after a success.
func (v *ViewModel) LastError() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.lastErr
}

// Devices returns a copy of the loaded device list.
func (v *ViewModel) Devices() []models.ManagedDevice {
	v.mu.Lock()
	defer v.mu.Unlock()

	return append([]models.ManagedDevice(nil), v.devices...)
}

// Table renders the loaded devices as table rows.
func (v *ViewModel) Table() Table {
	return BuildTable(v.Devices(), v.clock())
}
