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
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/uem-inventory/pkg/dashboard"
	"github.com/carverauto/uem-inventory/pkg/inventory"
	"github.com/carverauto/uem-inventory/pkg/logger"
	"github.com/carverauto/uem-inventory/pkg/models"
)

// drain executes cmd and any batched children, collecting the messages that
// arrive promptly. Timer-driven commands such as cursor blinks are skipped.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	ch := make(chan tea.Msg, 1)

	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, drain(c)...)
			}

			return out
		}

		return []tea.Msg{msg}
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

// press sends key to m and feeds every resulting outcome back into it.
func press(t *testing.T, m *model, key tea.KeyMsg) []tea.Msg {
	t.Helper()

	_, cmd := m.Update(key)
	msgs := drain(cmd)

	for _, msg := range msgs {
		if out, ok := msg.(outcomeMsg); ok {
			m.Update(out)
		}
	}

	return msgs
}

func newTestModel(t *testing.T, copyFn func(string) error) (*model, *inventory.MockService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := inventory.NewMockService(ctrl)
	view := dashboard.NewViewModel(svc)

	return newDashboardModel(context.Background(), view, logger.NewTestLogger(), copyFn), svc
}

func TestDashboardModelStartsWithDefaults(t *testing.T) {
	m, _ := newTestModel(t, nil)

	assert.Equal(t, "Windows", m.inputs[fieldOSName].Value())
	assert.Equal(t, "11", m.inputs[fieldOSVersion].Value())
	assert.Equal(t, "x86_64", m.inputs[fieldCPU].Value())
	assert.Equal(t, "8192", m.inputs[fieldRAM].Value())
	assert.Empty(t, m.rowKeys)

	view := m.View()
	assert.Contains(t, view, "No endpoints loaded.")
	assert.Contains(t, view, labelSubmit)
}

func TestDashboardSubmitRegistersThenLoads(t *testing.T) {
	m, svc := newTestModel(t, nil)

	m.inputs[fieldToken].SetValue("tkn")
	m.inputs[fieldHostname].SetValue("ws-01")

	gomock.InOrder(
		svc.EXPECT().
			Register(gomock.Any(), models.RegistrationRequest{
				Hostname: "ws-01", OSName: "Windows", OSVersion: "11", CPU: "x86_64", RAMMB: 8192,
			}, "tkn").
			Return(&models.RegistrationResponse{DeviceID: "dev-123"}, nil),
		svc.EXPECT().List(gomock.Any(), "tkn", models.DeviceFilter{}).
			Return([]models.ManagedDevice{{ID: "dev-123", Hostname: "ws-01", OSName: "Windows", OSVersion: "11", RAMMB: 8192}}, nil),
	)

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 0, m.pending)
	assert.Equal(t, []string{"dev-123"}, m.rowKeys)
	assert.Equal(t, "Endpoint registered successfully. Device ID: dev-123", m.view.Message())

	view := m.View()
	assert.Contains(t, view, "Device ID: dev-123")
	assert.Contains(t, view, "ws-01")
	assert.NotContains(t, view, "No endpoints loaded.")
}

func TestDashboardLoadFailureShowsFixedMessage(t *testing.T) {
	m, svc := newTestModel(t, nil)
	m.inputs[fieldToken].SetValue("bad")

	svc.EXPECT().List(gomock.Any(), "bad", gomock.Any()).
		Return(nil, &inventory.Error{Op: inventory.OpList, Kind: inventory.KindTransport, Err: errors.New("no route to host")})

	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	view := m.View()
	assert.Contains(t, view, "Could not load endpoints. Check the JWT token.")
	assert.NotContains(t, view, "no route to host")
	assert.Contains(t, view, "No endpoints loaded.")
}

func TestDashboardDeleteAndCopySelected(t *testing.T) {
	var copied string

	m, svc := newTestModel(t, func(s string) error {
		copied = s

		return nil
	})
	m.inputs[fieldToken].SetValue("tkn")

	devices := []models.ManagedDevice{{ID: "dev-1", Hostname: "ws-01"}, {ID: "dev-2", Hostname: "ws-02"}}

	svc.EXPECT().List(gomock.Any(), "tkn", gomock.Any()).Return(devices, nil)
	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.Equal(t, []string{"dev-1", "dev-2"}, m.rowKeys)

	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "dev-1", copied)
	assert.Equal(t, "Device ID copied to clipboard!", m.copyMessage)

	gomock.InOrder(
		svc.EXPECT().Delete(gomock.Any(), "dev-1", "tkn").Return(nil),
		svc.EXPECT().List(gomock.Any(), "tkn", gomock.Any()).Return(devices[1:], nil),
	)

	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})

	assert.Equal(t, []string{"dev-2"}, m.rowKeys)
	assert.Contains(t, m.View(), "Endpoint removed: dev-1")
}

func TestDashboardDeleteWithoutRowsIsNoop(t *testing.T) {
	m, _ := newTestModel(t, nil)

	msgs := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Empty(t, msgs)
	assert.Equal(t, 0, m.pending)
}

func TestDashboardCopyWithoutClipboard(t *testing.T) {
	m, svc := newTestModel(t, nil)
	m.inputs[fieldToken].SetValue("tkn")

	svc.EXPECT().List(gomock.Any(), "tkn", gomock.Any()).Return([]models.ManagedDevice{{ID: "dev-9"}}, nil)
	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "Clipboard unavailable. Device ID: dev-9", m.copyMessage)
}

func TestDashboardFocusCycle(t *testing.T) {
	m, _ := newTestModel(t, nil)

	for i := 1; i < fieldCount; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, i, m.focused)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusTable, m.focused)
	assert.True(t, m.table.Focused())

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldToken, m.focused)

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, focusTable, m.focused)
}

func TestDashboardQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	for _, key := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestDashboardButtonLabelWhileRegistering(t *testing.T) {
	m, svc := newTestModel(t, nil)
	m.inputs[fieldToken].SetValue("tkn")
	m.inputs[fieldHostname].SetValue("ws-01")

	entered := make(chan struct{})
	release := make(chan struct{})

	svc.EXPECT().Register(gomock.Any(), gomock.Any(), "tkn").
		DoAndReturn(func(context.Context, models.RegistrationRequest, string) (*models.RegistrationResponse, error) {
			close(entered)
			<-release

			return nil, errors.New("unreachable")
		})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	done := make(chan []tea.Msg)

	go func() { done <- drainUntilOutcome(cmd) }()

	<-entered
	assert.True(t, strings.Contains(m.renderButton(), labelSubmitting))

	_, again := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, again, "submit is disabled while registering")

	close(release)

	for _, msg := range <-done {
		if out, ok := msg.(outcomeMsg); ok {
			m.Update(out)
		}
	}

	assert.Contains(t, m.renderButton(), labelSubmit)
	assert.Contains(t, m.View(), "Failed to register endpoint in the inventory. Check the token and connectivity.")
}

// drainUntilOutcome is drain without a deadline on the operation itself.
func drainUntilOutcome(cmd tea.Cmd) []tea.Msg {
	msg := cmd()

	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}

	var out []tea.Msg

	for _, c := range batch {
		if c == nil {
			continue
		}

		out = append(out, c())
	}

	return out
}
