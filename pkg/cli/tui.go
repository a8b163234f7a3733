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
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/carverauto/uem-inventory/pkg/dashboard"
	"github.com/carverauto/uem-inventory/pkg/inventory"
	"github.com/carverauto/uem-inventory/pkg/logger"
)

// Form field positions; focusTable follows the last field.
const (
	fieldToken = iota
	fieldHostname
	fieldOSName
	fieldOSVersion
	fieldCPU
	fieldRAM
	fieldCount

	focusTable = fieldCount
)

const (
	inputWidth  = 40
	tableHeight = 10

	labelSubmit     = "Register endpoint"
	labelSubmitting = "Registering..."
)

var fieldLabels = [fieldCount]string{
	"JWT bearer token",
	"Hostname",
	"Operating system",
	"OS version",
	"CPU",
	"RAM (MB)",
}

// outcomeMsg carries a finished dashboard operation back to the program.
type outcomeMsg struct {
	outcome dashboard.Outcome
}

type model struct {
	ctx     context.Context
	view    *dashboard.ViewModel
	logger  logger.Logger
	inputs  []textinput.Model
	table   table.Model
	rowKeys []string
	spinner spinner.Model
	focused int
	pending int

	copyFn      func(string) error
	canCopy     bool
	copyMessage string

	styles styles
}

func newDashboardModel(ctx context.Context, view *dashboard.ViewModel, log logger.Logger, copyFn func(string) error) *model {
	form := view.Form()
	promptStyle, textStyle, placeholderStyle := inputStyles()

	values := [fieldCount]string{
		form.Token,
		form.Hostname,
		form.OSName,
		form.OSVersion,
		form.CPU,
		form.RAM,
	}

	inputs := make([]textinput.Model, fieldCount)

	for i := range inputs {
		in := textinput.New()
		in.Placeholder = fieldLabels[i]
		in.Width = inputWidth
		in.PromptStyle = promptStyle
		in.TextStyle = textStyle
		in.PlaceholderStyle = placeholderStyle
		in.SetValue(values[i])

		inputs[i] = in
	}

	inputs[fieldToken].EchoMode = textinput.EchoPassword
	inputs[fieldToken].EchoCharacter = '•'
	inputs[fieldRAM].CharLimit = 9
	inputs[fieldToken].Focus()

	columns := lo.Map(dashboard.Columns(), func(c dashboard.Column, _ int) table.Column {
		return table.Column{Title: c.Title, Width: c.Width}
	})

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(tableHeight),
		table.WithStyles(newTableStyles()),
	)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaPink))

	canCopy := copyFn != nil

	m := &model{
		ctx:     ctx,
		view:    view,
		logger:  log,
		inputs:  inputs,
		table:   t,
		spinner: sp,
		focused: fieldToken,
		copyFn:  copyFn,
		canCopy: canCopy,
		styles:  newStyles(),
	}

	m.refreshTable()

	return m
}

func (*model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case outcomeMsg:
		return m.handleOutcome(msg.outcome)
	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m *model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		return m, m.moveFocus(1)
	case "shift+tab":
		return m, m.moveFocus(-1)
	case "enter":
		if m.focused == focusTable {
			return m, nil
		}

		return m, m.submit()
	case "ctrl+l":
		return m, m.start(func(ctx context.Context) dashboard.Outcome {
			return m.view.LoadDevices(ctx)
		})
	case "ctrl+d":
		return m, m.deleteSelected()
	case "ctrl+y":
		m.copySelected()

		return m, nil
	}

	return m.updateFocused(msg)
}

func (m *model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.focused == focusTable {
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)

	return m, cmd
}

func (m *model) moveFocus(delta int) tea.Cmd {
	if m.focused == focusTable {
		m.table.Blur()
	} else {
		m.inputs[m.focused].Blur()
	}

	m.focused = (m.focused + delta + fieldCount + 1) % (fieldCount + 1)

	if m.focused == focusTable {
		m.table.Focus()

		return nil
	}

	return m.inputs[m.focused].Focus()
}

// syncForm copies the inputs into the view model's form.
func (m *model) syncForm() {
	m.view.UpdateForm(func(f *dashboard.Form) {
		f.Token = m.inputs[fieldToken].Value()
		f.Hostname = m.inputs[fieldHostname].Value()
		f.OSName = m.inputs[fieldOSName].Value()
		f.OSVersion = m.inputs[fieldOSVersion].Value()
		f.CPU = m.inputs[fieldCPU].Value()
		f.RAM = m.inputs[fieldRAM].Value()
	})
}

func (m *model) submit() tea.Cmd {
	if m.view.Loading() {
		return nil
	}

	return m.start(func(ctx context.Context) dashboard.Outcome {
		return m.view.SubmitRegistration(ctx)
	})
}

func (m *model) deleteSelected() tea.Cmd {
	id, ok := m.selectedID()
	if !ok {
		return nil
	}

	return m.start(func(ctx context.Context) dashboard.Outcome {
		return m.view.DeleteDevice(ctx, id)
	})
}

// start runs op off the UI loop. The form is synced first so the operation
// sees the token as currently typed.
func (m *model) start(op func(context.Context) dashboard.Outcome) tea.Cmd {
	m.syncForm()
	m.pending++
	m.copyMessage = ""

	ctx := m.ctx

	run := func() tea.Msg {
		return outcomeMsg{outcome: op(ctx)}
	}

	if m.pending == 1 {
		return tea.Batch(run, m.spinner.Tick)
	}

	return run
}

func (m *model) handleOutcome(out dashboard.Outcome) (tea.Model, tea.Cmd) {
	if m.pending > 0 {
		m.pending--
	}

	if out.Err != nil {
		m.logger.Debug().Err(out.Err).Str("op", string(out.Op)).Msg("Dashboard operation failed")
	}

	m.refreshTable()

	return m, nil
}

func (m *model) refreshTable() {
	rendered := m.view.Table()

	rows := make([]table.Row, 0, len(rendered.Rows))
	keys := make([]string, 0, len(rendered.Rows))

	for _, r := range rendered.Rows {
		if r.Placeholder() {
			continue
		}

		rows = append(rows, table.Row(r.Cells))
		keys = append(keys, r.Key)
	}

	m.table.SetRows(rows)
	m.rowKeys = keys

	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *model) selectedID() (string, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.rowKeys) {
		return "", false
	}

	return m.rowKeys[cursor], true
}

func (m *model) copySelected() {
	id, ok := m.selectedID()
	if !ok {
		return
	}

	if !m.canCopy {
		m.copyMessage = "Clipboard unavailable. Device ID: " + id

		return
	}

	if err := m.copyFn(id); err != nil {
		m.copyMessage = "Failed to copy to clipboard"

		return
	}

	m.copyMessage = "Device ID copied to clipboard!"
}

func (m *model) View() string {
	var content strings.Builder

	content.WriteString(m.styles.title.Render("UEM Inventory Dashboard") + "\n\n")
	content.WriteString(m.renderForm() + "\n\n")
	content.WriteString(m.renderTable() + "\n")

	if message := m.view.Message(); message != "" {
		style := m.styles.success
		if m.view.LastError() != nil {
			style = m.styles.error
		}

		content.WriteString("\n" + style.Render(message) + "\n")
	}

	if m.copyMessage != "" {
		style := m.styles.hint
		if strings.HasPrefix(m.copyMessage, "Failed") {
			style = m.styles.error
		}

		content.WriteString(style.Render(m.copyMessage) + "\n")
	}

	content.WriteString("\n" + m.styles.help.Render(
		"Tab/Shift+Tab → move | Enter → register | Ctrl+L → load | Ctrl+D → remove | Ctrl+Y → copy ID | Esc → quit"))

	return m.styles.app.Align(lipgloss.Left).Render(content.String())
}

func (m *model) renderForm() string {
	lines := make([]string, 0, fieldCount+1)

	for i := range m.inputs {
		label := m.styles.label
		if i == m.focused {
			label = m.styles.focusedLabel
		}

		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			label.Width(18).Render(fieldLabels[i]+":"),
			m.inputs[i].View(),
		))
	}

	lines = append(lines, "", m.renderButton())

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *model) renderButton() string {
	if m.view.Loading() {
		return m.spinner.View() + " " + m.styles.buttonBusy.Render(labelSubmitting)
	}

	button := m.styles.button.Render(labelSubmit)
	if m.pending > 0 {
		button = m.spinner.View() + " " + button
	}

	return button
}

// renderTable draws the device table, or its header plus a single row that
// spans every column when no devices are loaded.
func (m *model) renderTable() string {
	if len(m.rowKeys) > 0 {
		return m.table.View()
	}

	width := 0
	for _, c := range m.table.Columns() {
		width += c.Width + 2
	}

	header := newTableStyles().Header.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		lo.Map(m.table.Columns(), func(c table.Column, _ int) string {
			return lipgloss.NewStyle().Width(c.Width).MaxWidth(c.Width).Inline(true).Render(c.Title) + "  "
		})...))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.styles.placeholder.Width(width).Render(dashboard.EmptyPlaceholder))
}

// RunDashboard runs the terminal dashboard until the operator quits.
func RunDashboard(ctx context.Context, cfg *CmdConfig, svc inventory.Service, log logger.Logger) error {
	if !IsInputFromTerminal() {
		return errNotATerminal
	}

	form := dashboard.DefaultForm()
	form.Token = cfg.Token

	view := dashboard.NewViewModel(svc, dashboard.WithForm(form), dashboard.WithLogger(log))

	var copyFn func(string) error
	if err := clipboard.WriteAll(""); err == nil {
		copyFn = clipboard.WriteAll
	}

	p := tea.NewProgram(newDashboardModel(ctx, view, log, copyFn), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()

	return err
}
