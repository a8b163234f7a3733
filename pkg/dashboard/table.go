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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/carverauto/uem-inventory/pkg/models"
)

// EmptyPlaceholder fills the table when no devices are loaded.
const EmptyPlaceholder = "No endpoints loaded."

// ActionRemove is the per-row action label.
const ActionRemove = "Remove"

// Column describes one table column.
type Column struct {
	Title string
	Width int
}

// Row is one rendered table row. A placeholder row has no Key, a single cell
// and a Span covering every column.
type Row struct {
	Key   string
	Cells []string
	Span  int
}

// Placeholder reports whether r is the empty-list row.
func (r Row) Placeholder() bool {
	return r.Key == ""
}

// Table is the device list as displayed.
type Table struct {
	Columns []Column
	Rows    []Row
}

// Columns returns the fixed device table layout.
func Columns() []Column {
	return []Column{
		{Title: "Hostname", Width: 18},
		{Title: "OS", Width: 14},
		{Title: "CPU", Width: 10},
		{Title: "RAM", Width: 10},
		{Title: "Antivirus", Width: 11},
		{Title: "Encryption", Width: 11},
		{Title: "Last seen", Width: 16},
		{Title: "Actions", Width: 8},
	}
}

// BuildTable renders devices in the order given. An empty list yields exactly
// one placeholder row.
func BuildTable(devices []models.ManagedDevice, now time.Time) Table {
	columns := Columns()

	if len(devices) == 0 {
		return Table{
			Columns: columns,
			Rows:    []Row{{Cells: []string{EmptyPlaceholder}, Span: len(columns)}},
		}
	}

	rows := lo.Map(devices, func(d models.ManagedDevice, _ int) Row {
		return Row{
			Key: d.ID,
			Cells: []string{
				d.Hostname,
				strings.TrimSpace(d.OSName + " " + d.OSVersion),
				d.CPU,
				FormatRAM(d.RAMMB),
				d.AntivirusStatus,
				d.EncryptionStatus,
				FormatLastSeen(d.LastSeen, now),
				ActionRemove,
			},
			Span: 1,
		}
	})

	return Table{Columns: columns, Rows: rows}
}

// FormatRAM renders megabytes with thousands separators, e.g. "8,192 MB".
func FormatRAM(mb int) string {
	return humanize.Comma(int64(mb)) + " MB"
}

// lastSeenLayouts covers RFC 3339 and the zone-less ISO form the inventory
// emits; zone-less values are read as UTC.
var lastSeenLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// FormatLastSeen renders ts relative to now, or returns it unchanged when it
// cannot be parsed.
func FormatLastSeen(ts string, now time.Time) string {
	trimmed := strings.TrimSpace(ts)
	if trimmed == "" {
		return "-"
	}

	for _, layout := range lastSeenLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return humanize.RelTime(t, now, "ago", "from now")
		}
	}

	return ts
}

// ParseRAM reads a RAM form field. Blank or non-numeric input is rejected
// with models.ErrInvalidRAM; zero and negative numbers are accepted.
func ParseRAM(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidRAM, s)
	}

	return n, nil
}
