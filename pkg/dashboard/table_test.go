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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/uem-inventory/pkg/models"
)

func TestBuildTableRows(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 3, 0, 0, time.UTC)

	table := BuildTable([]models.ManagedDevice{
		{
			ID: "dev-1", Hostname: "ws-01", OSName: "Windows", OSVersion: "11", CPU: "x86_64", RAMMB: 8192,
			AntivirusStatus: "unknown", EncryptionStatus: "enabled", LastSeen: "2025-01-01T10:00:00.123456",
		},
		{ID: "dev-2", Hostname: "ws-02", OSName: "Linux", RAMMB: 512, LastSeen: "yesterday"},
	}, now)

	require.Len(t, table.Columns, 8)
	assert.Equal(t, "Hostname", table.Columns[0].Title)
	assert.Equal(t, "Actions", table.Columns[7].Title)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "dev-1", table.Rows[0].Key)
	assert.Equal(t, []string{
		"ws-01", "Windows 11", "x86_64", "8,192 MB", "unknown", "enabled", "2 minutes ago", "Remove",
	}, table.Rows[0].Cells)
	assert.Equal(t, 1, table.Rows[0].Span)

	assert.Equal(t, "Linux", table.Rows[1].Cells[1])
	assert.Equal(t, "512 MB", table.Rows[1].Cells[3])
	assert.Equal(t, "yesterday", table.Rows[1].Cells[6])
}

func TestBuildTablePlaceholder(t *testing.T) {
	for _, devices := range [][]models.ManagedDevice{nil, {}} {
		table := BuildTable(devices, time.Now())

		require.Len(t, table.Rows, 1)
		assert.True(t, table.Rows[0].Placeholder())
		assert.Equal(t, []string{EmptyPlaceholder}, table.Rows[0].Cells)
		assert.Equal(t, len(Columns()), table.Rows[0].Span)
	}
}

func TestFormatLastSeen(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "1 hour ago", FormatLastSeen("2025-01-01T11:00:00Z", now))
	assert.Equal(t, "3 minutes ago", FormatLastSeen("2025-01-01 11:57:00", now))
	assert.Equal(t, "-", FormatLastSeen("  ", now))
	assert.Equal(t, "not-a-time", FormatLastSeen("not-a-time", now))
}

func TestParseRAM(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "8192", want: 8192},
		{in: " 8192 ", want: 8192},
		{in: "0", want: 0},
		{in: "-4", want: -4},
		{in: "", wantErr: true},
		{in: "lots", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseRAM(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, models.ErrInvalidRAM, tt.in)
			continue
		}

		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
