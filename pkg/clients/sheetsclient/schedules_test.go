package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleTabTitle(t *testing.T) {
	title, err := scheduleTabTitle("2024-01-01", "2024-01-07")
	require.NoError(t, err)
	assert.Equal(t, "Mon Jan 01 2024 - Sun Jan 07 2024", title)

	_, err = scheduleTabTitle("2024-13-01", "2024-01-07")
	assert.Error(t, err)
}

func TestBuildScheduleGrid(t *testing.T) {
	schedule := &PublishedSchedule{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-02",
		Staff:     []string{"Ada", "Grace"},
		Rows: []PublishedScheduleRow{
			{Date: "2024-01-01", Cells: []string{"Day Shift", "Night Shift"}},
			{Date: "2024-01-02", Cells: []string{"Evening Shift"}},
		},
	}

	grid, err := buildScheduleGrid(schedule)
	require.NoError(t, err)

	assert.Equal(t, [][]interface{}{
		{"Date", "Ada", "Grace"},
		{"Mon Jan 01 2024", "Day Shift", "Night Shift"},
		{"Tue Jan 02 2024", "Evening Shift", ""},
	}, grid)
}

func TestBuildScheduleGrid_InvalidDate(t *testing.T) {
	_, err := buildScheduleGrid(&PublishedSchedule{
		Staff: []string{"Ada"},
		Rows:  []PublishedScheduleRow{{Date: "01/02/2024"}},
	})
	assert.Error(t, err)
}
