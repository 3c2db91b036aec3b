package sheetsclient

import (
	"fmt"
	"time"

	"github.com/mfranco1/scrub-in/pkg/core/model"
)

const tabDateLayout = "Mon Jan 02 2006"

// PublishedScheduleRow is one date of the published grid
type PublishedScheduleRow struct {
	Date  string   // Format: "2006-01-02"
	Cells []string // One cell per column of PublishedSchedule.Staff
}

// PublishedSchedule is a date by staff grid of assignments
type PublishedSchedule struct {
	StartDate string // Format: "2006-01-02"
	EndDate   string
	Staff     []string // Column headings
	Rows      []PublishedScheduleRow
}

// PublishSchedule writes the grid to a tab titled by the date range, for example
// "Mon Jan 01 2024 - Sun Jan 07 2024". An existing tab with that title is cleared
// and rewritten. Returns the tab title.
func (c *Client) PublishSchedule(spreadsheetID string, schedule *PublishedSchedule) (string, error) {
	tabTitle, err := scheduleTabTitle(schedule.StartDate, schedule.EndDate)
	if err != nil {
		return "", fmt.Errorf("failed to generate tab title: %w", err)
	}

	exists, err := c.HasSheet(spreadsheetID, tabTitle)
	if err != nil {
		return "", err
	}

	if exists {
		if err := c.ClearValues(spreadsheetID, tabTitle); err != nil {
			return "", fmt.Errorf("failed to clear existing tab: %w", err)
		}
	} else {
		if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
			return "", fmt.Errorf("failed to create tab: %w", err)
		}
	}

	grid, err := buildScheduleGrid(schedule)
	if err != nil {
		return "", err
	}

	if err := c.UpdateValues(spreadsheetID, fmt.Sprintf("'%s'!A1", tabTitle), grid); err != nil {
		return "", fmt.Errorf("failed to write schedule: %w", err)
	}

	return tabTitle, nil
}

// scheduleTabTitle formats the date range as "Mon Jan 01 2024 - Sun Jan 07 2024"
func scheduleTabTitle(startDate, endDate string) (string, error) {
	start, err := model.ParseDate(startDate)
	if err != nil {
		return "", fmt.Errorf("invalid start date: %w", err)
	}
	end, err := model.ParseDate(endDate)
	if err != nil {
		return "", fmt.Errorf("invalid end date: %w", err)
	}

	return fmt.Sprintf("%s - %s", start.Format(tabDateLayout), end.Format(tabDateLayout)), nil
}

// buildScheduleGrid lays out a header row of staff names followed by one row per date
func buildScheduleGrid(schedule *PublishedSchedule) ([][]interface{}, error) {
	header := make([]interface{}, 0, len(schedule.Staff)+1)
	header = append(header, "Date")
	for _, name := range schedule.Staff {
		header = append(header, name)
	}

	grid := [][]interface{}{header}
	for _, row := range schedule.Rows {
		date, err := time.Parse(model.DateLayout, row.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid row date %q: %w", row.Date, err)
		}

		sheetRow := make([]interface{}, 0, len(schedule.Staff)+1)
		sheetRow = append(sheetRow, date.Format(tabDateLayout))
		for i := range schedule.Staff {
			cell := ""
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			sheetRow = append(sheetRow, cell)
		}
		grid = append(grid, sheetRow)
	}

	return grid, nil
}
