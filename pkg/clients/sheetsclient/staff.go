package sheetsclient

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mfranco1/scrub-in/pkg/core/model"
)

// Expected column names in the roster sheet
var staffFields = []string{
	"Staff ID",
	"Name",
	"Role",
	"Specialization",
	"Email",
	"Status",
}

// ListStaff retrieves and parses the roster from a spreadsheet tab
func (c *Client) ListStaff(spreadsheetID, tab string) ([]model.StaffMember, error) {
	values, err := c.GetValues(spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("roster sheet is empty")
	}

	staff, err := parseStaff(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	return staff, nil
}

// parseStaff converts raw roster rows into staff members.
// Rows without a name are skipped; a member is active when Status is "Active".
func parseStaff(raw [][]interface{}) ([]model.StaffMember, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	fieldIndexes := make(map[string]int)
	for _, field := range staffFields {
		index := findColumnIndex(raw[0], field)
		if index == -1 {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
		fieldIndexes[field] = index
	}

	getField := func(field string, row []interface{}) string {
		index := fieldIndexes[field]
		if index >= len(row) {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(row[index]))
	}

	staff := make([]model.StaffMember, 0, len(raw)-1)
	seen := make(map[int64]int)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		name := getField("Name", row)
		if name == "" {
			continue
		}

		id, err := strconv.ParseInt(getField("Staff ID", row), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid staff ID for %s in row %d", name, i+1)
		}
		if previous, ok := seen[id]; ok {
			return nil, fmt.Errorf("duplicate staff ID %d in rows %d and %d", id, previous, i+1)
		}
		seen[id] = i + 1

		staff = append(staff, model.StaffMember{
			ID:             id,
			Name:           name,
			Role:           getField("Role", row),
			Specialization: getField("Specialization", row),
			Email:          getField("Email", row),
			Active:         strings.EqualFold(getField("Status", row), "Active"),
		})
	}

	return staff, nil
}

// findColumnIndex finds the index of a column by its header name
func findColumnIndex(header []interface{}, columnName string) int {
	for i, cell := range header {
		if str, ok := cell.(string); ok && strings.TrimSpace(str) == columnName {
			return i
		}
	}
	return -1
}
