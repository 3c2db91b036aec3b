package scheduler

import "github.com/mfranco1/scrub-in/pkg/core/model"

// catalog holds the resolved ids for each shift and duty category.
// A nil shift id means the category is absent and is never assigned.
// A zero duty id means the duty type is absent; entries still reference it.
type catalog struct {
	dayShiftID     *int64
	eveningShiftID *int64
	nightShiftID   *int64

	preDutyID  int64
	dutyID     int64
	postDutyID int64

	shiftCategories map[int64]model.ShiftCategory
}

// resolveCatalog maps catalog entries to categories. The first entry of each
// category in catalog order wins.
func resolveCatalog(shiftTypes []model.ShiftType, dutyTypes []model.DutyType) *catalog {
	c := &catalog{
		shiftCategories: make(map[int64]model.ShiftCategory, len(shiftTypes)),
	}

	for _, st := range shiftTypes {
		category := st.ResolvedCategory()
		if category == "" {
			continue
		}
		c.shiftCategories[st.ID] = category

		id := st.ID
		switch category {
		case model.ShiftCategoryDay:
			if c.dayShiftID == nil {
				c.dayShiftID = &id
			}
		case model.ShiftCategoryEvening:
			if c.eveningShiftID == nil {
				c.eveningShiftID = &id
			}
		case model.ShiftCategoryNight:
			if c.nightShiftID == nil {
				c.nightShiftID = &id
			}
		}
	}

	var havePre, haveDuty, havePost bool
	for _, dt := range dutyTypes {
		switch dt.ResolvedCategory() {
		case model.DutyCategoryPre:
			if !havePre {
				c.preDutyID, havePre = dt.ID, true
			}
		case model.DutyCategoryDuty:
			if !haveDuty {
				c.dutyID, haveDuty = dt.ID, true
			}
		case model.DutyCategoryPost:
			if !havePost {
				c.postDutyID, havePost = dt.ID, true
			}
		}
	}

	return c
}

// shiftID returns the catalog id for a shift category
func (c *catalog) shiftID(category model.ShiftCategory) *int64 {
	switch category {
	case model.ShiftCategoryDay:
		return c.dayShiftID
	case model.ShiftCategoryEvening:
		return c.eveningShiftID
	case model.ShiftCategoryNight:
		return c.nightShiftID
	}
	return nil
}

// categoryOf returns the shift category of an entry, or "" for rest entries and unknown types
func (c *catalog) categoryOf(entry model.ScheduleEntry) model.ShiftCategory {
	if entry.ShiftTypeID == nil {
		return ""
	}
	return c.shiftCategories[*entry.ShiftTypeID]
}

// dutyCategoryOf returns the duty category for a duty type id
func (c *catalog) dutyCategoryOf(dutyTypeID int64) model.DutyCategory {
	switch {
	case dutyTypeID == 0:
		return ""
	case dutyTypeID == c.preDutyID:
		return model.DutyCategoryPre
	case dutyTypeID == c.dutyID:
		return model.DutyCategoryDuty
	case dutyTypeID == c.postDutyID:
		return model.DutyCategoryPost
	}
	return ""
}
