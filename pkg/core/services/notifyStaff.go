package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mfranco1/scrub-in/internal/config"
	"github.com/mfranco1/scrub-in/pkg/core/model"
)

const notificationDateLayout = "Mon Jan 02 2006"

// EmailClient defines the interface for sending emails
type EmailClient interface {
	SendEmail(to, subject, body string) error
}

// NotifyFailure records a staff member whose email could not be sent
type NotifyFailure struct {
	Staff model.StaffMember
	Err   error
}

// NotifyStaffResult summarises a notification run
type NotifyStaffResult struct {
	Sent    []model.StaffMember
	Failed  []NotifyFailure
	Skipped []model.StaffMember // Scheduled staff with no email address
}

// NotifyStaff emails every scheduled staff member the list of their entries between two dates.
// A failed send is recorded and does not stop the remaining sends.
func NotifyStaff(
	ctx context.Context,
	database ScheduleWindowStore,
	emailClient EmailClient,
	cfg *config.Config,
	logger *zap.Logger,
	startDate, endDate string,
) (*NotifyStaffResult, error) {
	if cfg.GmailSender == "" {
		return nil, fmt.Errorf("gmailSender is not configured")
	}

	window, err := loadScheduleWindow(ctx, database, cfg, logger, startDate, endDate)
	if err != nil {
		return nil, err
	}

	byStaff := groupEntriesByStaff(window.entries)
	subject := fmt.Sprintf("Your schedule: %s to %s",
		window.start.Format(notificationDateLayout),
		window.end.Format(notificationDateLayout))

	result := &NotifyStaffResult{}
	for _, member := range window.columns() {
		entries := byStaff[member.ID]
		if len(entries) == 0 {
			continue
		}

		if member.Email == "" {
			logger.Warn("Staff member has no email address, skipping", zap.Int64("staff_id", member.ID))
			result.Skipped = append(result.Skipped, member)
			continue
		}

		body := notificationBody(member, entries, window)
		if err := emailClient.SendEmail(member.Email, subject, body); err != nil {
			logger.Error("Failed to send schedule email", zap.Int64("staff_id", member.ID), zap.Error(err))
			result.Failed = append(result.Failed, NotifyFailure{Staff: member, Err: err})
			continue
		}

		logger.Debug("Schedule email sent", zap.Int64("staff_id", member.ID), zap.Int("entries", len(entries)))
		result.Sent = append(result.Sent, member)
	}

	logger.Info("Notifications finished",
		zap.Int("sent", len(result.Sent)),
		zap.Int("failed", len(result.Failed)),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

// notificationBody lists a staff member's entries, one line per entry in date order
func notificationBody(member model.StaffMember, entries []model.ScheduleEntry, window *scheduleWindow) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\n\n", member.Name)
	fmt.Fprintf(&sb, "Your schedule from %s to %s:\n\n",
		window.start.Format(notificationDateLayout),
		window.end.Format(notificationDateLayout))

	for _, entry := range entries {
		date := entry.Date
		if parsed, err := model.ParseDate(entry.Date); err == nil {
			date = parsed.Format(notificationDateLayout)
		}

		line := fmt.Sprintf("  %s: %s", date, window.label(entry))
		if shiftType, ok := window.shiftTypeOf(entry); ok {
			line += fmt.Sprintf(" %s-%s", shiftType.StartTime, shiftType.EndTime)
		}
		if entry.Unit != "" {
			line += fmt.Sprintf(" [%s]", entry.Unit)
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\nPlease contact the scheduling office if anything looks wrong.\n")
	return sb.String()
}

func (w *scheduleWindow) shiftTypeOf(entry model.ScheduleEntry) (model.ShiftType, bool) {
	if !entry.HasShift() {
		return model.ShiftType{}, false
	}
	shiftType, ok := w.shiftTypes[*entry.ShiftTypeID]
	return shiftType, ok
}
