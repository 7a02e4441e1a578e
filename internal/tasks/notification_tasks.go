package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Bruno200000/LOKI-sub001/internal/models"
	"github.com/Bruno200000/LOKI-sub001/internal/services"
)

// MoveInReminderTaskDef emails tenants whose approved booking starts
// tomorrow. Scheduled as a daily recurring task.
type MoveInReminderTaskDef struct {
	mailer *services.EmailService
}

// TaskID returns the unique identifier for this task
func (t *MoveInReminderTaskDef) TaskID() string {
	return "movein_reminder"
}

// HandleExecution handles sending the reminders
func (t *MoveInReminderTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	now := time.Now()
	tomorrowStart := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	tomorrowEnd := tomorrowStart.Add(24 * time.Hour)

	var bookings []models.Booking
	if err := db.Preload("Tenant").Preload("House").
		Where("status = ? AND move_in_date >= ? AND move_in_date < ?",
			models.BookingStatusApproved, tomorrowStart, tomorrowEnd).
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	successCount := 0
	failureCount := 0
	var failures []string

	for _, booking := range bookings {
		if ctx.Err() != nil {
			break
		}
		if err := t.mailer.SendMoveInReminder(booking.Tenant, booking, booking.House); err != nil {
			log.Printf("Failed to send move-in reminder for booking %d: %v", booking.ID, err)
			failureCount++
			failures = append(failures, fmt.Sprintf("booking %d: %v", booking.ID, err))
			continue
		}
		successCount++
	}

	result := map[string]interface{}{
		"total":   len(bookings),
		"success": successCount,
		"failure": failureCount,
	}
	if failureCount > 0 {
		result["errors"] = failures
		return result, fmt.Errorf("failed to deliver %d reminders", failureCount)
	}
	return result, nil
}
