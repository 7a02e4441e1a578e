package models

import (
	"testing"
	"time"
)

func TestNextStateAfterRun(t *testing.T) {
	hourly := "FREQ=HOURLY;INTERVAL=1"

	recurring := ScheduledTask{
		TaskType:          ScheduledTaskTypeRecurring,
		Due:               time.Now().Add(-30 * time.Minute),
		RecurringInterval: &hourly,
	}

	// A failed run must not take a recurring task out of rotation;
	// the schedule advances and it stays active.
	status, due := recurring.NextStateAfterRun(false)
	if status != ScheduledTaskStatusActive {
		t.Errorf("recurring after failure: status = %s; want active", status)
	}
	if !due.After(recurring.Due) {
		t.Errorf("recurring after failure: due %v not after %v", due, recurring.Due)
	}

	status, due = recurring.NextStateAfterRun(true)
	if status != ScheduledTaskStatusActive {
		t.Errorf("recurring after success: status = %s; want active", status)
	}
	if !due.After(recurring.Due) {
		t.Errorf("recurring after success: due %v not after %v", due, recurring.Due)
	}

	oneTime := ScheduledTask{TaskType: ScheduledTaskTypeOneTime, Due: time.Now()}
	if status, _ := oneTime.NextStateAfterRun(true); status != ScheduledTaskStatusDone {
		t.Errorf("onetime after success: status = %s; want done", status)
	}
	if status, _ := oneTime.NextStateAfterRun(false); status != ScheduledTaskStatusFailure {
		t.Errorf("onetime after failure: status = %s; want failure", status)
	}

	// A recurring task with no usable interval cannot advance; it ends
	// like a one-time task.
	exhausted := ScheduledTask{TaskType: ScheduledTaskTypeRecurring, Due: time.Now()}
	if status, _ := exhausted.NextStateAfterRun(false); status != ScheduledTaskStatusFailure {
		t.Errorf("recurring without interval after failure: status = %s; want failure", status)
	}
}
