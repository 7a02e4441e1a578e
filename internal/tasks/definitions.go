package tasks

import (
	"github.com/Bruno200000/LOKI-sub001/internal/services"
)

// Deps carries the collaborators the task handlers need. Built once in
// the worker's main and never mutated.
type Deps struct {
	Payments *services.PaymentService
	Cache    *services.RedisCache
	Mailer   *services.EmailService
}

// DefineTasks registers all available tasks
func DefineTasks(deps Deps) {
	RegisterHandler(LogInfoTask.TaskID(), LogInfoTask.HandleExecution)

	reconcile := &ReconcilePaymentsTaskDef{payments: deps.Payments, cache: deps.Cache}
	RegisterHandler(reconcile.TaskID(), reconcile.HandleExecution)

	reminder := &MoveInReminderTaskDef{mailer: deps.Mailer}
	RegisterHandler(reminder.TaskID(), reminder.HandleExecution)
}
