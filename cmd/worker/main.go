package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/Bruno200000/LOKI-sub001/internal/models"
	"github.com/Bruno200000/LOKI-sub001/internal/services"
	"github.com/Bruno200000/LOKI-sub001/internal/tasks"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := services.InitDB(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var cache *services.RedisCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			log.Printf("Warning: Redis initialization failed: %v", err)
			cache = nil
		}
	}

	wave := services.NewWaveService()

	tasks.DefineTasks(tasks.Deps{
		Payments: services.NewPaymentService(db, wave),
		Cache:    cache,
		Mailer:   services.NewEmailService(),
	})

	ensureReconcileSweep(db)

	log.Println("Worker started. Waiting for next tick...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down worker...")
		cancel()
	}()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	// One run at startup so a restart doesn't wait a full tick
	processScheduledTasks(ctx, db)

	for {
		select {
		case <-ticker.C:
			processScheduledTasks(ctx, db)
		case <-ctx.Done():
			return
		}
	}
}

// ensureReconcileSweep makes sure the recurring pending-payment sweep
// is scheduled, so a fresh deployment reconciles without manual setup.
func ensureReconcileSweep(db *gorm.DB) {
	taskName := (&tasks.ReconcilePaymentsTaskDef{}).TaskID()

	var count int64
	db.Model(&models.ScheduledTask{}).
		Where("task_name = ? AND status = ?", taskName, models.ScheduledTaskStatusActive).
		Count(&count)
	if count > 0 {
		return
	}

	interval := "FREQ=HOURLY;INTERVAL=1"
	task, err := tasks.BuildScheduledTask(taskName, map[string]interface{}{}, time.Now(), &interval, models.ScheduledTaskTypeRecurring, 1)
	if err != nil {
		log.Printf("Failed to build reconcile sweep task: %v", err)
		return
	}
	if err := db.Create(task).Error; err != nil {
		log.Printf("Failed to schedule reconcile sweep: %v", err)
		return
	}
	log.Println("Scheduled recurring payment reconcile sweep")
}

func processScheduledTasks(ctx context.Context, db *gorm.DB) {
	var pendingTasks []models.ScheduledTask
	now := time.Now()
	if err := db.Where("status = ? AND due <= ?", models.ScheduledTaskStatusActive, now).Find(&pendingTasks).Error; err != nil {
		log.Printf("Error fetching pending tasks: %v", err)
		return
	}

	if len(pendingTasks) == 0 {
		return
	}

	log.Printf("Found %d pending tasks.", len(pendingTasks))

	for _, task := range pendingTasks {
		if ctx.Err() != nil {
			return
		}
		executeTask(ctx, db, task, 1)
	}
}

func executeTask(ctx context.Context, db *gorm.DB, task models.ScheduledTask, curAttempt int) {
	log.Printf("Processing task: %s (ID: %d, attempt %d)", task.TaskName, task.ID, curAttempt)

	handler, found := tasks.GetHandler(task.TaskName)
	if !found {
		log.Printf("Task handler not found for: %s. Marking as failure.", task.TaskName)
		now := time.Now()
		db.Model(&task).Updates(map[string]interface{}{
			"status":   models.ScheduledTaskStatusFailure,
			"last_run": &now,
		})
		db.Create(&models.ScheduledTaskHistory{
			ScheduledTaskID: task.ID,
			TaskName:        task.TaskName,
			RunAt:           now,
			Status:          "handler_not_found",
			AttemptNumber:   curAttempt,
			Arguments:       task.Arguments,
			Result:          map[string]interface{}{"error": "Handler not found"},
		})
		return
	}

	startTime := time.Now()
	result, err := handler(ctx, db, task)
	runtimeMs := int(time.Since(startTime).Milliseconds())

	status := "success"
	resultData := result
	if err != nil {
		status = "failure"
		resultData = map[string]interface{}{"error": err.Error()}
		log.Printf("Task %s failed: %v", task.TaskName, err)
	}

	db.Create(&models.ScheduledTaskHistory{
		ScheduledTaskID: task.ID,
		TaskName:        task.TaskName,
		RunAt:           startTime,
		RuntimeMs:       runtimeMs,
		Status:          status,
		AttemptNumber:   curAttempt,
		Arguments:       task.Arguments,
		Result:          resultData,
	})

	taskUpdates := map[string]interface{}{
		"last_run": &startTime,
	}

	if status != "success" && curAttempt < task.MaxAttempt {
		executeTask(ctx, db, task, curAttempt+1)
		return
	}

	nextStatus, nextDue := task.NextStateAfterRun(status == "success")
	taskUpdates["status"] = nextStatus
	// the next due must be in the future, or the task would run again
	// on every tick
	if nextDue.After(task.Due) {
		taskUpdates["due"] = nextDue
	}

	db.Model(&task).Updates(taskUpdates)
}
