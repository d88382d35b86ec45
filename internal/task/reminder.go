package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/phrazzld/taskdeck-api/internal/config"
	"github.com/phrazzld/taskdeck-api/internal/domain"
	"github.com/phrazzld/taskdeck-api/internal/store"
)

// DueSoonNotifier periodically scans for uncompleted tasks whose due date
// falls inside the lead window and records a task-due notification for each.
// ExistsForTask dedupes across runs, so a task is only ever notified once.
// The notifier never changes task state: a due date passing has no effect
// on status or the completed flag.
type DueSoonNotifier struct {
	taskStore         store.TaskStore
	notificationStore store.NotificationStore
	leadTime          time.Duration
	interval          time.Duration
	cron              *cron.Cron
	logger            *slog.Logger
	timeFunc          func() time.Time // Injectable for testing
}

// NewDueSoonNotifier creates a DueSoonNotifier from the reminder config.
func NewDueSoonNotifier(
	taskStore store.TaskStore,
	notificationStore store.NotificationStore,
	cfg config.ReminderConfig,
	logger *slog.Logger,
) (*DueSoonNotifier, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if notificationStore == nil {
		return nil, domain.NewValidationError("notificationStore", "cannot be nil", domain.ErrValidation)
	}
	if cfg.LeadTimeHours <= 0 || cfg.CheckIntervalMinutes <= 0 {
		return nil, domain.NewValidationError("reminder", "lead time and check interval must be positive", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DueSoonNotifier{
		taskStore:         taskStore,
		notificationStore: notificationStore,
		leadTime:          time.Duration(cfg.LeadTimeHours) * time.Hour,
		interval:          time.Duration(cfg.CheckIntervalMinutes) * time.Minute,
		cron:              cron.New(),
		logger:            logger.With(slog.String("component", "due_soon_notifier")),
		timeFunc:          time.Now,
	}, nil
}

// Start schedules the periodic scan and launches the cron runner.
func (n *DueSoonNotifier) Start() error {
	_, err := n.cron.AddFunc(fmt.Sprintf("@every %s", n.interval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.interval)
		defer cancel()
		if err := n.RunOnce(ctx); err != nil {
			n.logger.Error("due-soon scan failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule due-soon scan: %w", err)
	}

	n.cron.Start()
	n.logger.Info("due-soon notifier started",
		slog.Duration("lead_time", n.leadTime),
		slog.Duration("interval", n.interval))
	return nil
}

// Stop halts the scheduler and waits for a running scan to finish.
func (n *DueSoonNotifier) Stop() {
	<-n.cron.Stop().Done()
	n.logger.Info("due-soon notifier stopped")
}

// RunOnce performs a single scan of the lead window.
func (n *DueSoonNotifier) RunOnce(ctx context.Context) error {
	now := n.timeFunc().UTC()
	tasks, err := n.taskStore.ListDueBetween(ctx, now, now.Add(n.leadTime))
	if err != nil {
		return fmt.Errorf("failed to list tasks due soon: %w", err)
	}

	var created int
	for _, task := range tasks {
		exists, err := n.notificationStore.ExistsForTask(ctx, task.UserID, task.ID, domain.NotificationTaskDue)
		if err != nil {
			return fmt.Errorf("failed to check existing notification: %w", err)
		}
		if exists {
			continue
		}

		notification, err := domain.NewNotification(
			task.UserID,
			domain.NotificationTaskDue,
			"Task due soon",
			fmt.Sprintf("Task %q is due %s", task.Title, task.DueDate.Format("Jan 2 at 15:04")),
			&task.ID,
		)
		if err != nil {
			n.logger.Warn("failed to build due-soon notification",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()))
			continue
		}
		if err := n.notificationStore.Create(ctx, notification); err != nil {
			return fmt.Errorf("failed to store due-soon notification: %w", err)
		}
		created++
	}

	if created > 0 {
		n.logger.Info("due-soon notifications created",
			slog.Int("count", created),
			slog.Int("scanned", len(tasks)))
	}
	return nil
}
