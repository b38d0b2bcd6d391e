package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"caseload-api/core/cache"
	"caseload-api/core/logger"
	"caseload-api/core/worker"
)

// Notifier is the slice of the notification service the reminder handler
// needs. Declared here to keep the module dependency one-way.
type Notifier interface {
	CreateForUser(ctx context.Context, userID uuid.UUID, title, message, notifType string) error
}

// ReminderHandler consumes scheduled reminder tasks and turns them into
// in-app notifications.
type ReminderHandler struct {
	notifier Notifier
	cache    *cache.Cache
}

func NewReminderHandler(notifier Notifier, c *cache.Cache) *ReminderHandler {
	return &ReminderHandler{
		notifier: notifier,
		cache:    c,
	}
}

func (h *ReminderHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload worker.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("ReminderHandler:ProcessTask:Unmarshal", err)
		return fmt.Errorf("unmarshal reminder payload: %w", err)
	}

	// Reschedules leave stale tasks in the queue; the dedupe key makes sure
	// each (event, lead) pair notifies once.
	if h.cache != nil {
		fresh, err := h.cache.MarkReminderSent(ctx, payload.EventID.String(), payload.LeadMinutes)
		if err != nil {
			logger.Warn("ReminderHandler:ProcessTask:Dedupe", err, "event_id", payload.EventID)
		} else if !fresh {
			logger.Info("ReminderHandler:ProcessTask:AlreadySent", "event_id", payload.EventID, "lead", payload.LeadMinutes)
			return nil
		}
	}

	message := fmt.Sprintf("%s starts at %s", payload.Title, payload.StartAt.Local().Format("15:04"))
	if err := h.notifier.CreateForUser(ctx, payload.UserID, "Upcoming event", message, "reminder"); err != nil {
		logger.Error("ReminderHandler:ProcessTask:Notify", err, "event_id", payload.EventID)
		return err
	}

	logger.Info("ReminderHandler:ProcessTask:Dispatched",
		"event_id", payload.EventID,
		"user_id", payload.UserID,
		"lead", payload.LeadMinutes,
	)
	return nil
}
