package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"caseload-api/core/config"
	"caseload-api/core/constants"
	"caseload-api/core/logger"
)

// ReminderPayload is the task body for a scheduled event reminder.
type ReminderPayload struct {
	EventID     uuid.UUID `json:"event_id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	StartAt     time.Time `json:"start_at"`
	LeadMinutes int       `json:"lead_minutes"`
}

// Client enqueues background tasks.
type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// ScheduleReminder enqueues a reminder task to run at processAt.
func (c *Client) ScheduleReminder(ctx context.Context, payload ReminderPayload, processAt time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(constants.TaskReminderDispatch, body)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.ProcessAt(processAt),
		asynq.MaxRetry(3),
		asynq.TaskID(fmt.Sprintf("%s:%s:%d", constants.TaskReminderDispatch, payload.EventID, payload.LeadMinutes)),
	)
	if err != nil {
		// A task with the same ID is already queued; reschedules go through
		// the dedupe cache instead.
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			logger.Info("Worker:ScheduleReminder:Duplicate", "event_id", payload.EventID, "lead", payload.LeadMinutes)
			return nil
		}
		return err
	}

	logger.Info("Worker:ScheduleReminder:Enqueued",
		"task_id", info.ID,
		"event_id", payload.EventID,
		"process_at", processAt.Format(time.RFC3339),
	)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// StartServer runs the asynq worker loop in a goroutine. handler receives
// reminder tasks when their scheduled time arrives.
func StartServer(cfg config.RedisConfig, handler asynq.Handler) *asynq.Server {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 5,
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(constants.TaskReminderDispatch, handler)

	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Error("Worker:StartServer:Run", err)
		}
	}()

	return srv
}
