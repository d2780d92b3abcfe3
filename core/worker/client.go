package worker

import (
	"club-api/core/config"
	"club-api/core/logger"
	"club-api/core/mail"
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
)

// Enqueuer hands work to the background worker.
type Enqueuer interface {
	EnqueueEmail(ctx context.Context, msg mail.Message) error
	EnqueueDailyDigest(ctx context.Context, day time.Time) error
}

type Client struct {
	client *asynq.Client
}

func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{client: asynq.NewClient(RedisOpt(cfg))}
}

func (c *Client) EnqueueEmail(ctx context.Context, msg mail.Message) error {
	task, err := NewEmailTask(msg)
	if err != nil {
		return err
	}
	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		logger.Error("Worker:EnqueueEmail", "error", err)
		return err
	}
	logger.Debug("Worker:EnqueueEmail:Done", "task_id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) EnqueueDailyDigest(ctx context.Context, day time.Time) error {
	task, err := NewDailyDigestTask(day)
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		logger.Info("Worker:EnqueueDailyDigest:AlreadyQueued", "date", day.Format(digestDateLayout))
		return nil
	}
	if err != nil {
		logger.Error("Worker:EnqueueDailyDigest", "error", err)
	}
	return err
}

func (c *Client) Close() error {
	return c.client.Close()
}
