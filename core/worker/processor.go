package worker

import (
	"club-api/core/logger"
	"club-api/core/mail"
	"context"
	"time"

	"github.com/hibiken/asynq"
)

// DigestBuilder produces the digest emails for one calendar day.
type DigestBuilder interface {
	DailyDigests(ctx context.Context, day time.Time) ([]mail.Message, error)
}

type Processor struct {
	sender   mail.Sender
	digests  DigestBuilder
	enqueuer Enqueuer
	loc      *time.Location
}

func NewProcessor(sender mail.Sender, digests DigestBuilder, enqueuer Enqueuer, loc *time.Location) *Processor {
	return &Processor{sender: sender, digests: digests, enqueuer: enqueuer, loc: loc}
}

func (p *Processor) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEmailSend, p.HandleEmail)
	mux.HandleFunc(TypeDailyDigest, p.HandleDailyDigest)
	return mux
}

func (p *Processor) HandleEmail(ctx context.Context, t *asynq.Task) error {
	msg, err := parseEmail(t)
	if err != nil {
		logger.Error("Worker:HandleEmail:Payload", "error", err)
		return err
	}
	if err := p.sender.Send(ctx, msg); err != nil {
		logger.Error("Worker:HandleEmail:Send", "to", msg.To, "error", err)
		return err
	}
	return nil
}

// HandleDailyDigest fans the day's digests out as individual email tasks so a
// failing recipient is retried on its own.
func (p *Processor) HandleDailyDigest(ctx context.Context, t *asynq.Task) error {
	day, err := parseDigestDate(t, p.loc)
	if err != nil {
		logger.Error("Worker:HandleDailyDigest:Payload", "error", err)
		return err
	}

	messages, err := p.digests.DailyDigests(ctx, day)
	if err != nil {
		logger.Error("Worker:HandleDailyDigest:Build", "error", err)
		return err
	}

	for _, msg := range messages {
		if err := p.enqueuer.EnqueueEmail(ctx, msg); err != nil {
			return err
		}
	}
	logger.Info("Worker:HandleDailyDigest:Done", "date", day.Format(digestDateLayout), "emails", len(messages))
	return nil
}
