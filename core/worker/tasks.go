package worker

import (
	"club-api/core/mail"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeEmailSend   = "email:send"
	TypeDailyDigest = "schedule:daily_digest"

	digestDateLayout = "2006-01-02"
)

type EmailPayload struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	IsHTML  bool     `json:"is_html"`
}

type DigestPayload struct {
	Date string `json:"date"`
}

func NewEmailTask(msg mail.Message) (*asynq.Task, error) {
	payload, err := json.Marshal(EmailPayload{To: msg.To, Subject: msg.Subject, Body: msg.Body, IsHTML: msg.IsHTML})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEmailSend, payload, asynq.MaxRetry(5), asynq.Timeout(time.Minute)), nil
}

// NewDailyDigestTask schedules the digest for day's calendar date. The task id
// makes a second enqueue for the same date a no-op.
func NewDailyDigestTask(day time.Time) (*asynq.Task, error) {
	date := day.Format(digestDateLayout)
	payload, err := json.Marshal(DigestPayload{Date: date})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDailyDigest, payload, asynq.MaxRetry(3), asynq.TaskID(TypeDailyDigest+":"+date)), nil
}

func parseEmail(t *asynq.Task) (mail.Message, error) {
	var p EmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return mail.Message{}, fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	return mail.Message{To: p.To, Subject: p.Subject, Body: p.Body, IsHTML: p.IsHTML}, nil
}

func parseDigestDate(t *asynq.Task, loc *time.Location) (time.Time, error) {
	var p DigestPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	day, err := time.ParseInLocation(digestDateLayout, p.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	return day, nil
}
