package worker

import (
	"club-api/core/mail"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeEnqueuer struct {
	emails []mail.Message
	days   []time.Time
}

func (f *fakeEnqueuer) EnqueueEmail(ctx context.Context, msg mail.Message) error {
	f.emails = append(f.emails, msg)
	return nil
}

func (f *fakeEnqueuer) EnqueueDailyDigest(ctx context.Context, day time.Time) error {
	f.days = append(f.days, day)
	return nil
}

type fakeDigests struct {
	day time.Time
	out []mail.Message
}

func (f *fakeDigests) DailyDigests(ctx context.Context, day time.Time) ([]mail.Message, error) {
	f.day = day
	return f.out, nil
}

func TestHandleEmail(t *testing.T) {
	sender := &fakeSender{}
	p := NewProcessor(sender, nil, nil, time.UTC)

	task, err := NewEmailTask(mail.Message{To: []string{"coach@example.com"}, Subject: "Schedule", Body: "<p>hi</p>", IsHTML: true})
	require.NoError(t, err)
	assert.Equal(t, TypeEmailSend, task.Type())

	require.NoError(t, p.HandleEmail(context.Background(), task))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Schedule", sender.sent[0].Subject)
	assert.True(t, sender.sent[0].IsHTML)

	sender.err = errors.New("smtp down")
	assert.Error(t, p.HandleEmail(context.Background(), task))
}

func TestHandleEmail_BadPayloadSkipsRetry(t *testing.T) {
	p := NewProcessor(&fakeSender{}, nil, nil, time.UTC)
	err := p.HandleEmail(context.Background(), asynq.NewTask(TypeEmailSend, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleDailyDigest(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	digests := &fakeDigests{out: []mail.Message{{To: []string{"a@x.io"}}, {To: []string{"b@x.io"}}}}
	enq := &fakeEnqueuer{}
	p := NewProcessor(&fakeSender{}, digests, enq, loc)

	task, err := NewDailyDigestTask(time.Date(2024, 6, 12, 6, 0, 0, 0, loc))
	require.NoError(t, err)

	require.NoError(t, p.HandleDailyDigest(context.Background(), task))
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, loc), digests.day)
	assert.Len(t, enq.emails, 2)
}

func TestNewScheduler(t *testing.T) {
	s, err := NewScheduler("0 6 * * *", time.UTC, &fakeEnqueuer{})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Entries())

	_, err = NewScheduler("not a spec", time.UTC, &fakeEnqueuer{})
	assert.Error(t, err)
}
