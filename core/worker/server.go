package worker

import (
	"club-api/core/config"
	"club-api/core/logger"
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

type Server struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

func NewServer(redis config.RedisConfig, cfg config.WorkerConfig, p *Processor) *Server {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(RedisOpt(redis), asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{"default": 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Worker:Task:Failed", "type", task.Type(), "error", err)
		}),
	})
	return &Server{srv: srv, mux: p.Mux()}
}

// Run processes tasks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.srv.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	s.srv.Shutdown()
	return nil
}

// Scheduler enqueues the daily digest on a cron spec.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(spec string, loc *time.Location, enqueuer Enqueuer) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := enqueuer.EnqueueDailyDigest(ctx, time.Now().In(loc)); err != nil {
			logger.Error("Scheduler:DailyDigest", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: c}, nil
}

// Entries is the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return nil
}
