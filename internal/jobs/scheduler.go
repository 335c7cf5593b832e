package jobs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"ethraa/internal/config"
	"ethraa/internal/tasks"
)

// Enqueuer appends one task entry to the maintenance stream.
type Enqueuer interface {
	Enqueue(ctx context.Context, payload map[string]any) error
}

// StreamEnqueuer adds entries to a redis stream.
type StreamEnqueuer struct {
	client *redis.Client
	stream string
}

func NewStreamEnqueuer(client *redis.Client, stream string) *StreamEnqueuer {
	return &StreamEnqueuer{client: client, stream: stream}
}

func (e *StreamEnqueuer) Enqueue(ctx context.Context, payload map[string]any) error {
	_, err := e.client.XAdd(ctx, &redis.XAddArgs{
		Stream: e.stream,
		Values: payload,
	}).Result()
	return err
}

type Scheduler struct {
	cron  *cron.Cron
	queue Enqueuer
	cfg   config.JobsConfig
	log   zerolog.Logger
}

func NewScheduler(queue Enqueuer, cfg config.JobsConfig, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:  c,
		queue: queue,
		cfg:   cfg,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if s.queue == nil {
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.PurgeTokensSpec, s.enqueuePurge); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.ReconcileSpec, s.enqueueReconcile); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() context.CancelFunc {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go func() {
		<-s.cron.Stop().Done()
		cancel()
	}()
	return func() {
		<-ctx.Done()
	}
}

func (s *Scheduler) enqueuePurge() {
	if err := s.enqueueTask(tasks.TypePurgeTokens); err != nil {
		s.log.Error().Err(err).Msg("enqueue purge_tokens failed")
	}
}

func (s *Scheduler) enqueueReconcile() {
	if err := s.enqueueTask(tasks.TypeReconcile); err != nil {
		s.log.Error().Err(err).Msg("enqueue reconcile failed")
	}
}

func (s *Scheduler) enqueueTask(taskType string) error {
	if s.queue == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.queue.Enqueue(ctx, map[string]any{
		"type":        taskType,
		"scheduledAt": time.Now().UTC().Format(time.RFC3339),
	})
}
