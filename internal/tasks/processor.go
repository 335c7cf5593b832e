package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"ethraa/internal/repository"
)

// Maintenance is the storage side of the periodic repair tasks.
type Maintenance interface {
	PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error)
	Reconcile(ctx context.Context) (repository.ReconcileReport, error)
}

type Processor struct {
	store  Maintenance
	logger zerolog.Logger
	now    func() time.Time
}

type TaskPayload struct {
	Type        string `json:"type"`
	ScheduledAt string `json:"scheduledAt"`
}

func NewProcessor(store Maintenance, logger zerolog.Logger) *Processor {
	return &Processor{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (p *Processor) Handle(ctx context.Context, msg redis.XMessage) error {
	var payload TaskPayload
	if err := decodePayload(msg.Values, &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	switch payload.Type {
	case TypePurgeTokens:
		return p.handlePurge(ctx)
	case TypeReconcile:
		return p.handleReconcile(ctx)
	default:
		p.logger.Warn().Str("type", payload.Type).Str("message_id", msg.ID).Msg("unknown task type")
		return nil
	}
}

func decodePayload(values map[string]interface{}, out *TaskPayload) error {
	bytes, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, out)
}

func (p *Processor) handlePurge(ctx context.Context) error {
	purged, err := p.store.PurgeExpiredTokens(ctx, p.now())
	if err != nil {
		return fmt.Errorf("purge tokens: %w", err)
	}
	p.logger.Info().Int64("purged", purged).Msg("expired secret tokens purged")
	return nil
}

func (p *Processor) handleReconcile(ctx context.Context) error {
	report, err := p.store.Reconcile(ctx)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	p.logger.Info().
		Int64("users_fixed", report.UsersFixed).
		Int64("posts_resynced", report.PostsResynced).
		Msg("denormalized counters reconciled")
	return nil
}
