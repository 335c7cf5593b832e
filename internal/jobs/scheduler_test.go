package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ethraa/internal/config"
	"ethraa/internal/tasks"
)

type recordingQueue struct {
	payloads []map[string]any
	err      error
}

func (q *recordingQueue) Enqueue(_ context.Context, payload map[string]any) error {
	if q.err != nil {
		return q.err
	}
	q.payloads = append(q.payloads, payload)
	return nil
}

func TestSchedulerEnqueuesTaskTypes(t *testing.T) {
	q := &recordingQueue{}
	s := NewScheduler(q, config.JobsConfig{}, zerolog.Nop())

	s.enqueuePurge()
	s.enqueueReconcile()

	require.Len(t, q.payloads, 2)
	assert.Equal(t, tasks.TypePurgeTokens, q.payloads[0]["type"])
	assert.Equal(t, tasks.TypeReconcile, q.payloads[1]["type"])
	assert.NotEmpty(t, q.payloads[0]["scheduledAt"])
}

func TestSchedulerRejectsBadCronExpression(t *testing.T) {
	s := NewScheduler(&recordingQueue{}, config.JobsConfig{PurgeTokensSpec: "every now and then", ReconcileSpec: "0 0 3 * * *"}, zerolog.Nop())
	assert.Error(t, s.Start())
}

func TestSchedulerStartStop(t *testing.T) {
	q := &recordingQueue{err: errors.New("redis down")}
	s := NewScheduler(q, config.JobsConfig{PurgeTokensSpec: "0 */10 * * * *", ReconcileSpec: "0 30 3 * * *"}, zerolog.Nop())
	require.NoError(t, s.Start())
	s.enqueuePurge()
	s.Stop()()
}
