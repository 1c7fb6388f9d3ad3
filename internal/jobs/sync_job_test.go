package jobs_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foundry-erp/internal/jobs"
)

type countingRefresher struct{ n atomic.Int32 }

func (r *countingRefresher) Refresh(context.Context) { r.n.Add(1) }

func TestSyncScheduler_RecargaPeriodicamente(t *testing.T) {
	target := &countingRefresher{}
	js, err := jobs.NewSyncScheduler(target, 20*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)

	js.Start()
	assert.Eventually(t, func() bool { return target.n.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, js.Stop())

	after := target.n.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, after, target.n.Load(), "después de Stop no hay más recargas")
}

func TestSyncScheduler_IntervaloInvalido(t *testing.T) {
	_, err := jobs.NewSyncScheduler(&countingRefresher{}, 0, zerolog.Nop())
	assert.Error(t, err)
}
