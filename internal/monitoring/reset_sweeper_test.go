package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpandey/instaclone-be/internal/store"
)

type sweepRecorder struct {
	store.UserStore
	calls []time.Time
}

func (r *sweepRecorder) ClearExpiredResetTokens(_ context.Context, now time.Time) (int64, error) {
	r.calls = append(r.calls, now)
	return 1, nil
}

func TestSweep_UsesCurrentTime(t *testing.T) {
	rec := &sweepRecorder{}
	s := NewResetSweeper(rec)

	before := time.Now()
	s.Sweep()

	require.Len(t, rec.calls, 1)
	assert.False(t, rec.calls[0].Before(before))
	assert.False(t, rec.calls[0].After(time.Now()))
}

func TestRun_SweepsImmediatelyAndStops(t *testing.T) {
	rec := &sweepRecorder{}
	s := NewResetSweeper(rec)

	require.NoError(t, s.Run())
	s.Stop()

	assert.Len(t, rec.calls, 1)
}
