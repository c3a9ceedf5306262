package monitoring

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/hpandey/instaclone-be/internal/store"
)

// Sweep schedule. Expired reset tokens are already unusable (completeReset
// filters on expiry); the sweep just keeps dead secrets out of user documents.
const sweepSchedule = "@every 15m"

// ResetSweeper periodically clears expired password-reset tokens.
type ResetSweeper struct {
	users store.UserStore
	cron  *cron.Cron
}

// NewResetSweeper creates a new sweeper over the user store.
func NewResetSweeper(users store.UserStore) *ResetSweeper {
	return &ResetSweeper{
		users: users,
		cron:  cron.New(),
	}
}

// Run registers the sweep job and starts the cron loop. Runs one sweep
// immediately so a restart does not wait a full interval.
func (s *ResetSweeper) Run() error {
	if _, err := s.cron.AddFunc(sweepSchedule, s.Sweep); err != nil {
		return err
	}
	log.Info().Str("schedule", sweepSchedule).Msg("Starting reset-token sweeper")
	s.Sweep()
	s.cron.Start()
	return nil
}

// Stop halts the sweeper and waits for a running sweep to finish.
func (s *ResetSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Reset-token sweeper stopped")
}

// Sweep clears every reset token whose expiry has passed.
func (s *ResetSweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cleared, err := s.users.ClearExpiredResetTokens(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to clear expired reset tokens")
		return
	}
	if cleared > 0 {
		log.Info().Int64("cleared", cleared).Msg("Cleared expired reset tokens")
	}
}
