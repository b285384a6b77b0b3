// Package scheduler triggers periodic price check runs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/accadaniel/PriceSpy/internal/platform"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Checker runs price checks for tracked products.
type Checker interface {
	CheckAll(ctx context.Context) error
}

// Scheduler wraps robfig/cron and manages the periodic check loop.
type Scheduler struct {
	cron    *cron.Cron
	checker Checker
	spec    string
	logger  *zerolog.Logger
}

// New returns new Scheduler firing every interval.
func New(checker Checker, interval time.Duration, logger *zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		checker: checker,
		spec:    fmt.Sprintf("@every %s", interval),
		logger:  logger,
	}
}

// Start registers the job and starts the scheduler. It also runs one check
// immediately so fresh prices do not wait for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runCheck(ctx)
	})
	if err != nil {
		return fmt.Errorf("can't schedule price checks: %w", err)
	}

	s.cron.Start()
	s.logger.Info().
		Str("interval", s.spec).
		Msg("scheduler started")

	go s.runCheck(ctx)

	return nil
}

// Stop stops the scheduler and waits for a running check to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
}

func (s *Scheduler) runCheck(ctx context.Context) {
	err := s.checker.CheckAll(ctx)
	switch {
	case errors.Is(err, platform.ErrAlreadyRunning):
		s.logger.Warn().Msg("skipping price check, previous run still in progress")
	case err != nil:
		s.logger.Error().
			Err(err).
			Msg("price check run failed")
	}
}
