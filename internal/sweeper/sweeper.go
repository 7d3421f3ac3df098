// Package sweeper removes tickets whose deadline has passed. It runs on a
// cron schedule outside the request path and must never block chat handling.
package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/vserve-support/server/internal/repository"
)

type Sweeper struct {
	tickets repository.TicketRepository
	cron    *cron.Cron
	log     zerolog.Logger
	now     func() time.Time
}

func New(tickets repository.TicketRepository, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		tickets: tickets,
		cron:    cron.New(),
		log:     log,
		now:     time.Now,
	}
}

// Start registers the sweep on the given schedule and blocks until the
// context is cancelled.
func (s *Sweeper) Start(ctx context.Context, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.Sweep(context.Background()); err != nil {
			s.log.Error().Err(err).Msg("ticket sweep failed")
		}
	})
	if err != nil {
		return fmt.Errorf("sweeper: invalid schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	s.log.Info().Str("schedule", schedule).Msg("ticket sweeper started")

	<-ctx.Done()
	s.cron.Stop()
	s.log.Info().Msg("ticket sweeper stopped")
	return ctx.Err()
}

// Sweep deletes every ticket past its deadline. One pass; safe to run
// concurrently with request handling.
func (s *Sweeper) Sweep(ctx context.Context) error {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return err
	}

	now := s.now()
	for _, t := range tickets {
		if t.Deadline.IsZero() || !now.After(t.Deadline) {
			continue
		}
		if err := s.tickets.Delete(ctx, t.ID); err != nil {
			s.log.Error().Err(err).Str("ticket_id", t.ID).Msg("failed to delete expired ticket")
			continue
		}
		s.log.Info().Str("ticket_id", t.ID).Str("user_id", t.UserID).Msg("deleted expired ticket")
	}
	return nil
}
