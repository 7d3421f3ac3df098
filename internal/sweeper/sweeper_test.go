package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vserve-support/server/internal/models"
	"github.com/vserve-support/server/internal/repository/memory"
)

func TestSweepDeletesOnlyExpired(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTicketRepo()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	expired := &models.Ticket{ID: "t-expired", UserID: "u1", Deadline: base.Add(-time.Hour)}
	live := &models.Ticket{ID: "t-live", UserID: "u1", Deadline: base.Add(time.Hour)}
	noDeadline := &models.Ticket{ID: "t-legacy", UserID: "u2"}
	for _, tk := range []*models.Ticket{expired, live, noDeadline} {
		if err := repo.Create(ctx, tk); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	s := New(repo, zerolog.Nop())
	s.now = func() time.Time { return base }
	if err := s.Sweep(ctx); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	remaining, _ := repo.ListAll(ctx)
	if len(remaining) != 2 {
		t.Fatalf("len(remaining) = %d, want 2", len(remaining))
	}
	for _, tk := range remaining {
		if tk.ID == "t-expired" {
			t.Error("expired ticket survived the sweep")
		}
	}
}

func TestSweepExactDeadlineSurvives(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTicketRepo()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := repo.Create(ctx, &models.Ticket{ID: "t1", Deadline: base}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	s := New(repo, zerolog.Nop())
	s.now = func() time.Time { return base }
	if err := s.Sweep(ctx); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	remaining, _ := repo.ListAll(ctx)
	if len(remaining) != 1 {
		t.Errorf("ticket at its exact deadline was deleted")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := New(memory.NewTicketRepo(), zerolog.Nop())
	if err := s.Start(context.Background(), "not a schedule"); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}
