package memory

import (
	"context"
	"net/http"
	"testing"

	errx "github.com/vserve-support/server/internal/core/error"
	"github.com/vserve-support/server/internal/models"
)

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	r := NewTicketRepo()
	if err := r.Create(ctx, &models.Ticket{ID: "t1", UserID: "u1", Status: models.StatusOpen}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := r.UpdateStatus(ctx, "t1", "Resolved"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	listed, _ := r.ListByUser(ctx, "u1")
	if len(listed) != 1 || listed[0].Status != "Resolved" {
		t.Errorf("ticket after update = %+v", listed)
	}
	if listed[0].LastUpdated.IsZero() {
		t.Error("LastUpdated not set")
	}
}

func TestUpdateStatusUnknownTicket(t *testing.T) {
	r := NewTicketRepo()

	err := r.UpdateStatus(context.Background(), "missing", "Resolved")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := errx.Status(err); got != http.StatusNotFound {
		t.Errorf("status = %d, want %d", got, http.StatusNotFound)
	}
	if got := errx.SafeMessage(err); got != errx.NotFoundMessage {
		t.Errorf("message = %q, want %q", got, errx.NotFoundMessage)
	}
}

func TestProfileGetAbsent(t *testing.T) {
	r := NewProfileRepo()

	p, err := r.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p != nil {
		t.Errorf("profile = %+v, want nil", p)
	}
}
