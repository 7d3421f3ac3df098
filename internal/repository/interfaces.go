package repository

import (
	"context"

	"github.com/vserve-support/server/internal/models"
)

type TicketRepository interface {
	Create(ctx context.Context, t *models.Ticket) error
	ListByUser(ctx context.Context, userID string) ([]models.Ticket, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// ListAll exists for the expiry sweep.
	ListAll(ctx context.Context) ([]models.Ticket, error)
	Delete(ctx context.Context, id string) error
}

type ProfileRepository interface {
	// Get returns nil with no error when no profile is on file.
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
}
