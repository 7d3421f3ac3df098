// Package memory provides in-process ticket and profile stores. They back
// tests and DSN-less local runs; contents are lost on restart.
package memory

import (
	"context"
	"net/http"
	"sync"
	"time"

	errx "github.com/vserve-support/server/internal/core/error"
	"github.com/vserve-support/server/internal/models"
)

type TicketRepo struct {
	mu      sync.RWMutex
	tickets map[string]models.Ticket
	order   []string
}

func NewTicketRepo() *TicketRepo {
	return &TicketRepo{tickets: make(map[string]models.Ticket)}
}

func (r *TicketRepo) Create(_ context.Context, t *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tickets[t.ID]; !exists {
		r.order = append(r.order, t.ID)
	}
	r.tickets[t.ID] = *t
	return nil
}

func (r *TicketRepo) ListByUser(_ context.Context, userID string) ([]models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Ticket
	for _, id := range r.order {
		if t, ok := r.tickets[id]; ok && t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TicketRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return errx.New(nil, http.StatusNotFound, errx.NotFoundMessage)
	}
	t.Status = status
	t.LastUpdated = time.Now()
	r.tickets[id] = t
	return nil
}

func (r *TicketRepo) ListAll(_ context.Context) ([]models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Ticket, 0, len(r.order))
	for _, id := range r.order {
		if t, ok := r.tickets[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TicketRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return nil
	}
	delete(r.tickets, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type ProfileRepo struct {
	mu       sync.RWMutex
	profiles map[string]models.UserProfile
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{profiles: make(map[string]models.UserProfile)}
}

func (r *ProfileRepo) Put(p models.UserProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.UserID] = p
}

func (r *ProfileRepo) Get(_ context.Context, userID string) (*models.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.profiles[userID]; ok {
		return &p, nil
	}
	return nil, nil
}
