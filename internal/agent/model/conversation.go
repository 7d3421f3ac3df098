package model

import (
	"context"
	"time"

	"github.com/cloudwego/eino/schema"
)

// Phase is the current step of the ticket-collection protocol for a user.
type Phase string

const (
	PhaseNone            Phase = "NONE"
	PhaseAwaitingConfirm Phase = "AWAITING_DETAIL_CONFIRMATION"
	PhaseAwaitingUpdate  Phase = "AWAITING_DETAIL_UPDATE"
	PhaseAwaitingTime    Phase = "AWAITING_TIME"
	PhaseCompleted       Phase = "COMPLETED"
)

// ConversationState is the per-user dialogue record. A TicketDraft is present
// if and only if Phase != PhaseNone.
type ConversationState struct {
	UserID       string           `json:"user_id"`
	Turns        []*schema.Message `json:"turns"`
	LastActivity time.Time        `json:"last_activity"`
	Phase        Phase            `json:"phase"`
	Draft        *TicketDraft     `json:"draft,omitempty"`
}

// NewConversationState returns the empty state a first message starts from.
func NewConversationState(userID string) *ConversationState {
	return &ConversationState{
		UserID: userID,
		Turns:  []*schema.Message{},
		Phase:  PhaseNone,
	}
}

// ConversationStore is the lifetime-scoped keyed store for ConversationState.
// Tests substitute an in-memory fake; production can use the Redis-backed
// implementation without touching the state machine.
type ConversationStore interface {
	// Load retrieves the state for a user. A user with no state yet gets a
	// fresh empty state, never an error.
	Load(ctx context.Context, userID string) (*ConversationState, error)

	// Save persists the state for a user.
	Save(ctx context.Context, state *ConversationState) error

	// Clear removes all state for a user.
	Clear(ctx context.Context, userID string) error
}
