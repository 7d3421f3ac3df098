package dialogue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vserve-support/server/internal/agent/model"
	errx "github.com/vserve-support/server/internal/core/error"
	"github.com/vserve-support/server/internal/models"
	logx "github.com/vserve-support/server/pkg/logger"
)

// finalize assembles the completed ticket record, persists it, and clears
// the user's conversation state as one logical operation. A persistence
// failure leaves the state unchanged so the user can retry the turn.
func (e *Engine) finalize(ctx context.Context, state *model.ConversationState) (string, error) {
	draft := state.Draft
	now := time.Now()

	ticket := &models.Ticket{
		ID:               uuid.NewString(),
		UserID:           state.UserID,
		FirstName:        draft.FirstName,
		LastName:         draft.LastName,
		Address:          draft.Address,
		ContactNumber:    draft.ContactNumber,
		IssueTitle:       draft.IssueTitle,
		IssueDescription: draft.IssueDescription,
		ScheduledTime:    draft.ScheduledTime,
		Status:           models.StatusOpen,
		CreatedAt:        now,
		Deadline:         now.Add(models.DeadlineWindow),
	}

	if profile, err := e.profiles.Get(ctx, state.UserID); err == nil && profile != nil {
		ticket.UserRole = profile.Role
	}

	if err := e.tickets.Create(ctx, ticket); err != nil {
		logx.Error().Err(err).Str("user_id", state.UserID).Msg("ticket creation failed")
		return "", errx.Dependency(err)
	}

	if err := e.states.Clear(ctx, state.UserID); err != nil {
		// The ticket exists; failing the turn now would invite a duplicate
		// on retry. Log and let the store TTL reap the stale state.
		logx.Error().Err(err).Str("user_id", state.UserID).Msg("failed to clear conversation state after ticket creation")
	}
	state.Phase = model.PhaseNone
	state.Draft = nil
	state.Turns = nil

	logx.Info().
		Str("user_id", state.UserID).
		Str("ticket_id", ticket.ID).
		Str("issue_title", ticket.IssueTitle).
		Str("scheduled_time", ticket.ScheduledTime).
		Msg("ticket created")

	return ticketReply(ticket), nil
}

// ticketReply composes the confirmation message carrying the full ticket
// summary, with no control markers.
func ticketReply(t *models.Ticket) string {
	return fmt.Sprintf(
		"Thank you! A ticket is being created. TICKET_DETAILS: First Name: %s, Last Name: %s, Address: %s, Contact Number: %s, Issue Title: %s, Issue Description: %s, Scheduled Time: %s Is there anything else I can help with?",
		t.FirstName, t.LastName, t.Address, t.ContactNumber, t.IssueTitle, t.IssueDescription, t.ScheduledTime,
	)
}
