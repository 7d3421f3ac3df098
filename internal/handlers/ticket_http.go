package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	errx "github.com/vserve-support/server/internal/core/error"
	"github.com/vserve-support/server/internal/middleware"
	"github.com/vserve-support/server/internal/models"
	"github.com/vserve-support/server/internal/repository"
	"github.com/vserve-support/server/internal/utils"
	logx "github.com/vserve-support/server/pkg/logger"
)

// TicketHTTP wires ticket endpoints to the ticket repository.
type TicketHTTP struct {
	tickets repository.TicketRepository
}

func NewTicketHTTP(tickets repository.TicketRepository) *TicketHTTP {
	return &TicketHTTP{tickets: tickets}
}

// List handles GET /tickets: the caller's own tickets only.
func (h *TicketHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)

		items, err := h.tickets.ListByUser(r.Context(), uid)
		if err != nil {
			logx.Error().Err(err).Str("user_id", uid).Msg("ticket list failed")
			utils.Error(w, errx.Status(err), errx.SafeMessage(err))
			return
		}
		if items == nil {
			items = []models.Ticket{}
		}
		utils.JSON(w, http.StatusOK, map[string]any{"tickets": items})
	}
}

// UpdateStatus handles POST /api/update-ticket-status (admin only).
func (h *TicketHTTP) UpdateStatus() http.HandlerFunc {
	type inDTO struct {
		TicketID string `json:"ticket_id"`
		Status   string `json:"status"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.TicketID = strings.TrimSpace(in.TicketID)
		in.Status = strings.TrimSpace(in.Status)
		if in.TicketID == "" || in.Status == "" {
			utils.Error(w, http.StatusBadRequest, "ticket_id and status are required")
			return
		}

		if err := h.tickets.UpdateStatus(r.Context(), in.TicketID, in.Status); err != nil {
			logx.Error().Err(err).Str("ticket_id", in.TicketID).Msg("status update failed")
			utils.Error(w, errx.Status(err), errx.SafeMessage(err))
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{"message": "ticket status updated"})
	}
}
