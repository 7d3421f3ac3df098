package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vserve-support/server/internal/agent/dialogue"
	errx "github.com/vserve-support/server/internal/core/error"
	"github.com/vserve-support/server/internal/middleware"
	"github.com/vserve-support/server/internal/utils"
	logx "github.com/vserve-support/server/pkg/logger"
)

// ChatHTTP wires the chat turn contract to the dialogue engine.
type ChatHTTP struct {
	engine *dialogue.Engine
}

func NewChatHTTP(engine *dialogue.Engine) *ChatHTTP {
	return &ChatHTTP{engine: engine}
}

// Chat handles POST /chat: a single free-text query in, a single free-text
// response out. All internal markers are stripped before returning.
func (h *ChatHTTP) Chat() http.HandlerFunc {
	type inDTO struct {
		Query string `json:"query"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Query = strings.TrimSpace(in.Query)
		if in.Query == "" {
			utils.Error(w, http.StatusBadRequest, "query is required")
			return
		}

		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)

		reply, err := h.engine.HandleMessage(r.Context(), uid, in.Query)
		if err != nil {
			var ae *errx.AppError
			if !errors.As(err, &ae) || ae.Status >= http.StatusInternalServerError {
				logx.Error().Err(err).Str("user_id", uid).Msg("chat turn failed")
			}
			utils.Error(w, errx.Status(err), errx.SafeMessage(err))
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{"response": reply})
	}
}

// History handles GET /history: the caller's turn history verbatim.
func (h *ChatHTTP) History() http.HandlerFunc {
	type turnDTO struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)

		turns, err := h.engine.History(r.Context(), uid)
		if err != nil {
			logx.Error().Err(err).Str("user_id", uid).Msg("history load failed")
			utils.Error(w, errx.Status(err), errx.SafeMessage(err))
			return
		}

		out := make([]turnDTO, 0, len(turns))
		for _, t := range turns {
			if t == nil {
				continue
			}
			out = append(out, turnDTO{Role: string(t.Role), Content: t.Content})
		}
		utils.JSON(w, http.StatusOK, map[string]any{"history": out})
	}
}
