// Package dialogue implements the ticket-collection protocol: a per-user
// state machine layered on top of a stateless chat-model call. The model's
// reply is scanned for control markers; phase plus markers plus explicit
// confirmation wording decide every transition deterministically.
package dialogue

import (
	"context"
	"strings"
	"sync"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/vserve-support/server/internal/agent/classify"
	"github.com/vserve-support/server/internal/agent/conversations"
	"github.com/vserve-support/server/internal/agent/model"
	"github.com/vserve-support/server/internal/agent/parsers"
	"github.com/vserve-support/server/internal/agent/prompts"
	errx "github.com/vserve-support/server/internal/core/error"
	"github.com/vserve-support/server/internal/knowledge"
	"github.com/vserve-support/server/internal/repository"
	logx "github.com/vserve-support/server/pkg/logger"
)

// Deterministic prompts for the scripted protocol steps.
const (
	timeRequestPrompt  = "Please provide your preferred time for the service (e.g., 2025-04-25 10:00 AM)."
	detailUpdatePrompt = "Please provide the updated details: First Name: [Your First Name], Last Name: [Your Last Name], Address: [Your Address], Contact Number: [Your Contact Number]"
	invalidTimePrompt  = "Please provide a valid time format (e.g., 2025-04-25 10:00 AM)."
)

// draftDescriptionPlaceholder fills the draft until the time step completes.
const draftDescriptionPlaceholder = "Temporary description"

// confirmWords are matched as case-insensitive substrings of the user's
// reply at the detail-confirmation step.
var confirmWords = []string{"no", "correct", "looks good"}

// Config carries the engine's behavioral knobs.
type Config struct {
	Prompt       model.SupportPromptConfig
	Conversation model.ConversationConfig
	// DescriptionTimeout bounds the secondary model call for description
	// synthesis; expiry takes the fallback-description path.
	DescriptionTimeout time.Duration
}

// Engine drives one chat turn end to end: knowledge lookup, model call,
// post-processing, state transition, and (on completion) ticket creation.
type Engine struct {
	responseModel    einomodel.BaseChatModel
	descriptionModel einomodel.BaseChatModel
	states           model.ConversationStore
	profiles         repository.ProfileRepository
	tickets          repository.TicketRepository
	finder           knowledge.Finder
	manager          *conversations.Manager
	cfg              Config

	// Per-user single-flight: two concurrent messages from one user must not
	// interleave the read-modify-write of ConversationState.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewEngine(
	responseModel, descriptionModel einomodel.BaseChatModel,
	states model.ConversationStore,
	profiles repository.ProfileRepository,
	tickets repository.TicketRepository,
	finder knowledge.Finder,
	cfg Config,
) *Engine {
	if cfg.DescriptionTimeout <= 0 {
		cfg.DescriptionTimeout = 10 * time.Second
	}
	return &Engine{
		responseModel:    responseModel,
		descriptionModel: descriptionModel,
		states:           states,
		profiles:         profiles,
		tickets:          tickets,
		finder:           finder,
		manager:          conversations.NewManager(cfg.Conversation),
		cfg:              cfg,
		locks:            make(map[string]*sync.Mutex),
	}
}

func (e *Engine) userLock(userID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[userID] = l
	}
	return l
}

// HandleMessage processes one inbound chat message for a verified user and
// returns the reply text with all control markers stripped. On any
// dependency failure no partial turn is recorded, so a retry is safe.
func (e *Engine) HandleMessage(ctx context.Context, userID, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errx.Validation("query is required")
	}

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state, err := e.states.Load(ctx, userID)
	if err != nil {
		return "", errx.Dependency(err)
	}

	kbContext, err := e.finder.Find(ctx, query)
	if err != nil {
		logx.Error().Err(err).Str("user_id", userID).Msg("knowledge lookup failed")
		return "", errx.Dependency(err)
	}

	messages := e.manager.BuildModelContext(state,
		prompts.RenderSupportSystem(e.cfg.Prompt),
		prompts.ContextualQuery(kbContext, query),
	)

	out, err := e.responseModel.Generate(ctx, messages)
	if err != nil {
		logx.Error().Err(err).Str("user_id", userID).Msg("model call failed")
		return "", errx.Dependency(err)
	}
	raw := ""
	if out != nil {
		raw = out.Content
	}
	raw = parsers.StripReasoning(raw)

	reply, completed, err := e.advance(ctx, state, query, raw)
	if err != nil {
		return "", err
	}

	if completed {
		// The finalizer already cleared the state; recording the turn would
		// resurrect it.
		return reply, nil
	}

	e.manager.AppendTurn(state, schema.UserMessage(query))
	e.manager.AppendTurn(state, schema.AssistantMessage(reply, nil))
	if err := e.states.Save(ctx, state); err != nil {
		return "", errx.Dependency(err)
	}
	return reply, nil
}

// History returns a copy of the caller's turn history. The read holds the
// same per-user lock as HandleMessage so it never observes a half-applied
// turn from a store that shares state pointers.
func (e *Engine) History(ctx context.Context, userID string) ([]*schema.Message, error) {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state, err := e.states.Load(ctx, userID)
	if err != nil {
		return nil, errx.Dependency(err)
	}
	turns := make([]*schema.Message, len(state.Turns))
	copy(turns, state.Turns)
	return turns, nil
}

// advance applies one transition of the collection protocol. It returns the
// outbound reply, whether the ticket was finalized this turn, and any error.
//
// Marker precedence: a fresh "needs details" marker short-circuits all other
// phase logic, so a new ticket-needed instruction from the model always
// restarts collection instead of being swallowed by leftover phase state.
func (e *Engine) advance(ctx context.Context, state *model.ConversationState, query, reply string) (string, bool, error) {
	sig := parsers.ScanMarkers(reply)

	switch {
	case sig.NeedsDetails:
		r, err := e.beginCollection(ctx, state, query, reply)
		return r, false, err

	case state.Phase == model.PhaseAwaitingConfirm:
		// The confirmation verdict is in the user's words; markers the model
		// attaches to its own reply do not preempt it.
		return e.handleConfirmation(state, query), false, nil

	case state.Phase == model.PhaseAwaitingUpdate || sig.NeedsDetailsUpdate:
		if state.Draft == nil {
			// Marker without a draft in progress; nothing to update.
			return parsers.StripMarkers(reply), false, nil
		}
		return e.handleDetailUpdate(state, query), false, nil

	case sig.NeedsTime || state.Phase == model.PhaseAwaitingTime:
		if state.Draft == nil {
			return parsers.StripMarkers(reply), false, nil
		}
		return e.handleTime(ctx, state, query)

	default:
		// Ordinary resolvable answer; no ticket fields touched.
		return parsers.StripMarkers(reply), false, nil
	}
}

// beginCollection builds a fresh draft from the user's profile, classifies
// the issue, and substitutes the draft values into the model's reply.
func (e *Engine) beginCollection(ctx context.Context, state *model.ConversationState, query, reply string) (string, error) {
	draft := &model.TicketDraft{
		FirstName:        model.UnknownFirstName,
		LastName:         model.UnknownLastName,
		Address:          model.UnknownAddress,
		ContactNumber:    model.UnknownContactNumber,
		IssueTitle:       classify.IssueTitle(query),
		IssueDescription: draftDescriptionPlaceholder,
	}

	profile, err := e.profiles.Get(ctx, state.UserID)
	if err != nil {
		logx.Error().Err(err).Str("user_id", state.UserID).Msg("profile lookup failed")
		return "", errx.Dependency(err)
	}
	if profile != nil {
		if profile.FirstName != "" {
			draft.FirstName = profile.FirstName
		}
		if profile.LastName != "" {
			draft.LastName = profile.LastName
		}
		if profile.Address != "" {
			draft.Address = profile.Address
		}
		if profile.ContactNumber != "" {
			draft.ContactNumber = profile.ContactNumber
		}
	} else {
		logx.Warn().Str("user_id", state.UserID).Msg("no profile on file, using sentinel details")
	}

	state.Draft = draft
	state.Phase = model.PhaseAwaitingConfirm

	logx.Debug().
		Str("user_id", state.UserID).
		Str("issue_title", draft.IssueTitle).
		Msg("collection started")

	reply = parsers.SubstitutePlaceholders(reply, draft)
	return parsers.StripMarkers(reply), nil
}

// handleConfirmation reads the user's verdict on the presented details.
func (e *Engine) handleConfirmation(state *model.ConversationState, query string) string {
	lower := strings.ToLower(query)
	for _, w := range confirmWords {
		if strings.Contains(lower, w) {
			state.Phase = model.PhaseAwaitingTime
			return timeRequestPrompt
		}
	}
	state.Phase = model.PhaseAwaitingUpdate
	return detailUpdatePrompt
}

// handleDetailUpdate overwrites any fields found in the user's message and
// moves on to the time step. Fields not present keep their prior values.
func (e *Engine) handleDetailUpdate(state *model.ConversationState, query string) string {
	parsers.ExtractFields(query).ApplyTo(state.Draft)
	state.Phase = model.PhaseAwaitingTime
	logx.Debug().Str("user_id", state.UserID).Msg("draft details updated")
	return timeRequestPrompt
}

// handleTime looks for the scheduled-time pattern in the user's message.
// A miss is not an error: the phase holds and the user is re-asked.
func (e *Engine) handleTime(ctx context.Context, state *model.ConversationState, query string) (string, bool, error) {
	scheduled, ok := parsers.ExtractScheduledTime(query)
	if !ok {
		state.Phase = model.PhaseAwaitingTime
		return invalidTimePrompt, false, nil
	}

	state.Draft.ScheduledTime = scheduled
	state.Draft.IssueDescription = e.describeIssue(ctx, state)

	reply, err := e.finalize(ctx, state)
	if err != nil {
		return "", false, err
	}
	return reply, true, nil
}
