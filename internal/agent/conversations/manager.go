package conversations

import (
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/vserve-support/server/internal/agent/model"
)

// Manager owns turn bookkeeping for a conversation: appending with the
// history cap and assembling the message list sent to the model.
type Manager struct {
	maxTurns int
}

func NewManager(cfg model.ConversationConfig) *Manager {
	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 100
	}
	return &Manager{maxTurns: maxTurns}
}

// AppendTurn records a turn and touches LastActivity. The turn list is
// trimmed to the cap, oldest first; new turns are never rejected.
func (m *Manager) AppendTurn(state *model.ConversationState, msg *schema.Message) {
	state.Turns = append(state.Turns, msg)
	state.Turns = trimTail(state.Turns, m.maxTurns)
	state.LastActivity = time.Now()
}

// BuildModelContext assembles the full message list for a model call:
// system prompt, prior history, then the current user input.
func (m *Manager) BuildModelContext(state *model.ConversationState, systemPrompt, userInput string) []*schema.Message {
	messages := make([]*schema.Message, 0, len(state.Turns)+2)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	messages = append(messages, state.Turns...)
	messages = append(messages, schema.UserMessage(userInput))
	return messages
}

// RecentUserContents returns the contents of up to n most recent user turns,
// oldest first.
func (m *Manager) RecentUserContents(state *model.ConversationState, n int) []string {
	var contents []string
	for _, msg := range state.Turns {
		if msg == nil || msg.Content == "" {
			continue
		}
		if msg.Role == schema.User {
			contents = append(contents, msg.Content)
		}
	}
	if len(contents) > n {
		contents = contents[len(contents)-n:]
	}
	return contents
}

func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if len(messages) <= maxTurns {
		return messages
	}
	source := messages[len(messages)-maxTurns:]
	result := make([]*schema.Message, len(source))
	copy(result, source)
	return result
}
