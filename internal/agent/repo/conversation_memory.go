package repo

import (
	"context"
	"sync"

	"github.com/vserve-support/server/internal/agent/model"
)

// MemoryConversationStore keeps conversation state in process memory for the
// process lifetime. State is lost on restart; that is a documented weakness
// of this store, not a feature. Production deployments should prefer the
// Redis-backed store.
type MemoryConversationStore struct {
	mu     sync.RWMutex
	states map[string]*model.ConversationState
}

func NewMemoryConversationStore() *MemoryConversationStore {
	return &MemoryConversationStore{states: make(map[string]*model.ConversationState)}
}

func (m *MemoryConversationStore) Load(_ context.Context, userID string) (*model.ConversationState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.states[userID]; ok {
		return s, nil
	}
	return model.NewConversationState(userID), nil
}

func (m *MemoryConversationStore) Save(_ context.Context, state *model.ConversationState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state.UserID] = state
	return nil
}

func (m *MemoryConversationStore) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, userID)
	return nil
}

var _ model.ConversationStore = (*MemoryConversationStore)(nil)
