package store

import (
	"context"
	"sync"

	"github.com/gratefultolord/intake_bot/internal/dialog"
)

// Memory keeps conversation states in process memory. States are lost on restart.
type Memory struct {
	mu     sync.RWMutex
	states map[string]dialog.State
}

func NewMemory() *Memory {
	return &Memory{
		states: make(map[string]dialog.State),
	}
}

func (m *Memory) Load(_ context.Context, userID string) (dialog.State, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.states[userID]
	return st, ok, nil
}

func (m *Memory) Save(_ context.Context, userID string, st dialog.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[userID] = st
	return nil
}
