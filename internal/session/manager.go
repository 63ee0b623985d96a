package session

import (
	"sync"

	"go.uber.org/zap"

	"TradingAssistant/internal/logger"
)

// Manager guards the session state and writes every change to disk.
type Manager struct {
	mu       sync.Mutex
	state    *State
	filePath string
	log      *logger.Logger
}

// NewManager creates a Manager, loading or initializing state from disk.
func NewManager(filePath string, log *logger.Logger) (*Manager, error) {
	if log == nil {
		log = logger.Nop()
	}
	st, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Manager{state: st, filePath: filePath, log: log.Named("session")}, nil
}

// State returns a copy of the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.state
}

// Save replaces the state and persists it.
func (m *Manager) Save(st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = &st
	return m.save()
}

// Update applies fn to the state and persists the result.
func (m *Manager) Update(fn func(*State)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.state)
	return m.save()
}

// Clear forgets everything and persists a fresh state.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := Fresh()
	m.state = &st
	return m.save()
}

func (m *Manager) save() error {
	if err := SaveState(m.filePath, m.state); err != nil {
		m.log.Error("failed to save session", zap.String("path", m.filePath), zap.Error(err))
		return err
	}
	return nil
}
