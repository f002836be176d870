package repo

import (
	"context"
	"sync"
)

// MemoryTokenRepository хранит статусы в map процесса. Состояние теряется при выходе.
type MemoryTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]bool
}

// NewMemoryTokenRepository создаёт пустое in-memory хранилище.
func NewMemoryTokenRepository() *MemoryTokenRepository {
	return &MemoryTokenRepository{tokens: make(map[string]bool)}
}

func (r *MemoryTokenRepository) MarkValidated(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = true
	return nil
}

func (r *MemoryTokenRepository) IsValidated(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tokens[token], nil
}
