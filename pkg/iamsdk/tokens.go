package iamsdk

import (
	"context"
	"sync"
)

// TokenStore is the persisted slot holding the session token.
// An empty token means the client is unauthenticated.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	// ClearToken removes the token. Clearing an empty slot is not an error.
	ClearToken(ctx context.Context) error
}

// MemoryTokenStore keeps the token in process memory.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore returns an empty MemoryTokenStore.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) Token(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryTokenStore) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryTokenStore) ClearToken(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// HasToken reports whether a non-empty token is present in the store.
func HasToken(ctx context.Context, tokens TokenStore) (bool, error) {
	token, err := tokens.Token(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}
