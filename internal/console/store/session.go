package store

import (
	"context"
	"fmt"

	"github.com/foriam/console/pkg/iamsdk"
)

// DefaultTokenKey is the storage key of the session token.
const DefaultTokenKey = "token"

// SessionSlot exposes one Storage item as the SDK's token store.
type SessionSlot struct {
	Storage Storage
	// Key defaults to DefaultTokenKey.
	Key string
}

var _ iamsdk.TokenStore = (*SessionSlot)(nil)

// NewSessionSlot returns a slot for DefaultTokenKey in s.
func NewSessionSlot(s Storage) *SessionSlot {
	return &SessionSlot{Storage: s, Key: DefaultTokenKey}
}

func (s *SessionSlot) key() string {
	if s.Key == "" {
		return DefaultTokenKey
	}
	return s.Key
}

// Token returns the stored token, or "" when the slot is empty.
func (s *SessionSlot) Token(ctx context.Context) (string, error) {
	v, _, err := s.Storage.GetItem(ctx, s.key())
	if err != nil {
		return "", fmt.Errorf("get %q: %w", s.key(), err)
	}
	return v, nil
}

// SetToken stores token. An empty token clears the slot.
func (s *SessionSlot) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.ClearToken(ctx)
	}
	if err := s.Storage.SetItem(ctx, s.key(), token); err != nil {
		return fmt.Errorf("set %q: %w", s.key(), err)
	}
	return nil
}

func (s *SessionSlot) ClearToken(ctx context.Context) error {
	if err := s.Storage.RemoveItem(ctx, s.key()); err != nil {
		return fmt.Errorf("remove %q: %w", s.key(), err)
	}
	return nil
}
