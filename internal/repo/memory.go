// Package repo implements the storage layer for tenant configurations and
// conversation history. Two backends exist: the in-memory stores in this
// file (the default, suitable for a single process) and a SQLite-backed
// conversation store (sqlite.go) for deployments that need history to
// survive restarts.
//
// Error semantics:
//   - When a tenant config is missing, Get returns ErrNotFound.
//   - Conversation reads never fail for unknown keys; they return an empty
//     history, and Clear is idempotent.
package repo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/leikymain/whatsapp-bot-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// MemoryConfigStore keeps tenant configurations in a mutex-guarded map.
// Configs are stored and handed out as deep copies, so callers can never
// mutate shared state through an aliased slice.
type MemoryConfigStore struct {
	mu   sync.RWMutex
	cfgs map[string]domain.TenantConfig
}

// NewMemoryConfigStore constructs an empty MemoryConfigStore.
func NewMemoryConfigStore() *MemoryConfigStore {
	return &MemoryConfigStore{cfgs: make(map[string]domain.TenantConfig)}
}

// Get returns the config for tenantID, or ErrNotFound.
func (s *MemoryConfigStore) Get(_ context.Context, tenantID string) (domain.TenantConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.cfgs[tenantID]
	if !ok {
		return domain.TenantConfig{}, ErrNotFound
	}
	return cfg.Clone(), nil
}

// Set replaces the config for cfg.TenantID wholesale. There is no merge: the
// stored value afterwards is exactly cfg.
func (s *MemoryConfigStore) Set(_ context.Context, cfg domain.TenantConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfgs[cfg.TenantID] = cfg.Clone()
	return nil
}

// Count returns the number of configured tenants (health endpoint).
func (s *MemoryConfigStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cfgs), nil
}

// MemoryConversationStore keeps per-(tenant, counterpart) histories in a
// mutex-guarded map. Appends for the same key are serialized by the store
// lock, so history order always reflects the order in which Append was
// called, even under concurrent requests.
type MemoryConversationStore struct {
	mu    sync.RWMutex
	convs map[string][]domain.ConversationEntry
}

// NewMemoryConversationStore constructs an empty MemoryConversationStore.
func NewMemoryConversationStore() *MemoryConversationStore {
	return &MemoryConversationStore{convs: make(map[string][]domain.ConversationEntry)}
}

// Append records one utterance at the end of the (tenantID, counterpartID)
// conversation, assigning the timestamp at append time. It returns the
// stored entry.
func (s *MemoryConversationStore) Append(_ context.Context, tenantID, counterpartID, role, content string) (domain.ConversationEntry, error) {
	entry := domain.ConversationEntry{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	key := domain.ConversationKey(tenantID, counterpartID)
	s.mu.Lock()
	s.convs[key] = append(s.convs[key], entry)
	s.mu.Unlock()

	return entry, nil
}

// History returns the full ordered history for the key, empty if none.
// The returned slice is a copy.
func (s *MemoryConversationStore) History(_ context.Context, tenantID, counterpartID string) ([]domain.ConversationEntry, error) {
	key := domain.ConversationKey(tenantID, counterpartID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.convs[key]
	out := make([]domain.ConversationEntry, len(src))
	copy(out, src)
	return out, nil
}

// Clear deletes the entire history for the key. Clearing a key that does not
// exist is a no-op.
func (s *MemoryConversationStore) Clear(_ context.Context, tenantID, counterpartID string) error {
	key := domain.ConversationKey(tenantID, counterpartID)

	s.mu.Lock()
	delete(s.convs, key)
	s.mu.Unlock()
	return nil
}

// Count returns the number of active conversations (health endpoint).
func (s *MemoryConversationStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.convs), nil
}
