package services

import (
	"context"

	"github.com/leikymain/whatsapp-bot-backend/internal/domain"
)

// ConversationStore is the persistence contract for conversation history.
// Appends for one (tenant, counterpart) key must be serialized so history
// order reflects the order of Append calls; reads of unknown keys return an
// empty history, and Clear is idempotent.
type ConversationStore interface {
	Append(ctx context.Context, tenantID, counterpartID, role, content string) (domain.ConversationEntry, error)
	History(ctx context.Context, tenantID, counterpartID string) ([]domain.ConversationEntry, error)
	Clear(ctx context.Context, tenantID, counterpartID string) error
	Count(ctx context.Context) (int, error)
}

// ConversationService exposes read and clear operations over conversation
// history to the transport layer. Appending happens only inside the message
// pipeline.
type ConversationService struct {
	Store ConversationStore
}

// History returns the full ordered history for the (tenant, counterpart)
// pair, empty if the pair has never talked.
func (s *ConversationService) History(ctx context.Context, tenantID, counterpartID string) ([]domain.ConversationEntry, error) {
	return s.Store.History(ctx, tenantID, counterpartID)
}

// Clear deletes the entire history for the pair. Idempotent: clearing an
// unknown pair succeeds.
func (s *ConversationService) Clear(ctx context.Context, tenantID, counterpartID string) error {
	return s.Store.Clear(ctx, tenantID, counterpartID)
}
