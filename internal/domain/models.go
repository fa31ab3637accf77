// Package domain defines the core data model for the multi-tenant WhatsApp
// bot: tenant business configuration, conversation history entries, and the
// pipeline result returned to the transport layer.
package domain

import (
	"fmt"
	"time"
)

// Message roles. Only these two values ever appear in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// AutoResponse is a single quick-response rule: a trigger phrase and the
// fixed reply it produces. Rules are stored as an ordered slice (not a map)
// because match order is significant: the first trigger that is a
// case-insensitive substring of the inbound message wins, and earlier rules
// shadow later ones.
type AutoResponse struct {
	Trigger string `json:"trigger"`
	Reply   string `json:"reply"`
}

// TenantConfig is the business configuration of one tenant.
//
// Fields:
//   - TenantID: unique key, immutable once created.
//   - BusinessName / BusinessType: display identity of the business.
//   - KnowledgeBase: free text injected into the generator system prompt.
//   - AutoResponses: ordered quick-response rules (first match wins).
//   - EscalationKeywords: phrases that force human handoff, checked in
//     definition order.
//   - BusinessHours: day/label → hours string, informational only.
type TenantConfig struct {
	TenantID           string            `json:"client_id"`
	BusinessName       string            `json:"business_name"`
	BusinessType       string            `json:"business_type"`
	KnowledgeBase      string            `json:"knowledge_base"`
	AutoResponses      []AutoResponse    `json:"auto_responses"`
	EscalationKeywords []string          `json:"escalation_keywords"`
	BusinessHours      map[string]string `json:"business_hours,omitempty"`
}

// Clone returns a deep copy of the config. Stores hand out clones so callers
// can never mutate shared state through an aliased slice or map.
func (c TenantConfig) Clone() TenantConfig {
	out := c
	if c.AutoResponses != nil {
		out.AutoResponses = make([]AutoResponse, len(c.AutoResponses))
		copy(out.AutoResponses, c.AutoResponses)
	}
	if c.EscalationKeywords != nil {
		out.EscalationKeywords = make([]string, len(c.EscalationKeywords))
		copy(out.EscalationKeywords, c.EscalationKeywords)
	}
	if c.BusinessHours != nil {
		out.BusinessHours = make(map[string]string, len(c.BusinessHours))
		for k, v := range c.BusinessHours {
			out.BusinessHours[k] = v
		}
	}
	return out
}

// ConversationEntry is one utterance in a conversation. Entries are
// append-only: once recorded they are never mutated or removed except by a
// full clear of the conversation.
type ConversationEntry struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"` // ISO-8601, assigned at append time
}

// ConversationKey builds the storage key for a (tenant, counterpart) pair.
// The underscore format is part of the public API: it is returned to clients
// as conversation_id.
func ConversationKey(tenantID, counterpartID string) string {
	return fmt.Sprintf("%s_%s", tenantID, counterpartID)
}

// ConversationRecord is the persisted form of a ConversationEntry used by the
// SQLite-backed conversation store. The in-memory store does not use it.
type ConversationRecord struct {
	ID            string    `json:"id"             gorm:"type:char(36);primaryKey"`
	TenantID      string    `json:"client_id"      gorm:"type:varchar(64);not null;index:idx_conv,priority:1"`
	CounterpartID string    `json:"phone"          gorm:"type:varchar(32);not null;index:idx_conv,priority:2"`
	Role          string    `json:"role"           gorm:"type:varchar(16);not null;check:role IN ('user','assistant')"`
	Content       string    `json:"content"        gorm:"type:text;not null"`
	CreatedAt     time.Time `json:"created_at"     gorm:"index:idx_conv,priority:3"`
}

// TableName returns the database table name for ConversationRecord.
func (ConversationRecord) TableName() string { return "conversation_entries" }

// BotResponse is the terminal result of the message pipeline for one inbound
// message. Escalation is a successful outcome, not an error: ShouldEscalate
// simply flags that a human must take over.
type BotResponse struct {
	Response         string `json:"response"`
	ShouldEscalate   bool   `json:"should_escalate"`
	EscalationReason string `json:"escalation_reason,omitempty"`
	ConversationID   string `json:"conversation_id"`
	Timestamp        string `json:"timestamp"`
}
