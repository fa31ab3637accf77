// Package repo – SQLite-backed conversation store.
//
// Deployments that set DB_PATH swap the in-memory conversation store for this
// one without touching pipeline logic; both satisfy the same store contract.
package repo

import (
	"context"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/leikymain/whatsapp-bot-backend/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database, applies PRAGMAs, and
// installs the GORM OpenTelemetry plugin so store queries appear in traces.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if the parent directory does not exist (instead of a cryptic
	// sqlite "out of memory (14)" later).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	return db, nil
}

// AutoMigrate creates or updates the conversation schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.ConversationRecord{})
}

// SQLiteConversationStore persists conversation history in SQLite via GORM.
// Append order is preserved by the (created_at, id) ordering on reads;
// concurrent appends for one key serialize on the SQLite write lock.
type SQLiteConversationStore struct {
	DB *gorm.DB
}

// NewSQLiteConversationStore wraps an open GORM handle.
func NewSQLiteConversationStore(db *gorm.DB) *SQLiteConversationStore {
	return &SQLiteConversationStore{DB: db}
}

// Append inserts one utterance row and returns the entry as stored.
func (s *SQLiteConversationStore) Append(ctx context.Context, tenantID, counterpartID, role, content string) (domain.ConversationEntry, error) {
	rec := &domain.ConversationRecord{
		ID:            uuid.NewString(),
		TenantID:      tenantID,
		CounterpartID: counterpartID,
		Role:          role,
		Content:       content,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.DB.WithContext(ctx).Create(rec).Error; err != nil {
		return domain.ConversationEntry{}, err
	}
	return domain.ConversationEntry{
		Role:      rec.Role,
		Content:   rec.Content,
		Timestamp: rec.CreatedAt.Format(time.RFC3339),
	}, nil
}

// History returns the full ordered history for the key, empty if none.
func (s *SQLiteConversationStore) History(ctx context.Context, tenantID, counterpartID string) ([]domain.ConversationEntry, error) {
	var recs []domain.ConversationRecord
	err := s.DB.WithContext(ctx).
		Where("tenant_id = ? AND counterpart_id = ?", tenantID, counterpartID).
		Order("created_at ASC, id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.ConversationEntry, 0, len(recs))
	for _, r := range recs {
		out = append(out, domain.ConversationEntry{
			Role:      r.Role,
			Content:   r.Content,
			Timestamp: r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// Clear deletes all history rows for the key. Idempotent.
func (s *SQLiteConversationStore) Clear(ctx context.Context, tenantID, counterpartID string) error {
	return s.DB.WithContext(ctx).
		Where("tenant_id = ? AND counterpart_id = ?", tenantID, counterpartID).
		Delete(&domain.ConversationRecord{}).Error
}

// Count returns the number of distinct active conversations.
func (s *SQLiteConversationStore) Count(ctx context.Context) (int, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Raw("SELECT COUNT(DISTINCT tenant_id || '_' || counterpart_id) FROM conversation_entries").
		Scan(&n).Error
	return int(n), err
}
