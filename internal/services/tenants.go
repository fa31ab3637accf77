package services

import (
	"context"
	"errors"
	"strings"

	"github.com/leikymain/whatsapp-bot-backend/internal/domain"
	"github.com/leikymain/whatsapp-bot-backend/internal/repo"
)

// ConfigStore is the persistence contract for tenant configurations.
// Implementations must return repo.ErrNotFound for unknown tenants and hand
// out copies the caller may mutate freely.
type ConfigStore interface {
	Get(ctx context.Context, tenantID string) (domain.TenantConfig, error)
	Set(ctx context.Context, cfg domain.TenantConfig) error
	Count(ctx context.Context) (int, error)
}

// TenantService owns tenant configuration: explicit configuration calls,
// reads, template listing, and the create-from-template path used when an
// unknown tenant sends its first message.
type TenantService struct {
	Store ConfigStore

	// DefaultBusinessName is applied when a tenant is bootstrapped from the
	// default template.
	DefaultBusinessName string
}

// NewTenantService constructs a TenantService with the demo business name
// used for implicitly created tenants.
func NewTenantService(store ConfigStore) *TenantService {
	return &TenantService{
		Store:               store,
		DefaultBusinessName: "Demo Business",
	}
}

// Configure replaces the tenant's configuration wholesale. The tenant id is
// taken from cfg and must be non-blank; there is no partial merge.
func (s *TenantService) Configure(ctx context.Context, cfg domain.TenantConfig) error {
	if strings.TrimSpace(cfg.TenantID) == "" {
		return ErrInvalidTenantID
	}
	return s.Store.Set(ctx, cfg)
}

// Get returns the tenant's configuration or ErrTenantNotFound. Unlike
// GetOrCreate this never creates anything: read paths surface the miss.
func (s *TenantService) Get(ctx context.Context, tenantID string) (domain.TenantConfig, error) {
	cfg, err := s.Store.Get(ctx, tenantID)
	if errors.Is(err, repo.ErrNotFound) {
		return domain.TenantConfig{}, ErrTenantNotFound
	}
	return cfg, err
}

// GetOrCreate returns the existing configuration, or bootstraps one from the
// default template on first contact. The template is deep-copied; only
// tenant id and business name are overridden. Calling it twice for a new
// tenant yields the same config both times.
func (s *TenantService) GetOrCreate(ctx context.Context, tenantID string) (domain.TenantConfig, error) {
	cfg, err := s.Store.Get(ctx, tenantID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return domain.TenantConfig{}, err
	}

	tpl, _ := domain.Template(domain.DefaultTemplateID)
	tpl.TenantID = tenantID
	tpl.BusinessName = s.DefaultBusinessName
	if err := s.Store.Set(ctx, tpl); err != nil {
		return domain.TenantConfig{}, err
	}
	return tpl, nil
}

// TemplateEntry pairs a template identifier with its full content for the
// template listing endpoint.
type TemplateEntry struct {
	ID       string              `json:"id"`
	Template domain.TenantConfig `json:"template"`
}

// Templates returns all business templates in their fixed order, with full
// contents.
func (s *TenantService) Templates() []TemplateEntry {
	ids := domain.TemplateIDs()
	out := make([]TemplateEntry, 0, len(ids))
	for _, id := range ids {
		tpl, _ := domain.Template(id)
		out = append(out, TemplateEntry{ID: id, Template: tpl})
	}
	return out
}
