package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/mentorhub/contextd/internal/core"
	"github.com/mentorhub/contextd/pkg/conv"
	"github.com/mentorhub/contextd/pkg/log"
)

// Manager owns the memory write path: content sanitization, persistence,
// and cache invalidation so the next context build sees fresh data.
type Manager struct {
	repo        core.MemoryRepository
	invalidator core.Invalidator
}

func NewManager(repo core.MemoryRepository, invalidator core.Invalidator) *Manager {
	return &Manager{
		repo:        repo,
		invalidator: invalidator,
	}
}

// Save stores a new memory record. Content may arrive from rich-text
// surfaces, so markup is flattened before persisting.
func (m *Manager) Save(ctx context.Context, rec core.MemoryRecord) (int64, error) {
	rec.Content = conv.HTMLToPlainText(rec.Content)
	rec.Subject = conv.HTMLToPlainText(rec.Subject)
	if strings.TrimSpace(rec.Content) == "" {
		return 0, fmt.Errorf("memory content is empty after sanitization")
	}
	if rec.Type == "" {
		rec.Type = core.MemoryFactualStatement
	}

	id, err := m.repo.Add(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("save memory: %w", err)
	}

	m.invalidator.Invalidate(rec.TenantID)
	log.FromCtx(ctx).Debug().
		Str("tenant", rec.TenantID).
		Str("type", string(rec.Type)).
		Int64("id", id).
		Msg("memory saved")
	return id, nil
}

// Delete soft-deletes a record and drops the tenant's cached context.
func (m *Manager) Delete(ctx context.Context, tenantID string, id int64) error {
	if err := m.repo.SoftDelete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("delete memory: %w", err)
	}

	m.invalidator.Invalidate(tenantID)
	log.FromCtx(ctx).Debug().Str("tenant", tenantID).Int64("id", id).Msg("memory deleted")
	return nil
}
