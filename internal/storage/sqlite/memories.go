package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mentorhub/contextd/internal/core"
	"github.com/mentorhub/contextd/pkg/log"
)

type MemoriesRepo struct {
	db *sql.DB
}

func NewMemoriesRepo(db *sql.DB) *MemoriesRepo {
	return &MemoriesRepo{db: db}
}

func (r *MemoriesRepo) Add(ctx context.Context, rec core.MemoryRecord) (int64, error) {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO memories (tenant_id, type, content, subject, attributed_to, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.TenantID, string(rec.Type), rec.Content, rec.Subject, rec.AttributedTo, createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert memory: %w", err)
	}

	return res.LastInsertId()
}

func (r *MemoriesRepo) SoftDelete(ctx context.Context, tenantID string, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE memories SET deleted = 1 WHERE tenant_id = ? AND id = ? AND deleted = 0`,
		tenantID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete memory: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *MemoriesRepo) GetRecent(ctx context.Context, tenantID string, limit int) ([]core.MemoryRecord, error) {
	query := `
		SELECT id, tenant_id, type, content, subject, attributed_to, created_at
		FROM memories
		WHERE tenant_id = ? AND deleted = 0
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}
	defer rows.Close()

	var records []core.MemoryRecord
	for rows.Next() {
		var rec core.MemoryRecord
		var typ string
		if err := rows.Scan(&rec.ID, &rec.TenantID, &typ, &rec.Content, &rec.Subject, &rec.AttributedTo, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan memory: %w", err)
		}
		rec.Type = core.MemoryType(typ)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Str("tenant", tenantID).Int("count", len(records)).Msg("loaded memory records")
	return records, nil
}
