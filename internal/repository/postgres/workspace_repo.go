package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/invoice"
	"invoicegen/internal/port"
)

type workspaceRepo struct {
	db *sqlx.DB
}

// NewWorkspaceRepo creates a WorkspaceRepository storing each workspace as JSONB.
func NewWorkspaceRepo(db *sqlx.DB) port.WorkspaceRepository {
	return &workspaceRepo{db: db}
}

func (r *workspaceRepo) Get(ctx context.Context, userID uuid.UUID) (*invoice.Workspace, error) {
	var raw []byte
	err := r.db.GetContext(ctx, &raw, "SELECT data FROM workspaces WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("workspaceRepo.Get: %w", err)
	}
	var ws invoice.Workspace
	if err := json.Unmarshal(raw, &ws); err != nil {
		return nil, fmt.Errorf("workspaceRepo.Get decode: %w", err)
	}
	return &ws, nil
}

func (r *workspaceRepo) Save(ctx context.Context, userID uuid.UUID, ws *invoice.Workspace) error {
	raw, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("workspaceRepo.Save encode: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO workspaces (user_id, data, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		userID, raw)
	if err != nil {
		return fmt.Errorf("workspaceRepo.Save: %w", err)
	}
	return nil
}
