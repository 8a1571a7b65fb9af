package port

import (
	"context"

	"github.com/google/uuid"

	"invoicegen/internal/invoice"
)

// WorkspaceRepository persists one template workspace per user.
// Get returns domain.ErrNotFound when the user has no workspace yet.
type WorkspaceRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*invoice.Workspace, error)
	Save(ctx context.Context, userID uuid.UUID, ws *invoice.Workspace) error
}
