// Package jsonfile persists workspaces in a single JSON document on disk.
// It backs the command-line tool, which runs without a database.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"invoicegen/internal/domain"
	"invoicegen/internal/invoice"
	"invoicegen/internal/port"
)

type workspaceRepo struct {
	filePath string
	data     map[uuid.UUID]*invoice.Workspace
	mu       sync.RWMutex
}

// NewWorkspaceRepo loads filePath if it exists. A missing file is created on first save.
func NewWorkspaceRepo(filePath string) (port.WorkspaceRepository, error) {
	r := &workspaceRepo{
		filePath: filePath,
		data:     make(map[uuid.UUID]*invoice.Workspace),
	}
	if err := r.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("jsonfile.NewWorkspaceRepo: %w", err)
	}
	return r, nil
}

func (r *workspaceRepo) Get(_ context.Context, userID uuid.UUID) (*invoice.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, ok := r.data[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ws.Clone(), nil
}

func (r *workspaceRepo) Save(_ context.Context, userID uuid.UUID, ws *invoice.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, had := r.data[userID]
	r.data[userID] = ws.Clone()
	if err := r.save(); err != nil {
		if had {
			r.data[userID] = prev
		} else {
			delete(r.data, userID)
		}
		return fmt.Errorf("jsonfile.Save: %w", err)
	}
	return nil
}

func (r *workspaceRepo) load() error {
	raw, err := os.ReadFile(r.filePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, &r.data)
}

func (r *workspaceRepo) save() error {
	raw, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(r.filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := r.filePath + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.filePath)
}
