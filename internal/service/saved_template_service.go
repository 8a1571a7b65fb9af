package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"invoicegen/internal/domain"
	"invoicegen/internal/invoice"
	"invoicegen/internal/port"
)

// CreateSavedTemplateInput is the DTO for saving the active record as a template.
type CreateSavedTemplateInput struct {
	Name string `json:"name" binding:"required"`
}

// SavedTemplateService defines the saved-template contract.
type SavedTemplateService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateSavedTemplateInput) (*domain.SavedTemplate, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.SavedTemplate, error)
	Apply(ctx context.Context, userID, templateID uuid.UUID) (*WorkspaceView, error)
	Delete(ctx context.Context, userID, templateID uuid.UUID) error
}

type savedTemplateService struct {
	repo      port.SavedTemplateRepository
	workspace WorkspaceService
}

// NewSavedTemplateService creates a new SavedTemplateService.
func NewSavedTemplateService(repo port.SavedTemplateRepository, workspace WorkspaceService) SavedTemplateService {
	return &savedTemplateService{repo: repo, workspace: workspace}
}

func (s *savedTemplateService) Create(ctx context.Context, userID uuid.UUID, input CreateSavedTemplateInput) (*domain.SavedTemplate, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name: %w", domain.ErrMissingField)
	}

	view, err := s.workspace.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(view.State)
	if err != nil {
		return nil, fmt.Errorf("savedTemplate.Create encode: %w", err)
	}

	t := &domain.SavedTemplate{
		UserID:     userID,
		Name:       name,
		TemplateID: view.ActiveTemplate,
		Data:       raw,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *savedTemplateService) List(ctx context.Context, userID uuid.UUID) ([]domain.SavedTemplate, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Apply loads the snapshot into the workspace under its template id and activates it.
func (s *savedTemplateService) Apply(ctx context.Context, userID, templateID uuid.UUID) (*WorkspaceView, error) {
	t, err := s.repo.GetByID(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}
	var state invoice.TemplateState
	if err := json.Unmarshal(t.Data, &state); err != nil {
		return nil, fmt.Errorf("savedTemplate.Apply decode: %w", err)
	}
	return s.workspace.Replace(ctx, userID, t.TemplateID, &state)
}

func (s *savedTemplateService) Delete(ctx context.Context, userID, templateID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, templateID)
}
