package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"invoicegen/internal/domain"
	"invoicegen/internal/invoice"
	"invoicegen/internal/port"
)

// WorkspaceView is the state of a user's active template and its derived data.
type WorkspaceView struct {
	ActiveTemplate string                 `json:"active_template"`
	State          *invoice.TemplateState `json:"state"`
	Data           invoice.InvoiceData    `json:"data"`
}

// AddCustomFieldInput is the DTO for adding a custom field.
type AddCustomFieldInput struct {
	Type    invoice.FieldType `json:"type" binding:"required"`
	Label   string            `json:"label" binding:"required"`
	Section string            `json:"section"`
	Options []string          `json:"options"`
}

// WorkspaceService owns each user's template workspace. Every mutation loads the
// stored workspace, applies the change and saves it before returning.
type WorkspaceService interface {
	Get(ctx context.Context, userID uuid.UUID) (*WorkspaceView, error)
	UpdateTemplateState(ctx context.Context, userID uuid.UUID, patch invoice.Patch) (*WorkspaceView, error)
	ToggleElement(ctx context.Context, userID uuid.UUID, element invoice.Element) (*WorkspaceView, error)
	AddInvoiceItem(ctx context.Context, userID uuid.UUID) (*WorkspaceView, error)
	RemoveInvoiceItem(ctx context.Context, userID uuid.UUID, itemID int) (*WorkspaceView, error)
	UpdateInvoiceItem(ctx context.Context, userID uuid.UUID, itemID int, patch invoice.ItemPatch) (*WorkspaceView, error)
	AddCustomField(ctx context.Context, userID uuid.UUID, input AddCustomFieldInput) (*WorkspaceView, error)
	UpdateCustomField(ctx context.Context, userID uuid.UUID, fieldID string, patch invoice.CustomFieldPatch) (*WorkspaceView, error)
	RemoveCustomField(ctx context.Context, userID uuid.UUID, fieldID string) (*WorkspaceView, error)
	SwitchTemplate(ctx context.Context, userID uuid.UUID, templateID string) (*WorkspaceView, error)
	ResetTemplate(ctx context.Context, userID uuid.UUID, templateID string) (*WorkspaceView, error)
	Replace(ctx context.Context, userID uuid.UUID, templateID string, state *invoice.TemplateState) (*WorkspaceView, error)
}

type workspaceService struct {
	repo         port.WorkspaceRepository
	settingsRepo port.SettingsRepository
	hub          *PreviewHub

	locks sync.Map // uuid.UUID -> *sync.Mutex
}

// NewWorkspaceService creates a new WorkspaceService. settingsRepo and hub may be nil.
func NewWorkspaceService(
	repo port.WorkspaceRepository,
	settingsRepo port.SettingsRepository,
	hub *PreviewHub,
) WorkspaceService {
	return &workspaceService{
		repo:         repo,
		settingsRepo: settingsRepo,
		hub:          hub,
	}
}

func (s *workspaceService) Get(ctx context.Context, userID uuid.UUID) (*WorkspaceView, error) {
	unlock := s.lock(userID)
	defer unlock()

	ws, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return viewOf(ws), nil
}

func (s *workspaceService) UpdateTemplateState(ctx context.Context, userID uuid.UUID, patch invoice.Patch) (*WorkspaceView, error) {
	return s.mutate(ctx, userID, func(ws *invoice.Workspace) error {
		return ws.UpdateTemplateState(patch)
	})
}

func (s *workspaceService) ToggleElement(ctx context.Context, userID uuid.UUID, element invoice.Element) (*WorkspaceView, error) {
	return s.mutate(ctx, userID, func(ws *invoice.Workspace) error {
		return ws.ToggleElement(element)
	})
}

func (s *workspaceService) AddInvoiceItem(ctx context.Context, userID uuid.UUID) (*WorkspaceView, error) {
	return s.mutate(ctx, userID, func(ws *invoice.Workspace) error {
		ws.AddInvoiceItem()
		return nil
	})
}

func (s *workspaceService) RemoveInvoiceItem(ctx context.Context, userID uuid.UUID, itemID int) (*WorkspaceView, error) {
	return s.mutate(ctx, userID, func(ws *invoice.Workspace) error {
		ws.RemoveInvoiceItem(itemID)
		return nil
	})
}

func (s *workspaceService) UpdateInvoiceItem(ctx context.Context, userID uuid.UUID, itemID int, patch invoice.ItemPatch) (*WorkspaceView, error) {
	return s.mutate(ctx, userID, func(ws *invoice.Workspace) error {
		ws.UpdateInvoiceItem(itemID, patch)
		return nil
	})
}

func (s *workspaceService) AddCustomField(ctx context.Context, userID uuid.UUID, input AddCustomFieldInput) (*WorkspaceView, error) {
	return s.mutate(ctx, userID, func(ws *invoice.Workspace) error {
		_, err := ws.AddCustomField(input.Type, input.Label, input.Section, input.Options)
		return err
	})
}

func (s *workspaceService) UpdateCustomField(ctx context.Context, userID uuid.UUID, fieldID string, patch invoice.CustomFieldPatch) (*WorkspaceView, error) {
	return s.mutate(ctx, userID, func(ws *invoice.Workspace) error {
		return ws.UpdateCustomField(fieldID, patch)
	})
}

func (s *workspaceService) RemoveCustomField(ctx context.Context, userID uuid.UUID, fieldID string) (*WorkspaceView, error) {
	return s.mutate(ctx, userID, func(ws *invoice.Workspace) error {
		ws.RemoveCustomField(fieldID)
		return nil
	})
}

func (s *workspaceService) SwitchTemplate(ctx context.Context, userID uuid.UUID, templateID string) (*WorkspaceView, error) {
	return s.mutate(ctx, userID, func(ws *invoice.Workspace) error {
		ws.SwitchTemplate(templateID)
		return nil
	})
}

func (s *workspaceService) ResetTemplate(ctx context.Context, userID uuid.UUID, templateID string) (*WorkspaceView, error) {
	return s.mutate(ctx, userID, func(ws *invoice.Workspace) error {
		ws.ResetTemplate(templateID)
		return nil
	})
}

func (s *workspaceService) Replace(ctx context.Context, userID uuid.UUID, templateID string, state *invoice.TemplateState) (*WorkspaceView, error) {
	if state == nil {
		return nil, fmt.Errorf("workspace.Replace: %w", domain.ErrInvalidInvoice)
	}
	return s.mutate(ctx, userID, func(ws *invoice.Workspace) error {
		return ws.Replace(templateID, state)
	})
}

func (s *workspaceService) mutate(ctx context.Context, userID uuid.UUID, apply func(*invoice.Workspace) error) (*WorkspaceView, error) {
	unlock := s.lock(userID)
	defer unlock()

	ws, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := apply(ws); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, userID, ws); err != nil {
		return nil, fmt.Errorf("workspace.save: %w", err)
	}

	view := viewOf(ws)
	if s.hub != nil {
		s.hub.Publish(userID, view.Data)
	}
	return view, nil
}

// load returns the stored workspace, seeding and saving a fresh one on first use.
func (s *workspaceService) load(ctx context.Context, userID uuid.UUID) (*invoice.Workspace, error) {
	ws, err := s.repo.Get(ctx, userID)
	if err == nil {
		return ws, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("workspace.load: %w", err)
	}

	ws = s.seed(ctx, userID)
	if err := s.repo.Save(ctx, userID, ws); err != nil {
		return nil, fmt.Errorf("workspace.seed: %w", err)
	}
	return ws, nil
}

func (s *workspaceService) seed(ctx context.Context, userID uuid.UUID) *invoice.Workspace {
	if s.settingsRepo == nil {
		return invoice.NewWorkspace(invoice.TemplateStandard)
	}
	settings, err := s.settingsRepo.Get(ctx, userID)
	if err != nil {
		return invoice.NewWorkspace(invoice.TemplateStandard)
	}

	ws := invoice.NewWorkspace(settings.DefaultTemplate)
	if err := ws.UpdateTemplateState(settingsPatch(settings)); err != nil {
		return invoice.NewWorkspace(settings.DefaultTemplate)
	}
	return ws
}

// settingsPatch overlays the non-empty profile fields of settings.
func settingsPatch(settings *domain.UserSettings) invoice.Patch {
	var p invoice.Patch
	nonEmpty := func(v string) *string {
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return &v
	}
	p.CompanyName = nonEmpty(settings.CompanyName)
	p.CompanyAddress = nonEmpty(settings.CompanyAddress)
	p.CompanyEmail = nonEmpty(settings.CompanyEmail)
	p.CompanyPhone = nonEmpty(settings.CompanyPhone)
	p.Currency = nonEmpty(settings.Currency)
	p.LogoURL = nonEmpty(settings.LogoURL)
	taxRate := settings.TaxRate
	p.TaxRate = &taxRate
	return p
}

func (s *workspaceService) lock(userID uuid.UUID) func() {
	v, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func viewOf(ws *invoice.Workspace) *WorkspaceView {
	return &WorkspaceView{
		ActiveTemplate: ws.ActiveID,
		State:          ws.Snapshot(),
		Data:           ws.Data(),
	}
}
