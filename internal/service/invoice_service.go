package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"invoicegen/internal/domain"
	"invoicegen/internal/export"
	"invoicegen/internal/invoice"
	"invoicegen/internal/port"
)

const exportPageSize = 100

// InvoiceService defines the saved-invoice contract.
type InvoiceService interface {
	Save(ctx context.Context, userID uuid.UUID) (*domain.Invoice, error)
	GetByID(ctx context.Context, userID, invoiceID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error)
	Delete(ctx context.Context, userID, invoiceID uuid.UUID) error
	Load(ctx context.Context, userID, invoiceID uuid.UUID) (*WorkspaceView, error)
	Export(ctx context.Context, userID uuid.UUID, format export.Format, w io.Writer) error
}

type invoiceService struct {
	repo      port.InvoiceRepository
	workspace WorkspaceService
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(repo port.InvoiceRepository, workspace WorkspaceService) InvoiceService {
	return &invoiceService{repo: repo, workspace: workspace}
}

// Save snapshots the active record of the user's workspace.
func (s *invoiceService) Save(ctx context.Context, userID uuid.UUID) (*domain.Invoice, error) {
	view, err := s.workspace.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := validateState(view.State); err != nil {
		return nil, err
	}

	stateJSON, err := json.Marshal(view.State)
	if err != nil {
		return nil, fmt.Errorf("invoice.Save encode state: %w", err)
	}
	dataJSON, err := json.Marshal(view.Data)
	if err != nil {
		return nil, fmt.Errorf("invoice.Save encode data: %w", err)
	}

	inv := &domain.Invoice{
		UserID:        userID,
		TemplateID:    view.ActiveTemplate,
		InvoiceNumber: view.Data.InvoiceNumber,
		ClientName:    view.Data.Client.Name,
		Currency:      view.Data.Currency,
		Subtotal:      view.Data.Subtotal,
		TaxAmount:     view.Data.TaxAmount,
		Total:         view.Data.Total,
		State:         stateJSON,
		Data:          dataJSON,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) GetByID(ctx context.Context, userID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return s.repo.GetByID(ctx, userID, invoiceID)
}

func (s *invoiceService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error) {
	return s.repo.ListByUser(ctx, userID, offset, limit)
}

func (s *invoiceService) Delete(ctx context.Context, userID, invoiceID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, invoiceID)
}

// Load copies a saved invoice's state back into the workspace under its template.
func (s *invoiceService) Load(ctx context.Context, userID, invoiceID uuid.UUID) (*WorkspaceView, error) {
	inv, err := s.repo.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	var state invoice.TemplateState
	if err := json.Unmarshal(inv.State, &state); err != nil {
		return nil, fmt.Errorf("invoice.Load decode: %w", err)
	}
	return s.workspace.Replace(ctx, userID, inv.TemplateID, &state)
}

// Export streams the user's full invoice history in format.
func (s *invoiceService) Export(ctx context.Context, userID uuid.UUID, format export.Format, w io.Writer) error {
	var all []domain.Invoice
	for offset := 0; ; offset += exportPageSize {
		page, total, err := s.repo.ListByUser(ctx, userID, offset, exportPageSize)
		if err != nil {
			return err
		}
		all = append(all, page...)
		if len(page) < exportPageSize || len(all) >= total {
			break
		}
	}

	switch format {
	case export.FormatXLSX:
		return export.WriteXLSX(w, all)
	case export.FormatCSV:
		if _, err := w.Write(export.BOM); err != nil {
			return fmt.Errorf("invoice.Export: %w", err)
		}
		cw := export.NewWriter(w)
		if err := cw.WriteHeader(); err != nil {
			return fmt.Errorf("invoice.Export: %w", err)
		}
		if err := cw.WriteInvoices(all); err != nil {
			return fmt.Errorf("invoice.Export: %w", err)
		}
		cw.Flush()
		return cw.Error()
	}
	return domain.ErrInvalidExportFormat
}

func validateState(state *invoice.TemplateState) error {
	if issues := invoice.Validate(state); len(issues) > 0 {
		return &domain.ValidationError{Issues: issues}
	}
	return nil
}
