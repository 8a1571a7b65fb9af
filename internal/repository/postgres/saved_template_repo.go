package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type savedTemplateRepo struct {
	db *sqlx.DB
}

// NewSavedTemplateRepo creates a new PostgreSQL-backed SavedTemplateRepository.
func NewSavedTemplateRepo(db *sqlx.DB) port.SavedTemplateRepository {
	return &savedTemplateRepo{db: db}
}

func (r *savedTemplateRepo) Create(ctx context.Context, t *domain.SavedTemplate) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO saved_templates (id, user_id, name, template_id, data, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.UserID, t.Name, t.TemplateID, []byte(t.Data), t.CreatedAt)
	if err != nil {
		return fmt.Errorf("savedTemplateRepo.Create: %w", err)
	}
	return nil
}

func (r *savedTemplateRepo) GetByID(ctx context.Context, userID, templateID uuid.UUID) (*domain.SavedTemplate, error) {
	var t domain.SavedTemplate
	err := r.db.GetContext(ctx, &t,
		"SELECT * FROM saved_templates WHERE id = $1 AND user_id = $2", templateID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("savedTemplateRepo.GetByID: %w", err)
	}
	return &t, nil
}

func (r *savedTemplateRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedTemplate, error) {
	var templates []domain.SavedTemplate
	err := r.db.SelectContext(ctx, &templates,
		"SELECT * FROM saved_templates WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("savedTemplateRepo.ListByUser: %w", err)
	}
	return templates, nil
}

func (r *savedTemplateRepo) Delete(ctx context.Context, userID, templateID uuid.UUID) error {
	return execOne(ctx, r.db, "savedTemplateRepo.Delete", domain.ErrNotFound,
		"DELETE FROM saved_templates WHERE id = $1 AND user_id = $2", templateID, userID)
}
