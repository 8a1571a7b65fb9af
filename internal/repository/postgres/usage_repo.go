package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type usageRepo struct {
	db *sqlx.DB
}

// NewUsageRepo creates a new PostgreSQL-backed UsageRepository.
func NewUsageRepo(db *sqlx.DB) port.UsageRepository {
	return &usageRepo{db: db}
}

func (r *usageRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.UsageCounter, error) {
	var c domain.UsageCounter
	err := r.db.GetContext(ctx, &c, "SELECT * FROM usage_counters WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.UsageCounter{UserID: userID}, nil
		}
		return nil, fmt.Errorf("usageRepo.Get: %w", err)
	}
	return &c, nil
}

func (r *usageRepo) CheckAndIncrement(ctx context.Context, userID uuid.UUID, limit int) (*domain.UsageCounter, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO usage_counters (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return nil, fmt.Errorf("usageRepo.CheckAndIncrement seed: %w", err)
	}

	// Roll the monthly counter over when the last export fell in an earlier
	// calendar month, then increment only while under the limit.
	var c domain.UsageCounter
	err = r.db.GetContext(ctx, &c, `
		UPDATE usage_counters
		SET
			downloads_this_month = CASE
				WHEN last_download_date IS NULL
					OR date_trunc('month', last_download_date) < date_trunc('month', NOW()) THEN 1
				ELSE downloads_this_month + 1
			END,
			total_downloads = total_downloads + 1,
			last_download_date = NOW()
		WHERE user_id = $1
		  AND (
				$2::int = 0
				OR last_download_date IS NULL
				OR date_trunc('month', last_download_date) < date_trunc('month', NOW())
				OR downloads_this_month < $2::int
		  )
		RETURNING user_id, downloads_this_month, total_downloads, last_download_date`,
		userID, limit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuotaExceeded
		}
		return nil, fmt.Errorf("usageRepo.CheckAndIncrement: %w", err)
	}
	return &c, nil
}
