package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

// UsageSummary reports a user's export counters against their plan.
type UsageSummary struct {
	domain.UsageCounter
	Plan         domain.Plan `json:"plan"`
	MonthlyLimit int         `json:"monthly_limit"` // 0 means unlimited
	Remaining    *int        `json:"remaining"`
}

// UsageService defines the export quota contract.
type UsageService interface {
	Get(ctx context.Context, userID uuid.UUID) (*UsageSummary, error)
	Consume(ctx context.Context, userID uuid.UUID) (*UsageSummary, error)
}

type usageService struct {
	userRepo  port.UserRepository
	usageRepo port.UsageRepository
	cfg       config.FreeTierConfig
	now       func() time.Time
}

// NewUsageService creates a new UsageService.
func NewUsageService(userRepo port.UserRepository, usageRepo port.UsageRepository, cfg config.FreeTierConfig) UsageService {
	return &usageService{userRepo: userRepo, usageRepo: usageRepo, cfg: cfg, now: time.Now}
}

func (s *usageService) Get(ctx context.Context, userID uuid.UUID) (*UsageSummary, error) {
	plan, limit, err := s.planLimit(ctx, userID)
	if err != nil {
		return nil, err
	}
	counter, err := s.usageRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	// The stored counter only rolls over on the next export.
	if counter.LastDownloadDate != nil && !sameMonth(*counter.LastDownloadDate, s.now()) {
		counter.DownloadsThisMonth = 0
	}
	return summarize(counter, plan, limit), nil
}

// Consume records one export, failing with domain.ErrQuotaExceeded when the
// free allowance for the month is used up.
func (s *usageService) Consume(ctx context.Context, userID uuid.UUID) (*UsageSummary, error) {
	plan, limit, err := s.planLimit(ctx, userID)
	if err != nil {
		return nil, err
	}
	counter, err := s.usageRepo.CheckAndIncrement(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return summarize(counter, plan, limit), nil
}

func (s *usageService) planLimit(ctx context.Context, userID uuid.UUID) (domain.Plan, int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", 0, err
	}
	plan := user.EffectivePlan(s.now())
	if plan.Paid() {
		return plan, 0, nil
	}
	return plan, s.cfg.MonthlyDownloads, nil
}

func summarize(c *domain.UsageCounter, plan domain.Plan, limit int) *UsageSummary {
	sum := &UsageSummary{UsageCounter: *c, Plan: plan, MonthlyLimit: limit}
	if limit > 0 {
		remaining := limit - c.DownloadsThisMonth
		if remaining < 0 {
			remaining = 0
		}
		sum.Remaining = &remaining
	}
	return sum
}

func sameMonth(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.Month() == b.Month()
}
