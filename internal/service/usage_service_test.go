package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/service"
	"invoicegen/mocks"
)

func setupUsageService() (service.UsageService, *mocks.MockUserRepo, *mocks.MockUsageRepo) {
	userRepo := new(mocks.MockUserRepo)
	usageRepo := new(mocks.MockUsageRepo)
	svc := service.NewUsageService(userRepo, usageRepo, config.FreeTierConfig{MonthlyDownloads: 3})
	return svc, userRepo, usageRepo
}

func TestUsageService_Get_FreePlan(t *testing.T) {
	svc, userRepo, usageRepo := setupUsageService()
	userID := uuid.New()
	now := time.Now()

	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID, Plan: domain.PlanFree}, nil)
	usageRepo.On("Get", mock.Anything, userID).Return(&domain.UsageCounter{
		UserID: userID, DownloadsThisMonth: 2, TotalDownloads: 9, LastDownloadDate: &now,
	}, nil)

	sum, err := svc.Get(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, domain.PlanFree, sum.Plan)
	assert.Equal(t, 3, sum.MonthlyLimit)
	require.NotNil(t, sum.Remaining)
	assert.Equal(t, 1, *sum.Remaining)
	assert.Equal(t, 9, sum.TotalDownloads)
}

func TestUsageService_Get_PreviousMonthShowsZero(t *testing.T) {
	svc, userRepo, usageRepo := setupUsageService()
	userID := uuid.New()
	last := time.Date(2020, 3, 31, 23, 0, 0, 0, time.UTC)

	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID, Plan: domain.PlanFree}, nil)
	usageRepo.On("Get", mock.Anything, userID).Return(&domain.UsageCounter{
		UserID: userID, DownloadsThisMonth: 3, TotalDownloads: 3, LastDownloadDate: &last,
	}, nil)

	sum, err := svc.Get(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, 0, sum.DownloadsThisMonth)
	assert.Equal(t, 3, *sum.Remaining)
	assert.Equal(t, 3, sum.TotalDownloads)
}

func TestUsageService_Get_PaidPlanUnlimited(t *testing.T) {
	svc, userRepo, usageRepo := setupUsageService()
	userID := uuid.New()

	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID, Plan: domain.PlanLifetime}, nil)
	usageRepo.On("Get", mock.Anything, userID).Return(&domain.UsageCounter{UserID: userID, DownloadsThisMonth: 50}, nil)

	sum, err := svc.Get(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, 0, sum.MonthlyLimit)
	assert.Nil(t, sum.Remaining)
}

func TestUsageService_Consume_PassesLimitByPlan(t *testing.T) {
	tests := []struct {
		name      string
		user      domain.User
		wantLimit int
	}{
		{"free", domain.User{Plan: domain.PlanFree}, 3},
		{"monthly", domain.User{Plan: domain.PlanMonthly}, 0},
		{"lapsed monthly", domain.User{Plan: domain.PlanMonthly, PlanExpiresAt: ptrTime(time.Now().Add(-time.Hour))}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, usageRepo := setupUsageService()
			userID := uuid.New()
			user := tt.user
			user.ID = userID

			userRepo.On("GetByID", mock.Anything, userID).Return(&user, nil)
			usageRepo.On("CheckAndIncrement", mock.Anything, userID, tt.wantLimit).
				Return(&domain.UsageCounter{UserID: userID, DownloadsThisMonth: 1, TotalDownloads: 1}, nil)

			sum, err := svc.Consume(context.Background(), userID)

			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, sum.MonthlyLimit)
			usageRepo.AssertExpectations(t)
		})
	}
}

func TestUsageService_Consume_QuotaExceeded(t *testing.T) {
	svc, userRepo, usageRepo := setupUsageService()
	userID := uuid.New()

	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID, Plan: domain.PlanFree}, nil)
	usageRepo.On("CheckAndIncrement", mock.Anything, userID, 3).Return(nil, domain.ErrQuotaExceeded)

	sum, err := svc.Consume(context.Background(), userID)

	assert.Nil(t, sum)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

func ptrTime(t time.Time) *time.Time { return &t }
