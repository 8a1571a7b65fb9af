package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/service"
	"invoicegen/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "invoicegen-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func TestAuthService_Signup_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@test.com" && u.FullName == "New User" && u.Plan == domain.PlanFree && u.IsActive
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = uuid.New()
	}).Return(nil)

	user, tokens, err := svc.Signup(context.Background(), service.SignupInput{
		Email:    "  New@Test.com ",
		Password: "password123",
		FullName: " New User ",
	})

	require.NoError(t, err)
	assert.Equal(t, "new@test.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateEmail)

	user, tokens, err := svc.Signup(context.Background(), service.SignupInput{
		Email: "dup@test.com", Password: "password123", FullName: "Dup",
	})

	assert.Nil(t, user)
	assert.Nil(t, tokens)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_Signin_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "user@test.com",
		PasswordHash: hashPassword("password123"),
		IsActive:     true,
	}
	userRepo.On("GetByEmail", mock.Anything, "user@test.com").Return(user, nil)

	result, err := svc.Signin(context.Background(), service.LoginInput{
		Email:    "User@test.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "user@test.com", claims.Email)
}

func TestAuthService_Signin_InvalidPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("GetByEmail", mock.Anything, "user@test.com").Return(&domain.User{
		ID:           uuid.New(),
		Email:        "user@test.com",
		PasswordHash: hashPassword("correct-password"),
		IsActive:     true,
	}, nil)

	result, err := svc.Signin(context.Background(), service.LoginInput{Email: "user@test.com", Password: "wrong-password"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Signin_UnknownEmail(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("GetByEmail", mock.Anything, "ghost@test.com").Return(nil, domain.ErrNotFound)

	result, err := svc.Signin(context.Background(), service.LoginInput{Email: "ghost@test.com", Password: "password123"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Signin_InactiveUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("GetByEmail", mock.Anything, "user@test.com").Return(&domain.User{
		ID:           uuid.New(),
		Email:        "user@test.com",
		PasswordHash: hashPassword("password123"),
		IsActive:     false,
	}, nil)

	_, err := svc.Signin(context.Background(), service.LoginInput{Email: "user@test.com", Password: "password123"})

	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_RefreshToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "user@test.com",
		PasswordHash: hashPassword("password123"),
		IsActive:     true,
	}
	userRepo.On("GetByEmail", mock.Anything, "user@test.com").Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	pair, err := svc.Signin(context.Background(), service.LoginInput{Email: "user@test.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := &domain.User{ID: uuid.New(), Email: "user@test.com", PasswordHash: hashPassword("password123"), IsActive: true}
	userRepo.On("GetByEmail", mock.Anything, "user@test.com").Return(user, nil)

	pair, err := svc.Signin(context.Background(), service.LoginInput{Email: "user@test.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestAuthService_RefreshToken_RevokedBySignout(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := &domain.User{ID: uuid.New(), Email: "user@test.com", PasswordHash: hashPassword("password123"), IsActive: true}
	userRepo.On("GetByEmail", mock.Anything, "user@test.com").Return(user, nil)

	pair, err := svc.Signin(context.Background(), service.LoginInput{Email: "user@test.com", Password: "password123"})
	require.NoError(t, err)

	bumped := *user
	bumped.SessionVersion = 1
	userRepo.On("IncrementSessionVersion", mock.Anything, user.ID).Return(nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(&bumped, nil)

	require.NoError(t, svc.Signout(context.Background(), user.ID))

	_, err = svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())
	other := testJWTConfig()
	other.Secret = "a-different-secret"
	otherSvc := service.NewAuthService(userRepo, other)

	user := &domain.User{ID: uuid.New(), Email: "user@test.com", PasswordHash: hashPassword("password123"), IsActive: true}
	userRepo.On("GetByEmail", mock.Anything, "user@test.com").Return(user, nil)

	pair, err := otherSvc.Signin(context.Background(), service.LoginInput{Email: "user@test.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestAuthService_Me_DowngradesLapsedPlan(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	past := time.Now().Add(-time.Hour)
	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID: userID, Plan: domain.PlanMonthly, PlanExpiresAt: &past, IsActive: true,
	}, nil)

	user, err := svc.Me(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, domain.PlanFree, user.Plan)
}
