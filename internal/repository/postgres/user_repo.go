package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

const userColumns = `id, email, password_hash, full_name, plan, plan_expires_at,
	is_active, session_version, password_reset_token_id, created_at, updated_at`

type userRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new PostgreSQL-backed UserRepository.
func NewUserRepo(db *sqlx.DB) port.UserRepository {
	return &userRepo{db: db}
}

// Create assigns the id and timestamps and stores the account with its email
// lowercased. A free plan is assumed when none is set.
func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.ID = uuid.New()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt, user.UpdatedAt = now, now
	if user.Plan == "" {
		user.Plan = domain.PlanFree
	}

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (
			:id, :email, :password_hash, :full_name, :plan, :plan_expires_at,
			:is_active, :session_version, :password_reset_token_id, :created_at, :updated_at)`,
		user)
	if isUniqueViolation(err, "users_email_key") {
		return domain.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("userRepo.Create: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, "userRepo.GetByID", "id = $1", userID)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "userRepo.GetByEmail", "email = $1", strings.ToLower(email))
}

func (r *userRepo) getOne(ctx context.Context, op, where string, arg any) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, "SELECT "+userColumns+" FROM users WHERE "+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

func (r *userRepo) SetPlan(ctx context.Context, userID uuid.UUID, plan domain.Plan, expiresAt *time.Time) error {
	return execOne(ctx, r.db, "userRepo.SetPlan", domain.ErrNotFound,
		`UPDATE users SET plan = $1, plan_expires_at = $2, updated_at = NOW() WHERE id = $3`,
		plan, expiresAt, userID)
}

// IncrementSessionVersion invalidates every token issued before the call.
func (r *userRepo) IncrementSessionVersion(ctx context.Context, userID uuid.UUID) error {
	return execOne(ctx, r.db, "userRepo.IncrementSessionVersion", domain.ErrNotFound,
		`UPDATE users SET session_version = session_version + 1, updated_at = NOW() WHERE id = $1`,
		userID)
}

func (r *userRepo) SetPasswordResetToken(ctx context.Context, userID uuid.UUID, tokenID string) error {
	return execOne(ctx, r.db, "userRepo.SetPasswordResetToken", domain.ErrNotFound,
		`UPDATE users SET password_reset_token_id = $1, updated_at = NOW() WHERE id = $2`,
		tokenID, userID)
}

// ResetPassword only succeeds while expectedTokenID is the outstanding reset
// token, so each link works once. It also signs the user out everywhere.
func (r *userRepo) ResetPassword(ctx context.Context, userID uuid.UUID, passwordHash, expectedTokenID string) error {
	return execOne(ctx, r.db, "userRepo.ResetPassword", domain.ErrPasswordResetTokenInvalid,
		`UPDATE users SET password_hash = $1, password_reset_token_id = NULL,
			session_version = session_version + 1, updated_at = NOW()
		 WHERE id = $2 AND password_reset_token_id = $3`,
		passwordHash, userID, expectedTokenID)
}
