package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/logger"
	"invoicegen/internal/port"
)

const (
	resetTokenTTL = time.Hour
	resetAudience = "password-reset"
	resetPagePath = "reset-password"
)

// ForgotPasswordInput is the DTO for forgot-password requests.
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput is the DTO for reset-password requests.
type ResetPasswordInput struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// PasswordResetService issues single-use reset links and applies new passwords.
type PasswordResetService interface {
	ForgotPassword(ctx context.Context, input ForgotPasswordInput) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
}

type passwordResetService struct {
	users       port.UserRepository
	mailer      port.EmailSender
	jwtCfg      config.JWTConfig
	frontendURL string
}

// NewPasswordResetService creates a PasswordResetService whose links point at
// frontendURL.
func NewPasswordResetService(
	users port.UserRepository,
	mailer port.EmailSender,
	jwtCfg config.JWTConfig,
	frontendURL string,
) PasswordResetService {
	return &passwordResetService{
		users:       users,
		mailer:      mailer,
		jwtCfg:      jwtCfg,
		frontendURL: frontendURL,
	}
}

// ForgotPassword always succeeds so callers cannot probe which addresses
// have accounts.
func (s *passwordResetService) ForgotPassword(ctx context.Context, input ForgotPasswordInput) error {
	log := logger.WithComponent("password_reset")

	user, err := s.users.GetByEmail(ctx, normalizeEmail(input.Email))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		log.Warn().Err(err).Msg("forgot-password lookup failed")
		return nil
	case !user.IsActive:
		return nil
	}

	if err := s.sendLink(ctx, user); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("password reset link not sent")
	}
	return nil
}

func (s *passwordResetService) sendLink(ctx context.Context, user *domain.User) error {
	token, tokenID, err := s.signResetToken(user, time.Now())
	if err != nil {
		return fmt.Errorf("signing reset token: %w", err)
	}
	if err := s.users.SetPasswordResetToken(ctx, user.ID, tokenID); err != nil {
		return fmt.Errorf("recording reset token: %w", err)
	}
	link, err := ResetLink(s.frontendURL, token)
	if err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(ctx, port.PasswordReset{
		To:        user.Email,
		Name:      user.FullName,
		Link:      link,
		ExpiresIn: resetTokenTTL,
	})
}

// ResetPassword accepts only the most recently issued reset token of the user.
func (s *passwordResetService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	claims, err := parseClaims(input.Token, s.jwtCfg.Secret, resetAudience, domain.ErrPasswordResetTokenInvalid)
	if err != nil || claims.ID == "" || claims.UserID == uuid.Nil {
		return domain.ErrPasswordResetTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.users.ResetPassword(ctx, claims.UserID, string(hash), claims.ID)
}

func (s *passwordResetService) signResetToken(user *domain.User, now time.Time) (token, tokenID string, err error) {
	tokenID = uuid.NewString()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   user.ID.String(),
			Issuer:    s.jwtCfg.Issuer,
			Audience:  jwt.ClaimStrings{resetAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(resetTokenTTL)),
		},
		UserID: user.ID,
		Email:  user.Email,
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
	return token, tokenID, err
}

// ResetLink returns the frontend reset page URL carrying token.
func ResetLink(frontendURL, token string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(frontendURL))
	if err != nil {
		return "", fmt.Errorf("parsing frontend url: %w", err)
	}
	u = u.JoinPath(resetPagePath)
	u.RawQuery = url.Values{"token": {token}}.Encode()
	return u.String(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
