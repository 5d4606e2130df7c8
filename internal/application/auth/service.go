package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"gfg-stable-backend/internal/application/emails"
	"gfg-stable-backend/internal/domain"
	"gfg-stable-backend/internal/pkg/constants"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultBcryptCost = 12
	resetTokenTTL     = time.Hour
)

type Service struct {
	DB         *gorm.DB
	Tokens     *TokenManager
	Emails     emails.Sender
	BcryptCost int
}

// RegisterInput is shared by public registration and admin member creation.
type RegisterInput struct {
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
	FirstName     string  `json:"first_name" validate:"required,notblank"`
	LastName      string  `json:"last_name" validate:"required,notblank"`
	Country       *string `json:"country" validate:"omitempty,max=100"`
	StreetAddress *string `json:"street_address" validate:"omitempty,max=500"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	State         *string `json:"state" validate:"omitempty,max=100"`
	ZipCode       *string `json:"zip_code" validate:"omitempty,max=20"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	RoleID        *uint   `json:"role_id" validate:"omitempty,gte=1"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) cost() int {
	if s.BcryptCost > 0 {
		return s.BcryptCost
	}
	return defaultBcryptCost
}

// issueSession signs a token and records its hash inside tx.
func (s *Service) issueSession(tx *gorm.DB, user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.Tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	if err := tx.Create(&domain.UserSession{
		UserID:    user.ID,
		TokenHash: HashToken(token),
		ExpiresAt: expiresAt,
	}).Error; err != nil {
		return nil, err
	}
	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.Tokens.Duration().Seconds()),
	}, nil
}

// Register creates the user and its first session in one transaction. A duplicate
// email aborts before anything is written.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	roleID := constants.MemberRoleID
	if in.RoleID != nil {
		roleID = *in.RoleID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost())
	if err != nil {
		return nil, err
	}

	var result *AuthResult
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUserExists
		}

		var role domain.Role
		if err := tx.First(&role, roleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidRole
			}
			return err
		}

		user := &domain.User{
			Email:         email,
			PasswordHash:  string(hash),
			FirstName:     strings.TrimSpace(in.FirstName),
			LastName:      strings.TrimSpace(in.LastName),
			Country:       in.Country,
			StreetAddress: in.StreetAddress,
			City:          in.City,
			State:         in.State,
			ZipCode:       in.ZipCode,
			Phone:         in.Phone,
			RoleID:        role.ID,
			IsActive:      true,
		}
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUserExists
			}
			return err
		}
		user.Role = role
		user.RoleName = role.Name

		res, err := s.issueSession(tx, user)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("email", email).Str("role", result.User.RoleName).Msg("User registered successfully")

	if s.Emails != nil {
		u := result.User
		if err := s.Emails.SendRegistrationNotification(ctx, emails.Registration{
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Phone:     u.Phone,
			Country:   u.Country,
			City:      u.City,
			State:     u.State,
		}); err != nil {
			log.Warn().Err(err).Str("email", email).Msg("Failed to send registration notification email")
		}
	}
	return result, nil
}

// Login returns the same error for unknown email, inactive account and wrong password.
func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	db := s.DB.WithContext(ctx)

	var user domain.User
	if err := db.Preload("Role").Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	var result *AuthResult
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.User{}).Where("id = ?", user.ID).UpdateColumn("last_login", now).Error; err != nil {
			return err
		}
		user.LastLogin = &now
		res, err := s.issueSession(tx, &user)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	// sweep every expired session, not only this user's
	if err := db.Where("expires_at < ?", now).Delete(&domain.UserSession{}).Error; err != nil {
		log.Warn().Err(err).Msg("Failed to clean up expired sessions")
	}

	log.Info().Str("email", email).Msg("User logged in")
	return result, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.DB.WithContext(ctx).Where("token_hash = ?", HashToken(token)).Delete(&domain.UserSession{}).Error
}

// Authenticate validates the signature and requires a live session row.
func (s *Service) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.Tokens.Validate(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.UserSession{}).
		Where("token_hash = ? AND expires_at > ?", HashToken(token), time.Now()).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func newResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ForgotPassword never reveals whether the email exists.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	db := s.DB.WithContext(ctx)

	var user domain.User
	if err := db.Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Info().Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}
	now := time.Now()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.PasswordResetToken{}).
			Where("user_id = ? AND used_at IS NULL", user.ID).
			Update("used_at", now).Error; err != nil {
			return err
		}
		return tx.Create(&domain.PasswordResetToken{
			UserID:    user.ID,
			TokenHash: HashToken(token),
			ExpiresAt: now.Add(resetTokenTTL),
		}).Error
	})
	if err != nil {
		return err
	}

	if s.Emails != nil {
		if err := s.Emails.SendPasswordReset(ctx, user.Email, token); err != nil {
			log.Warn().Err(err).Uint("user_id", user.ID).Msg("Failed to send password reset email")
		}
	}
	log.Info().Uint("user_id", user.ID).Msg("Password reset token issued")
	return nil
}

// ResetPassword consumes a reset token, sets the new password and revokes every session.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	now := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost())
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prt domain.PasswordResetToken
		if err := tx.Where("token_hash = ? AND used_at IS NULL AND expires_at > ?", HashToken(token), now).
			First(&prt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidResetToken
			}
			return err
		}
		res := tx.Model(&domain.User{}).Where("id = ? AND is_active = ?", prt.UserID, true).
			Updates(map[string]interface{}{"password_hash": string(hash), "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidResetToken
		}
		if err := tx.Model(&prt).Update("used_at", now).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", prt.UserID).Delete(&domain.UserSession{}).Error; err != nil {
			return err
		}
		log.Info().Uint("user_id", prt.UserID).Msg("Password reset completed")
		return nil
	})
}
