package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gfg-stable-backend/internal/domain"
	"gfg-stable-backend/internal/pkg/constants"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProfileUpdate lists the columns a user may change on their own profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName     *string `json:"first_name" validate:"omitempty,max=100"`
	LastName      *string `json:"last_name" validate:"omitempty,max=100"`
	Country       *string `json:"country" validate:"omitempty,max=100"`
	StreetAddress *string `json:"street_address" validate:"omitempty,max=500"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	State         *string `json:"state" validate:"omitempty,max=100"`
	ZipCode       *string `json:"zip_code" validate:"omitempty,max=20"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
}

func (p ProfileUpdate) columns() (map[string]interface{}, error) {
	cols := map[string]interface{}{}
	for col, v := range map[string]*string{"first_name": p.FirstName, "last_name": p.LastName} {
		if v == nil {
			continue
		}
		trimmed := strings.TrimSpace(*v)
		if trimmed == "" {
			return nil, ErrEmptyName
		}
		cols[col] = trimmed
	}
	optional := map[string]*string{
		"country":        p.Country,
		"street_address": p.StreetAddress,
		"city":           p.City,
		"state":          p.State,
		"zip_code":       p.ZipCode,
		"phone":          p.Phone,
	}
	for col, v := range optional {
		if v != nil {
			cols[col] = strings.TrimSpace(*v)
		}
	}
	return cols, nil
}

// MemberUpdate is the admin variant, which may also change the email.
type MemberUpdate struct {
	ProfileUpdate
	Email *string `json:"email" validate:"omitempty,email"`
}

type RoleUpdate struct {
	RoleID uint `json:"role_id" validate:"required,gte=1"`
}

func (s *Service) loadUser(db *gorm.DB, id uint) (*domain.User, error) {
	var u domain.User
	if err := db.Preload("Role").First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID uint) (*domain.User, error) {
	return s.loadUser(s.DB.WithContext(ctx), userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID uint, p ProfileUpdate) (*domain.User, error) {
	cols, err := p.columns()
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, ErrNoFieldsToUpdate
	}
	cols["updated_at"] = time.Now()

	var user *domain.User
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.User{}).Where("id = ?", userID).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		u, err := s.loadUser(tx, userID)
		user = u
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("email", user.Email).Msg("User profile updated")
	return user, nil
}

func (s *Service) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.DB.WithContext(ctx).Preload("Role").Order("created_at DESC").Order("id DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) GetAllMembers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.DB.WithContext(ctx).Preload("Role").
		Where("role_id = ? AND is_active = ?", constants.MemberRoleID, true).
		Order("created_at DESC").Order("id DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateMember applies an admin edit to a member account. Non-member users are not found.
func (s *Service) UpdateMember(ctx context.Context, memberID uint, m MemberUpdate) (*domain.User, error) {
	cols, err := m.ProfileUpdate.columns()
	if err != nil {
		return nil, err
	}
	if m.Email != nil {
		cols["email"] = normalizeEmail(*m.Email)
	}
	if len(cols) == 0 {
		return nil, ErrNoFieldsToUpdate
	}
	cols["updated_at"] = time.Now()

	var user *domain.User
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if email, ok := cols["email"]; ok {
			var count int64
			if err := tx.Model(&domain.User{}).Where("email = ? AND id <> ?", email, memberID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrUserExists
			}
		}
		res := tx.Model(&domain.User{}).Where("id = ? AND role_id = ?", memberID, constants.MemberRoleID).Updates(cols)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return ErrUserExists
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMemberNotFound
		}
		u, err := s.loadUser(tx, memberID)
		user = u
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint("member_id", memberID).Msg("Member updated")
	return user, nil
}

// DeleteMember soft-deletes a member and revokes their sessions.
func (s *Service) DeleteMember(ctx context.Context, memberID uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.User{}).Where("id = ? AND role_id = ?", memberID, constants.MemberRoleID).
			Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMemberNotFound
		}
		return tx.Where("user_id = ?", memberID).Delete(&domain.UserSession{}).Error
	})
	if err != nil {
		return err
	}
	log.Info().Uint("member_id", memberID).Msg("Member deleted")
	return nil
}

// UpdateUserRole changes the role and revokes existing sessions, whose tokens carry the old role.
func (s *Service) UpdateUserRole(ctx context.Context, userID, roleID uint) (*domain.User, error) {
	var user *domain.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role domain.Role
		if err := tx.First(&role, roleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidRole
			}
			return err
		}
		res := tx.Model(&domain.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{"role_id": roleID, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		if err := tx.Where("user_id = ?", userID).Delete(&domain.UserSession{}).Error; err != nil {
			return err
		}
		u, err := s.loadUser(tx, userID)
		user = u
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("email", user.Email).Str("role", user.RoleName).Msg("User role updated")
	return user, nil
}

func (s *Service) DeactivateUser(ctx context.Context, userID uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return tx.Where("user_id = ?", userID).Delete(&domain.UserSession{}).Error
	})
	if err != nil {
		return err
	}
	log.Info().Uint("user_id", userID).Msg("User deactivated")
	return nil
}
