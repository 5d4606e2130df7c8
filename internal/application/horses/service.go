package horses

import (
	"context"
	"errors"

	"gfg-stable-backend/internal/domain"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// GetHorses runs the filtered COUNT and the page query with the same predicates.
func (s *Service) GetHorses(ctx context.Context, f HorseFilters) (*HorsePage, error) {
	page, limit := f.pageAndLimit()
	db := s.DB.WithContext(ctx)

	var total int64
	if err := f.where(db.Model(&domain.Horse{})).Count(&total).Error; err != nil {
		return nil, err
	}

	horses := []domain.Horse{}
	if err := f.where(db.Model(&domain.Horse{})).
		Order(f.orderBy()).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&horses).Error; err != nil {
		return nil, err
	}

	return &HorsePage{
		Horses:     horses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *Service) GetHorseByID(ctx context.Context, id uint) (*domain.Horse, error) {
	return findHorse(s.DB.WithContext(ctx), id)
}

func findHorse(db *gorm.DB, id uint) (*domain.Horse, error) {
	var horse domain.Horse
	if err := db.Where("id = ?", id).First(&horse).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHorseNotFound
		}
		return nil, err
	}
	return &horse, nil
}

func (s *Service) CreateHorse(ctx context.Context, req CreateHorseRequest, userID uint) (*domain.Horse, error) {
	horse := req.toHorse()
	if horse.CurrentShares > horse.InitialShares {
		return nil, ErrInvalidShares
	}
	horse.CreatedBy = &userID
	horse.UpdatedBy = &userID

	if err := s.DB.WithContext(ctx).Create(&horse).Error; err != nil {
		return nil, err
	}
	log.Info().Uint("horse_id", horse.ID).Uint("user_id", userID).Str("name", horse.Name).Msg("horse created")
	return &horse, nil
}

func (s *Service) UpdateHorse(ctx context.Context, id uint, req UpdateHorseRequest, userID uint) (*domain.Horse, error) {
	cols, err := req.columns()
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, ErrNoFieldsToUpdate
	}
	cols["updated_by"] = userID

	var horse *domain.Horse
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findHorse(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&domain.Horse{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return err
		}
		updated, err := findHorse(tx, id)
		horse = updated
		return err
	})
	if err != nil {
		return nil, err
	}
	return horse, nil
}

// DeleteHorse removes the horse with its ownership, ledger and audit rows.
func (s *Service) DeleteHorse(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&domain.HorseOwnership{},
			&domain.HorseTransaction{},
			&domain.HorsePerformanceUpdate{},
			&domain.HorseFinancialUpdate{},
		} {
			if err := tx.Where("horse_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&domain.Horse{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrHorseNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Uint("horse_id", id).Msg("horse deleted")
	return nil
}

// GetHorsesByMember lists horses in which the member holds an active stake.
func (s *Service) GetHorsesByMember(ctx context.Context, memberID uint) ([]domain.Horse, error) {
	db := s.DB.WithContext(ctx)
	owned := db.Model(&domain.HorseOwnership{}).
		Select("horse_id").
		Where("member_id = ? AND is_active = ?", memberID, true)

	horses := []domain.Horse{}
	if err := db.Where("id IN (?)", owned).Order("name ASC, id ASC").Find(&horses).Error; err != nil {
		return nil, err
	}
	return horses, nil
}

// PurchaseShares takes the percentage out of shares_remaining with a single
// conditional UPDATE, then records the stake and the ledger entry. All three
// writes share one transaction.
func (s *Service) PurchaseShares(ctx context.Context, horseID uint, req PurchaseRequest, actingUserID uint) (*domain.HorseOwnership, error) {
	var ownership domain.HorseOwnership
	// Stakes are stored as decimal(5,2); price the stake that is actually recorded.
	req.Percentage = roundCents(req.Percentage)
	if req.Percentage <= 0 {
		return nil, ErrInvalidPercentage
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		horse, err := findHorse(tx, horseID)
		if err != nil {
			return err
		}

		var members int64
		if err := tx.Model(&domain.User{}).
			Where("id = ? AND is_active = ?", req.MemberID, true).
			Count(&members).Error; err != nil {
			return err
		}
		if members == 0 {
			return ErrMemberNotFound
		}

		res := tx.Model(&domain.Horse{}).
			Where("id = ? AND shares_remaining >= ?", horseID, req.Percentage).
			Updates(map[string]interface{}{
				"shares_remaining": gorm.Expr("shares_remaining - ?", req.Percentage),
				"updated_by":       actingUserID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotEnoughShares
		}

		total := roundCents(req.Percentage * horse.PricePerPercent)
		now := tx.NowFunc()

		ownership = domain.HorseOwnership{
			HorseID:       horseID,
			MemberID:      req.MemberID,
			Percentage:    req.Percentage,
			PurchaseDate:  now,
			PurchasePrice: total,
			IsActive:      true,
		}
		if err := tx.Create(&ownership).Error; err != nil {
			return err
		}

		return tx.Create(&domain.HorseTransaction{
			HorseID:         horseID,
			MemberID:        req.MemberID,
			TransactionType: domain.TransactionPurchase,
			Percentage:      req.Percentage,
			PricePerPercent: horse.PricePerPercent,
			TotalAmount:     total,
			TransactionDate: now,
			CreatedBy:       actingUserID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("horse_id", horseID).
		Uint("member_id", req.MemberID).
		Float64("percentage", req.Percentage).
		Float64("total", ownership.PurchasePrice).
		Msg("shares purchased")
	return &ownership, nil
}

func (s *Service) GetStatistics(ctx context.Context) (*domain.HorseStatistics, error) {
	var stats domain.HorseStatistics
	err := s.DB.WithContext(ctx).Model(&domain.Horse{}).Select(`
		COUNT(*) AS total_horses,
		COUNT(CASE WHEN status = 'new' THEN 1 END) AS active_horses,
		COUNT(CASE WHEN status = 'old' THEN 1 END) AS retired_horses,
		COUNT(CASE WHEN shares_remaining = 0 THEN 1 END) AS sold_horses,
		COALESCE(SUM(current_value), 0) AS total_value,
		COALESCE(AVG(current_value), 0) AS average_value,
		COALESCE(SUM(earnings), 0) AS total_earnings,
		COALESCE(AVG(earnings), 0) AS average_earnings`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// UpdatePerformance logs the deltas and adds them to the horse's totals.
func (s *Service) UpdatePerformance(ctx context.Context, horseID uint, req UpdatePerformanceRequest, userID uint) (*domain.HorsePerformanceUpdate, error) {
	entry := domain.HorsePerformanceUpdate{
		HorseID:    horseID,
		Wins:       valueOr(req.Wins, 0),
		Places:     valueOr(req.Places, 0),
		Shows:      valueOr(req.Shows, 0),
		Races:      valueOr(req.Races, 0),
		Earnings:   valueOr(req.Earnings, 0),
		UpdateDate: valueOr(req.UpdateDate, domain.Today()),
		Notes:      trimmed(req.Notes),
		UpdatedBy:  userID,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findHorse(tx, horseID); err != nil {
			return err
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Horse{}).Where("id = ?", horseID).Updates(map[string]interface{}{
			"wins":       gorm.Expr("wins + ?", entry.Wins),
			"places":     gorm.Expr("places + ?", entry.Places),
			"shows":      gorm.Expr("shows + ?", entry.Shows),
			"races":      gorm.Expr("races + ?", entry.Races),
			"earnings":   gorm.Expr("earnings + ?", entry.Earnings),
			"updated_by": userID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateFinancials logs the change and overwrites only the supplied fields.
func (s *Service) UpdateFinancials(ctx context.Context, horseID uint, req UpdateFinancialsRequest, userID uint) (*domain.HorseFinancialUpdate, error) {
	entry := domain.HorseFinancialUpdate{
		HorseID:         horseID,
		CurrentValue:    req.CurrentValue,
		PricePerPercent: req.PricePerPercent,
		SharesRemaining: req.SharesRemaining,
		UpdateDate:      valueOr(req.UpdateDate, domain.Today()),
		Notes:           trimmed(req.Notes),
		UpdatedBy:       userID,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findHorse(tx, horseID); err != nil {
			return err
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		cols := req.columns()
		if len(cols) == 0 {
			return nil
		}
		cols["updated_by"] = userID
		return tx.Model(&domain.Horse{}).Where("id = ?", horseID).Updates(cols).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
