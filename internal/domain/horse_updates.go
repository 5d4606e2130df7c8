package domain

import "time"

type HorsePerformanceUpdate struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	HorseID    uint      `gorm:"column:horse_id;not null;index" json:"horseId"`
	Wins       int       `gorm:"column:wins;not null" json:"wins"`
	Places     int       `gorm:"column:places;not null" json:"places"`
	Shows      int       `gorm:"column:shows;not null" json:"shows"`
	Races      int       `gorm:"column:races;not null" json:"races"`
	Earnings   float64   `gorm:"column:earnings;type:decimal(12,2);not null" json:"earnings"`
	UpdateDate Date      `gorm:"column:update_date;not null" json:"updateDate"`
	Notes      *string   `gorm:"column:notes;type:text" json:"notes"`
	UpdatedBy  uint      `gorm:"column:updated_by;not null" json:"updatedBy"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (HorsePerformanceUpdate) TableName() string {
	return "horse_performance_updates"
}

// HorseFinancialUpdate keeps nil for fields the caller did not change.
type HorseFinancialUpdate struct {
	ID              uint      `gorm:"column:id;primaryKey" json:"id"`
	HorseID         uint      `gorm:"column:horse_id;not null;index" json:"horseId"`
	CurrentValue    *float64  `gorm:"column:current_value;type:decimal(12,2)" json:"currentValue"`
	PricePerPercent *float64  `gorm:"column:price_per_percent;type:decimal(12,2)" json:"pricePerPercent"`
	SharesRemaining *float64  `gorm:"column:shares_remaining;type:decimal(5,2)" json:"sharesRemaining"`
	UpdateDate      Date      `gorm:"column:update_date;not null" json:"updateDate"`
	Notes           *string   `gorm:"column:notes;type:text" json:"notes"`
	UpdatedBy       uint      `gorm:"column:updated_by;not null" json:"updatedBy"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (HorseFinancialUpdate) TableName() string {
	return "horse_financial_updates"
}
