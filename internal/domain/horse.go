package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Horse is a racing asset sold to members in percentage shares.
type Horse struct {
	ID              uint                        `gorm:"column:id;primaryKey" json:"id"`
	Name            string                      `gorm:"column:name;type:varchar(255);not null;index" json:"name"`
	Sire            string                      `gorm:"column:sire;type:varchar(255);not null" json:"sire"`
	Dam             string                      `gorm:"column:dam;type:varchar(255);not null" json:"dam"`
	Sex             string                      `gorm:"column:sex;type:varchar(20);not null" json:"sex"`
	Age             int                         `gorm:"column:age;not null" json:"age"`
	AgeCategory     string                      `gorm:"column:age_category;type:varchar(10);not null" json:"ageCategory"`
	Gait            string                      `gorm:"column:gait;type:varchar(20);not null" json:"gait"`
	Status          string                      `gorm:"column:status;type:varchar(10);not null" json:"status"`
	HorseType       string                      `gorm:"column:horse_type;type:varchar(30);not null" json:"horseType"`
	Jurisdiction    datatypes.JSONSlice[string] `gorm:"column:jurisdiction;not null" json:"jurisdiction"`
	Trainer         *string                     `gorm:"column:trainer;type:varchar(255)" json:"trainer"`
	StableLocation  *string                     `gorm:"column:stable_location;type:varchar(255)" json:"stableLocation"`
	PurchaseDate    Date                        `gorm:"column:purchase_date;not null" json:"purchaseDate"`
	PurchasePrice   float64                     `gorm:"column:purchase_price;type:decimal(12,2);not null" json:"purchasePrice"`
	CurrentValue    *float64                    `gorm:"column:current_value;type:decimal(12,2)" json:"currentValue"`
	PricePerPercent float64                     `gorm:"column:price_per_percent;type:decimal(12,2);not null" json:"pricePerPercent"`
	InitialShares   int                         `gorm:"column:initial_shares;not null" json:"initialShares"`
	CurrentShares   int                         `gorm:"column:current_shares;not null" json:"currentShares"`
	SharesRemaining float64                     `gorm:"column:shares_remaining;type:decimal(5,2);not null" json:"sharesRemaining"`
	Wins            int                         `gorm:"column:wins;not null" json:"wins"`
	Places          int                         `gorm:"column:places;not null" json:"places"`
	Shows           int                         `gorm:"column:shows;not null" json:"shows"`
	Races           int                         `gorm:"column:races;not null" json:"races"`
	Earnings        float64                     `gorm:"column:earnings;type:decimal(12,2);not null" json:"earnings"`
	ImageURL        *string                     `gorm:"column:image_url;type:varchar(500)" json:"imageUrl"`
	Description     *string                     `gorm:"column:description;type:text" json:"description"`
	CreatedBy       *uint                       `gorm:"column:created_by" json:"createdBy"`
	UpdatedBy       *uint                       `gorm:"column:updated_by" json:"updatedBy"`
	CreatedAt       time.Time                   `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt       time.Time                   `gorm:"column:updated_at" json:"updatedAt"`
}

func (Horse) TableName() string {
	return "horses"
}

// HorseStatistics is the dashboard aggregate over all horses.
type HorseStatistics struct {
	TotalHorses     int64   `json:"totalHorses"`
	ActiveHorses    int64   `json:"activeHorses"`
	RetiredHorses   int64   `json:"retiredHorses"`
	SoldHorses      int64   `json:"soldHorses"`
	TotalValue      float64 `json:"totalValue"`
	AverageValue    float64 `json:"averageValue"`
	TotalEarnings   float64 `json:"totalEarnings"`
	AverageEarnings float64 `json:"averageEarnings"`
}
