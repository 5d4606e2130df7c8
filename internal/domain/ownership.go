package domain

import "time"

const (
	TransactionPurchase = "purchase"
	TransactionSale     = "sale"
	TransactionTransfer = "transfer"
)

// HorseOwnership is a member's percentage stake in a horse.
type HorseOwnership struct {
	ID            uint      `gorm:"column:id;primaryKey" json:"id"`
	HorseID       uint      `gorm:"column:horse_id;not null;index" json:"horseId"`
	MemberID      uint      `gorm:"column:member_id;not null;index" json:"memberId"`
	Percentage    float64   `gorm:"column:percentage;type:decimal(5,2);not null" json:"percentage"`
	PurchaseDate  time.Time `gorm:"column:purchase_date;not null" json:"purchaseDate"`
	PurchasePrice float64   `gorm:"column:purchase_price;type:decimal(12,2);not null" json:"purchasePrice"`
	IsActive      bool      `gorm:"column:is_active;not null" json:"isActive"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (HorseOwnership) TableName() string {
	return "horse_ownership"
}

// HorseTransaction is an append-only ledger row.
type HorseTransaction struct {
	ID              uint      `gorm:"column:id;primaryKey" json:"id"`
	HorseID         uint      `gorm:"column:horse_id;not null;index" json:"horseId"`
	MemberID        uint      `gorm:"column:member_id;not null;index" json:"memberId"`
	TransactionType string    `gorm:"column:transaction_type;type:varchar(20);not null" json:"transactionType"`
	Percentage      float64   `gorm:"column:percentage;type:decimal(5,2);not null" json:"percentage"`
	PricePerPercent float64   `gorm:"column:price_per_percent;type:decimal(12,2);not null" json:"pricePerPercent"`
	TotalAmount     float64   `gorm:"column:total_amount;type:decimal(12,2);not null" json:"totalAmount"`
	TransactionDate time.Time `gorm:"column:transaction_date;not null" json:"transactionDate"`
	Notes           *string   `gorm:"column:notes;type:text" json:"notes"`
	CreatedBy       uint      `gorm:"column:created_by;not null" json:"createdBy"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (HorseTransaction) TableName() string {
	return "horse_transactions"
}
