package domain

import "time"

// TaxDocument is the metadata row for a file stored under the upload directory.
type TaxDocument struct {
	ID           uint      `gorm:"column:id;primaryKey" json:"id"`
	MemberID     uint      `gorm:"column:member_id;not null;index" json:"member_id"`
	FileName     string    `gorm:"column:file_name;type:varchar(255);not null" json:"file_name"`
	OriginalName string    `gorm:"column:original_name;type:varchar(255);not null" json:"original_name"`
	FilePath     string    `gorm:"column:file_path;type:varchar(500);not null" json:"-"`
	FileType     string    `gorm:"column:file_type;type:varchar(100);not null" json:"file_type"`
	FileSize     int64     `gorm:"column:file_size;not null" json:"file_size"`
	DocumentType string    `gorm:"column:document_type;type:varchar(100);not null" json:"document_type"`
	TaxYear      int       `gorm:"column:tax_year;not null;index" json:"tax_year"`
	UploadedBy   uint      `gorm:"column:uploaded_by;not null" json:"uploaded_by"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (TaxDocument) TableName() string {
	return "tax_documents"
}

// Models lists every persisted type in migration order.
func Models() []interface{} {
	return []interface{}{
		&Role{},
		&User{},
		&UserSession{},
		&PasswordResetToken{},
		&Horse{},
		&HorseOwnership{},
		&HorseTransaction{},
		&HorsePerformanceUpdate{},
		&HorseFinancialUpdate{},
		&TaxDocument{},
	}
}
