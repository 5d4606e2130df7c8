package domain

import (
	"time"

	"gorm.io/gorm"
)

// Role matches the roles table (admin, member, finance, manager).
type Role struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(50);not null;uniqueIndex" json:"name"`
	Description *string   `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Role) TableName() string {
	return "roles"
}

// User is a syndicate account. Deactivation flips IsActive; rows are never removed.
type User struct {
	ID            uint       `gorm:"column:id;primaryKey" json:"id"`
	Email         string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash  string     `gorm:"column:password_hash;not null" json:"-"`
	FirstName     string     `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	LastName      string     `gorm:"column:last_name;type:varchar(100);not null" json:"last_name"`
	Country       *string    `gorm:"column:country;type:varchar(100)" json:"country"`
	StreetAddress *string    `gorm:"column:street_address;type:varchar(500)" json:"street_address"`
	City          *string    `gorm:"column:city;type:varchar(100)" json:"city"`
	State         *string    `gorm:"column:state;type:varchar(100)" json:"state"`
	ZipCode       *string    `gorm:"column:zip_code;type:varchar(20)" json:"zip_code"`
	Phone         *string    `gorm:"column:phone;type:varchar(20)" json:"phone"`
	RoleID        uint       `gorm:"column:role_id;not null;index" json:"role_id"`
	Role          Role       `gorm:"foreignKey:RoleID" json:"-"`
	RoleName      string     `gorm:"-" json:"role_name"`
	IsActive      bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	EmailVerified bool       `gorm:"column:email_verified;not null;default:false" json:"email_verified"`
	LastLogin     *time.Time `gorm:"column:last_login" json:"last_login"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// AfterFind copies the preloaded role name onto the response field.
func (u *User) AfterFind(_ *gorm.DB) error {
	if u.Role.Name != "" {
		u.RoleName = u.Role.Name
	}
	return nil
}
