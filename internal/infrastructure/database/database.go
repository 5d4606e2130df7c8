package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gfg-stable-backend/internal/domain"
	"gfg-stable-backend/internal/pkg/constants"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns int
	IdleTimeout  time.Duration
}

// GormConfig is shared by Open and the sqlite test setups. TranslateError maps
// driver constraint errors to gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
}

// Open opens a GORM DB from DSN.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") behind poolers such as PgBouncer.
func Open(dsn string, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), GormConfig())
	if err != nil {
		return nil, err
	}
	if err := Configure(db, opts); err != nil {
		return nil, err
	}
	return db, nil
}

// Configure applies pool limits to the underlying sql.DB.
func Configure(db *gorm.DB, opts Options) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxOpenConns)
	}
	if opts.IdleTimeout > 0 {
		sqlDB.SetConnMaxIdleTime(opts.IdleTimeout)
	}
	return nil
}

// Close releases the pool. Safe on nil.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates or updates every table and seeds the fixed roles.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		return err
	}
	return SeedRoles(context.Background(), db)
}

// SeedRoles inserts the four fixed roles when missing.
func SeedRoles(ctx context.Context, db *gorm.DB) error {
	for _, name := range constants.ValidRoles {
		desc := constants.RoleDescriptions[name]
		role := domain.Role{ID: constants.RoleIDs[name], Name: name, Description: &desc}
		if err := db.WithContext(ctx).Where("id = ?", role.ID).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}
	return nil
}

const (
	DefaultAdminEmail = "admin@gfgstable.com"
	bcryptCost        = 12
)

// SeedAdmin creates the initial administrator if no user owns the email yet.
// Returns true when a user was created.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password string) (bool, error) {
	if email == "" {
		email = DefaultAdminEmail
	}
	if password == "" {
		return false, errors.New("admin password is required")
	}
	var existing domain.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Info().Str("email", email).Msg("Admin user already exists")
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return false, err
	}
	admin := domain.User{
		Email:         email,
		PasswordHash:  string(hash),
		FirstName:     "System",
		LastName:      "Administrator",
		RoleID:        constants.AdminRoleID,
		IsActive:      true,
		EmailVerified: true,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return false, err
	}
	log.Info().Str("email", email).Msg("Admin user created")
	return true, nil
}
