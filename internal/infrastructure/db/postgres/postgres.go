package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gatherly/eventhub/internal/core/domain"
)

// Config captures the settings for establishing a Postgres connection.
type Config struct {
	DSN string
}

// Connect opens a gorm connection pool and validates it with a ping.
// TranslateError is on so unique-index violations surface as
// gorm.ErrDuplicatedKey and can be mapped to a conflict error.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the eight tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&permissionModel{},
		&roleModel{},
		&userModel{},
		&eventModel{},
		&activityModel{},
		&loginModel{},
		&passwordModel{},
	)
}

// translate maps gorm errors onto the domain taxonomy. notFoundMsg is used
// verbatim when the row does not exist.
func translate(err error, notFoundFormat string, args ...any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NotFound(notFoundFormat, args...)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.Conflict("duplicate value violates a uniqueness constraint")
	default:
		return domain.Internal(err, "database error")
	}
}
