package db

import (
	"strings"

	"github.com/ccaruso/gestion-ingresos/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the store described by dsn. Postgres URLs use the postgres
// driver; anything else is treated as a sqlite file (the default local
// store).
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// Migrate applies the schema. The composite unique indexes on
// (user_id, nombre) are the source of truth for name uniqueness.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.JobType{},
		&models.Supply{},
		&models.Job{},
		&models.Payment{},
		&models.Expense{},
	)
}
