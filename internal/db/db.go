package db

import (
	"errors"
	"fmt"

	"github.com/pkaczor/serwisapp/internal/config"
	"github.com/pkaczor/serwisapp/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func allModels() []any {
	return []any{
		&models.Client{}, &models.Order{},
		&models.MaterialCost{}, &models.LaborCost{}, &models.OtherCost{},
		&models.Quote{}, &models.QuoteItem{},
		&models.Activity{}, &models.AppSettings{},
	}
}

// Connect opens the store — the on-device sqlite file by default, postgres
// when DATABASE_DSN is set — runs AutoMigrate and bootstraps the settings
// singleton on first run.
func Connect(cfg config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if config.ParseBool("DB_DEBUG", false) {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var conn *gorm.DB
	var err error
	if dsn := NormalizeDSN(cfg.DatabaseDSN); dsn != "" {
		conn, err = gorm.Open(postgres.Open(dsn), gcfg)
	} else {
		conn, err = gorm.Open(sqlite.Open(cfg.DBPath), gcfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate runs AutoMigrate over all models, sanity-checks the core tables
// and seeds defaults.
func Migrate(conn *gorm.DB) error {
	for _, m := range allModels() {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	for _, table := range []string{"clients", "orders", "quotes", "app_settings"} {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return bootstrapSettings(conn)
}

// bootstrapSettings creates the singleton settings row with defaults when
// the store is fresh.
func bootstrapSettings(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.AppSettings{}).Count(&count).Error; err != nil {
		return fmt.Errorf("settings count: %w", err)
	}
	if count == 0 {
		defaults := models.DefaultSettings()
		if err := conn.Create(&defaults).Error; err != nil {
			return fmt.Errorf("settings bootstrap: %w", err)
		}
	}
	return nil
}

// Reset drops every table and reinitializes the store. Used by the import
// handler before a bulk load, and as the recovery path when the on-disk
// schema no longer matches.
func Reset(conn *gorm.DB) error {
	for _, m := range allModels() {
		if err := conn.Migrator().DropTable(m); err != nil {
			return fmt.Errorf("drop %T: %w", m, err)
		}
	}
	return Migrate(conn)
}
