// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package database

import (
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/config"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/errors"
	log "github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

// Open connects to the aggregation store and migrates its schema.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if cfg == nil || cfg.DSN == "" {
		return nil, errors.NewError().WithCode(errors.CodeLackOfConfig).WithMessage("database dsn is empty")
	}
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DriverSqlite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, errors.NewError().WithCode(errors.CodeLackOfConfig).WithMessagef("unsupported database driver %q", cfg.Driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.WrapError(err, "open database", errors.CodeDatabaseError)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Infof("Aggregation store connected: driver=%s", dialectorName(cfg.Driver))
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.AggregatedMetricRecord{}); err != nil {
		return errors.WrapError(err, "migrate aggregated metric records", errors.CodeDatabaseError)
	}
	return nil
}

func dialectorName(driver string) string {
	if driver == "" {
		return DriverPostgres
	}
	return driver
}
