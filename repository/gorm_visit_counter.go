package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// OpenGorm opens a sqlite file or a mysql DSN and pings it.
func OpenGorm(dialect, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dialect {
	case "sqlite":
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported gorm dialect %q", dialect)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	if err := pingOrClose(sqlDB); err != nil {
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}
	return db, nil
}

type pool interface {
	Ping() error
	Close() error
}

// pingOrClose releases the pool when it cannot reach the database.
func pingOrClose(p pool) error {
	if err := p.Ping(); err != nil {
		_ = p.Close()
		return err
	}
	return nil
}

type visitCounterRecord struct {
	Name      string `gorm:"primaryKey;size:128;column:name"`
	Visits    int64  `gorm:"column:visits;not null;default:0"`
	UpdatedAt time.Time
}

func (visitCounterRecord) TableName() string { return "visit_counters" }

// GormVisitCounter keeps one row per counter name and bumps it in a transaction.
type GormVisitCounter struct {
	db   *gorm.DB
	name string
}

func NewGormVisitCounter(db *gorm.DB, name string) (*GormVisitCounter, error) {
	if err := db.AutoMigrate(&visitCounterRecord{}); err != nil {
		return nil, fmt.Errorf("migrate visit_counters: %w", err)
	}
	return &GormVisitCounter{db: db, name: name}, nil
}

func (c *GormVisitCounter) Name() string { return c.name }

func (c *GormVisitCounter) Increment(ctx context.Context) (int64, error) {
	var rec visitCounterRecord
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := visitCounterRecord{Name: c.name}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}
		if err := tx.Model(&visitCounterRecord{}).
			Where("name = ?", c.name).
			Update("visits", gorm.Expr("visits + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Where("name = ?", c.name).First(&rec).Error
	})
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", c.name, err)
	}
	return rec.Visits, nil
}

func (c *GormVisitCounter) Count(ctx context.Context) (int64, error) {
	var rec visitCounterRecord
	err := c.db.WithContext(ctx).Where("name = ?", c.name).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return rec.Visits, nil
}
