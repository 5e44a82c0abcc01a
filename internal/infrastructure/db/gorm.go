package db

import (
	"strings"
	"time"

	"microfinance-backoffice/internal/domain/application"
	"microfinance-backoffice/internal/domain/client"
	"microfinance-backoffice/internal/domain/loan"
	"microfinance-backoffice/internal/domain/product"
	"microfinance-backoffice/internal/domain/repayment"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type options struct {
	log      *zap.Logger
	logLevel logger.LogLevel
}

type Option func(*options)

// WithLogger routes gorm's SQL log through zap at the given level
// ("silent", "error", "warn", "info").
func WithLogger(l *zap.Logger, level string) Option {
	return func(o *options) {
		o.log = l
		o.logLevel = parseLevel(level)
	}
}

func parseLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// zapWriter adapts a zap logger to gorm's logger.Writer.
type zapWriter struct{ s *zap.SugaredLogger }

func (w zapWriter) Printf(format string, args ...interface{}) { w.s.Infof(format, args...) }

func OpenGorm(dsn string, opts ...Option) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn), opts...)
}

// OpenGormWithDialector opens and pings a pool on any dialector.
func OpenGormWithDialector(dial gorm.Dialector, opts ...Option) (*gorm.DB, error) {
	o := options{log: zap.NewNop(), logLevel: logger.Warn}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := &gorm.Config{
		Logger: logger.New(zapWriter{o.log.Sugar()}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  o.logLevel,
			IgnoreRecordNotFoundError: true,
		}),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	o.log.Info("gorm: connected")
	return db, nil
}

// Migrate creates or alters the ledger tables to match the domain models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&product.Product{},
		&client.Client{},
		&application.Application{},
		&loan.Loan{},
		&repayment.Repayment{},
	)
}
