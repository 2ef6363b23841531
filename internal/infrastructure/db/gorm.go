package db

import (
	"time"

	"p2p-lending-ledger/internal/domain/credit"
	"p2p-lending-ledger/internal/domain/loan"
	"p2p-lending-ledger/internal/domain/schedule"
	"p2p-lending-ledger/internal/domain/wallet"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenGorm connects to MySQL. Read-committed with InnoDB row locks is the
// minimum isolation the ledger relies on.
func OpenGorm(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn), level)
}

func OpenGormWithDialector(dial gorm.Dialector, level ...logger.LogLevel) (*gorm.DB, error) {
	lvl := logger.Warn
	if len(level) > 0 {
		lvl = level[0]
	}
	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(lvl),
		DisableAutomaticPing: true,
		NowFunc:              func() time.Time { return time.Now().UTC() },
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
	return db, nil
}

// Models lists every table owned by the service, in dependency order.
func Models() []any {
	return []any{
		&wallet.Wallet{},
		&wallet.Entry{},
		&loan.Product{},
		&loan.Application{},
		&loan.Contract{},
		&schedule.Row{},
		&schedule.Transaction{},
		&credit.Score{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
