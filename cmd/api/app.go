package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"p2p-lending-ledger/internal/config"
	"p2p-lending-ledger/internal/infrastructure/cache"
	"p2p-lending-ledger/internal/infrastructure/db"
	"p2p-lending-ledger/pkg/logger"
)

const serviceName = "lending-ledger"

// app holds the process-wide dependencies shared by every command.
type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
	rdb *redis.Client
}

type needs struct{ db, redis bool }

func bootstrap(n needs) (*app, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log, err := logger.New(cfg.LogLevel, serviceName)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	a := &app{cfg: cfg, log: log}

	if n.db {
		a.db, err = db.OpenGorm(cfg.MySQLDSN(), cfg.GormLogLevel())
		if err != nil {
			a.close()
			return nil, fmt.Errorf("mysql: %w", err)
		}
	}
	if n.redis {
		a.rdb, err = cache.Open(cache.Config{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("redis: %w", err)
		}
	}
	return a, nil
}

func (a *app) close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.log.Sync()
}
