package database

import (
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"adminconsole/internal/config"
	"adminconsole/internal/logger"
)

type MethodsDB interface {
	CloseDB() error
	RunMigrations() error
	HealthCheck() error
	GetDB() *DB
}

type DB struct {
	*sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS console_state (
    key        VARCHAR(64) PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`

func ConnectDB(cfg config.DB) (*DB, error) {
	driver, err := driverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	logger.Zlog.Info("connecting to state store", zap.String("driver", driver))

	db, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to state store: %w", err)
	}

	if driver == "sqlite" {
		// One writer at a time for the embedded file.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{db}

	if err := dbStruct.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := dbStruct.HealthCheck(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("state store health check failed: %w", err)
	}

	return dbStruct, nil
}

func driverName(name string) (string, error) {
	switch name {
	case "", "sqlite", "sqlite3":
		return "sqlite", nil
	case "postgres", "postgresql":
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q", name)
	}
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

func (db *DB) RunMigrations() error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Zlog.Debug("migrations applied")
	return nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("state store is not initialised")
	}
	return db.Ping()
}

func (db *DB) GetDB() *DB {
	return db
}
