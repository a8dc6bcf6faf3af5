package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const DriverName = "postgres"

type Settings struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func NewDB(settings Settings) (*sqlx.DB, error) {
	if settings.DSN == "" {
		return nil, fmt.Errorf("database dsn is empty")
	}

	db, err := sqlx.Open(DriverName, settings.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if settings.MaxOpenConns > 0 {
		db.SetMaxOpenConns(settings.MaxOpenConns)
	}
	if settings.MaxIdleConns > 0 {
		db.SetMaxIdleConns(settings.MaxIdleConns)
	}
	if settings.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(settings.ConnMaxLifetime)
	}
	return db, nil
}

// Connect opens the pool and verifies the server is reachable.
func Connect(ctx context.Context, settings Settings) (*sqlx.DB, error) {
	db, err := NewDB(settings)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
