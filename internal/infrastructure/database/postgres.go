package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/portoo/portoo-backend/internal/config"
	"github.com/portoo/portoo-backend/internal/repository"
)

// NewPostgresDB opens the sqlx pool and pings it before handing it out.
func NewPostgresDB(ctx context.Context, cfg *config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(50)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// DetectCapabilities reports which optional tables exist. Deployments created before
// the experiences table was added keep working without it.
func DetectCapabilities(ctx context.Context, db sqlx.QueryerContext) (repository.Capabilities, error) {
	var caps repository.Capabilities
	err := sqlx.GetContext(ctx, db, &caps.Experiences, `SELECT to_regclass('experiences') IS NOT NULL`)
	if err != nil {
		return caps, fmt.Errorf("failed to probe schema: %w", err)
	}
	return caps, nil
}
