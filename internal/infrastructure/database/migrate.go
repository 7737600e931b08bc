package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schema string

// Schema returns the idempotent DDL applied by Migrate
func Schema() string {
	return schema
}

// Migrate applies the schema. Every statement is IF NOT EXISTS or OR REPLACE, so it
// is safe to run on each start.
func Migrate(ctx context.Context, db sqlx.ExecerContext) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
