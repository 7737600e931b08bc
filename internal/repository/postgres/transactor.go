package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/portoo/portoo-backend/internal/repository"
)

// NewRepositories binds every repository to db, which may be a *sqlx.DB or a *sqlx.Tx.
func NewRepositories(db sqlx.ExtContext) repository.Repositories {
	return repository.Repositories{
		Portfolios:  NewPortfolioRepository(db),
		Experiences: NewExperienceRepository(db),
		Projects:    NewProjectRepository(db),
		Contacts:    NewContactRepository(db),
	}
}

type transactor struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) repository.Transactor {
	return &transactor{db: db}
}

func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(ctx, NewRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
