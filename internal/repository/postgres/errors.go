package postgres

import (
	"errors"

	"github.com/lib/pq"
	"github.com/portoo/portoo-backend/internal/domain"
)

const (
	uniqueViolation    = "23505"
	undefinedFunction  = "42883"
	usernameConstraint = "portfolios_username_key"
	emailConstraint    = "portfolios_email_lower_idx"
)

// mapUniqueViolation turns unique index violations on portfolios into domain conflicts.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return err
	}
	switch pqErr.Constraint {
	case usernameConstraint:
		return domain.ErrUsernameTaken
	case emailConstraint:
		return domain.ErrEmailHasPortfolio
	}
	return err
}

func isUndefinedFunction(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == undefinedFunction
}
