package username

import (
	"context"
	"errors"
	"strings"

	"github.com/portoo/portoo-backend/internal/apperr"
	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/portoo/portoo-backend/internal/repository"
	"github.com/portoo/portoo-backend/pkg/slug"
)

// suffixLen is the room kept for a "-NNN" collision suffix
const suffixLen = 4

// CheckResult mirrors the check-username response body
type CheckResult struct {
	Available bool    `json:"available"`
	Error     *string `json:"error"`
}

type UsernameUseCase struct {
	portfolios repository.PortfolioRepository
	generator  *slug.Generator
	log        *logger.Logger
}

func NewUsernameUseCase(portfolios repository.PortfolioRepository, generator *slug.Generator, log *logger.Logger) *UsernameUseCase {
	if generator == nil {
		generator = slug.NewGenerator()
	}
	return &UsernameUseCase{
		portfolios: portfolios,
		generator:  generator.WithMaxLength(domain.MaxUsernameLength),
		log:        log.With("usecase", "username"),
	}
}

// Check validates format, length and the reserved list before asking storage.
// Rule violations are reported as unavailable, not as request errors.
func (uc *UsernameUseCase) Check(ctx context.Context, username string) (*CheckResult, error) {
	if username == "" {
		return nil, apperr.Invalid(domain.ErrUsernameRequired)
	}
	if !domain.MatchesUsernamePattern(username) {
		return unavailable(domain.UserMessage(domain.ErrUsernameFormat)), nil
	}
	if len(username) < domain.MinUsernameLength || len(username) > domain.MaxUsernameLength {
		return unavailable(domain.UserMessage(domain.ErrUsernameLength)), nil
	}
	if domain.IsReservedUsername(username) {
		return unavailable("This username is reserved"), nil
	}

	exists, err := uc.portfolios.UsernameExists(ctx, username)
	if err != nil {
		uc.log.Error("Username check failed", "username", username, "error", err)
		return nil, apperr.Internal("Failed to check username availability", err)
	}
	if exists {
		return unavailable("Username is already taken"), nil
	}
	return &CheckResult{Available: true}, nil
}

// Suggest derives a free username from a display name, appending a random suffix on collision.
func (uc *UsernameUseCase) Suggest(ctx context.Context, name string) (string, error) {
	base := slug.Slugify(name)
	if len(base) > domain.MaxUsernameLength-suffixLen {
		base = strings.TrimRight(base[:domain.MaxUsernameLength-suffixLen], "-")
	}

	var existing []string
	if base != "" {
		taken, err := uc.portfolios.UsernamesWithPrefix(ctx, base)
		if err != nil && !errors.Is(err, domain.ErrPortfolioNotFound) {
			uc.log.Error("Username suggestion lookup failed", "base", base, "error", err)
			return "", apperr.Internal("Failed to suggest a username", err)
		}
		existing = taken
		if len(base) < domain.MinUsernameLength {
			existing = append(existing, base)
		}
	}
	existing = append(existing, domain.ReservedUsernames()...)

	return uc.generator.Unique(base, existing), nil
}

func unavailable(msg string) *CheckResult {
	return &CheckResult{Available: false, Error: &msg}
}
