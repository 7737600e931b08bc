package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/repository"
)

const portfolioColumns = `
	id, username, full_name, tagline, job_title, location, bio, email,
	profile_photo_url, linkedin_url, github_username, resume_url,
	availability_status, open_to_work, skills, template, is_public, view_count,
	created_at, updated_at`

type portfolioRepository struct {
	db sqlx.ExtContext
}

func NewPortfolioRepository(db sqlx.ExtContext) repository.PortfolioRepository {
	return &portfolioRepository{db: db}
}

func (r *portfolioRepository) Create(ctx context.Context, p *domain.Portfolio) error {
	query := `
		INSERT INTO portfolios (
			username, full_name, tagline, job_title, location, bio, email,
			profile_photo_url, linkedin_url, github_username, resume_url,
			availability_status, open_to_work, skills, template, is_public
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, view_count, created_at, updated_at
	`
	err := r.db.QueryRowxContext(
		ctx, query,
		p.Username, p.FullName, p.Tagline, p.JobTitle, p.Location, p.Bio, p.Email,
		p.ProfilePhotoURL, p.LinkedinURL, p.GithubUsername, p.ResumeURL,
		p.AvailabilityStatus, p.OpenToWork, p.Skills, p.Template, p.IsPublic,
	).Scan(&p.ID, &p.ViewCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *portfolioRepository) Update(ctx context.Context, p *domain.Portfolio) error {
	query := `
		UPDATE portfolios
		SET full_name = $1, tagline = $2, job_title = $3, location = $4, bio = $5, email = $6,
		    profile_photo_url = $7, linkedin_url = $8, github_username = $9, resume_url = $10,
		    availability_status = $11, open_to_work = $12, skills = $13, template = $14,
		    is_public = $15, updated_at = CURRENT_TIMESTAMP
		WHERE id = $16
		RETURNING view_count, created_at, updated_at
	`
	err := r.db.QueryRowxContext(
		ctx, query,
		p.FullName, p.Tagline, p.JobTitle, p.Location, p.Bio, p.Email,
		p.ProfilePhotoURL, p.LinkedinURL, p.GithubUsername, p.ResumeURL,
		p.AvailabilityStatus, p.OpenToWork, p.Skills, p.Template,
		p.IsPublic, p.ID,
	).Scan(&p.ViewCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrPortfolioNotFound
		}
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *portfolioRepository) GetByUsername(ctx context.Context, username string) (*domain.Portfolio, error) {
	var p domain.Portfolio
	query := `SELECT ` + portfolioColumns + ` FROM portfolios WHERE username = $1`
	if err := sqlx.GetContext(ctx, r.db, &p, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPortfolioNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *portfolioRepository) GetByEmail(ctx context.Context, email string) (*domain.Portfolio, error) {
	var p domain.Portfolio
	query := `SELECT ` + portfolioColumns + ` FROM portfolios WHERE lower(email) = lower($1) LIMIT 1`
	if err := sqlx.GetContext(ctx, r.db, &p, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPortfolioNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *portfolioRepository) ListByEmail(ctx context.Context, email string) ([]*domain.PortfolioSummary, error) {
	var out []*domain.PortfolioSummary
	query := `
		SELECT id, username, full_name, job_title, is_public, updated_at
		FROM portfolios
		WHERE lower(email) = lower($1)
		ORDER BY updated_at DESC
	`
	err := sqlx.SelectContext(ctx, r.db, &out, query, email)
	return out, err
}

func (r *portfolioRepository) ListPublic(ctx context.Context) ([]*domain.Portfolio, error) {
	var out []*domain.Portfolio
	query := `SELECT ` + portfolioColumns + ` FROM portfolios WHERE is_public = TRUE ORDER BY created_at DESC`
	err := sqlx.SelectContext(ctx, r.db, &out, query)
	return out, err
}

func (r *portfolioRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM portfolios WHERE username = $1)`
	err := sqlx.GetContext(ctx, r.db, &exists, query, username)
	return exists, err
}

func (r *portfolioRepository) UsernamesWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var out []string
	query := `SELECT username FROM portfolios WHERE starts_with(username, $1) ORDER BY username`
	err := sqlx.SelectContext(ctx, r.db, &out, query, prefix)
	return out, err
}

func (r *portfolioRepository) IncrementViews(ctx context.Context, username string) (int, error) {
	var count sql.NullInt64
	err := sqlx.GetContext(ctx, r.db, &count, `SELECT increment_view_count($1)`, username)
	if err != nil {
		if isUndefinedFunction(err) {
			return 0, fmt.Errorf("%w: %v", repository.ErrAtomicViewsUnavailable, err)
		}
		return 0, err
	}
	if !count.Valid {
		return 0, domain.ErrPortfolioNotFound
	}
	return int(count.Int64), nil
}

func (r *portfolioRepository) SetViewCount(ctx context.Context, username string, count int) error {
	query := `UPDATE portfolios SET view_count = $1 WHERE username = $2`
	result, err := r.db.ExecContext(ctx, query, count, username)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrPortfolioNotFound
	}
	return nil
}
