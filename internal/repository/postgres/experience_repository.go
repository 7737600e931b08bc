package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/repository"
)

type experienceRepository struct {
	db sqlx.ExtContext
}

func NewExperienceRepository(db sqlx.ExtContext) repository.ExperienceRepository {
	return &experienceRepository{db: db}
}

func (r *experienceRepository) CreateBatch(ctx context.Context, experiences []*domain.Experience) error {
	query := `
		INSERT INTO experiences (
			portfolio_id, company, role, location, start_date, end_date,
			is_current, description, order_index
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	for _, e := range experiences {
		err := r.db.QueryRowxContext(
			ctx, query,
			e.PortfolioID, e.Company, e.Role, e.Location, e.StartDate, e.EndDate,
			e.IsCurrent, e.Description, e.OrderIndex,
		).Scan(&e.ID, &e.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *experienceRepository) DeleteByPortfolio(ctx context.Context, portfolioID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM experiences WHERE portfolio_id = $1`, portfolioID)
	return err
}

func (r *experienceRepository) ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]*domain.Experience, error) {
	experiences := []*domain.Experience{}
	query := `
		SELECT id, portfolio_id, company, role, location, start_date, end_date,
		       is_current, description, order_index, created_at
		FROM experiences
		WHERE portfolio_id = $1
		ORDER BY order_index
	`
	err := sqlx.SelectContext(ctx, r.db, &experiences, query, portfolioID)
	return experiences, err
}
