package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/repository"
)

// projectRow scans text[] columns through pq.StringArray
type projectRow struct {
	ID             uuid.UUID      `db:"id"`
	PortfolioID    uuid.UUID      `db:"portfolio_id"`
	Name           string         `db:"name"`
	CoverImageURL  string         `db:"cover_image_url"`
	CarouselImages pq.StringArray `db:"carousel_images"`
	Description    string         `db:"description"`
	TechStack      pq.StringArray `db:"tech_stack"`
	GithubURL      string         `db:"github_url"`
	DemoURL        string         `db:"demo_url"`
	IsFeatured     bool           `db:"is_featured"`
	OrderIndex     int            `db:"order_index"`
	CreatedAt      time.Time      `db:"created_at"`
}

func (row *projectRow) toDomain() *domain.Project {
	return &domain.Project{
		ID:             row.ID,
		PortfolioID:    row.PortfolioID,
		Name:           row.Name,
		CoverImageURL:  row.CoverImageURL,
		CarouselImages: nonNil(row.CarouselImages),
		Description:    row.Description,
		TechStack:      nonNil(row.TechStack),
		GithubURL:      row.GithubURL,
		DemoURL:        row.DemoURL,
		IsFeatured:     row.IsFeatured,
		OrderIndex:     row.OrderIndex,
		CreatedAt:      row.CreatedAt,
	}
}

type projectCardRow struct {
	ID                       uuid.UUID      `db:"id"`
	Name                     string         `db:"name"`
	Description              string         `db:"description"`
	CoverImageURL            string         `db:"cover_image_url"`
	TechStack                pq.StringArray `db:"tech_stack"`
	PortfolioID              uuid.UUID      `db:"portfolio_id"`
	PortfolioUsername        string         `db:"portfolio_username"`
	PortfolioFullName        string         `db:"portfolio_full_name"`
	PortfolioJobTitle        string         `db:"portfolio_job_title"`
	PortfolioProfilePhotoURL string         `db:"portfolio_profile_photo_url"`
	PortfolioViewCount       int            `db:"portfolio_view_count"`
	PortfolioCreatedAt       time.Time      `db:"portfolio_created_at"`
}

func nonNil(a pq.StringArray) []string {
	if a == nil {
		return []string{}
	}
	return []string(a)
}

type projectRepository struct {
	db sqlx.ExtContext
}

func NewProjectRepository(db sqlx.ExtContext) repository.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) CreateBatch(ctx context.Context, projects []*domain.Project) error {
	query := `
		INSERT INTO projects (
			portfolio_id, name, cover_image_url, carousel_images, description,
			tech_stack, github_url, demo_url, is_featured, order_index
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`
	for _, p := range projects {
		err := r.db.QueryRowxContext(
			ctx, query,
			p.PortfolioID, p.Name, p.CoverImageURL, pq.Array(p.CarouselImages), p.Description,
			pq.Array(p.TechStack), p.GithubURL, p.DemoURL, p.IsFeatured, p.OrderIndex,
		).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *projectRepository) DeleteByPortfolio(ctx context.Context, portfolioID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE portfolio_id = $1`, portfolioID)
	return err
}

func (r *projectRepository) ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]*domain.Project, error) {
	var rows []projectRow
	query := `
		SELECT id, portfolio_id, name, cover_image_url, carousel_images, description,
		       tech_stack, github_url, demo_url, is_featured, order_index, created_at
		FROM projects
		WHERE portfolio_id = $1
		ORDER BY order_index
	`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, portfolioID); err != nil {
		return nil, err
	}
	projects := make([]*domain.Project, 0, len(rows))
	for i := range rows {
		projects = append(projects, rows[i].toDomain())
	}
	return projects, nil
}

func (r *projectRepository) ListPublicCards(ctx context.Context) ([]*domain.ProjectCard, error) {
	var rows []projectCardRow
	query := `
		SELECT pr.id, pr.name, pr.description, pr.cover_image_url, pr.tech_stack,
		       p.id AS portfolio_id,
		       p.username AS portfolio_username,
		       p.full_name AS portfolio_full_name,
		       p.job_title AS portfolio_job_title,
		       p.profile_photo_url AS portfolio_profile_photo_url,
		       p.view_count AS portfolio_view_count,
		       p.created_at AS portfolio_created_at
		FROM projects pr
		JOIN portfolios p ON p.id = pr.portfolio_id
		WHERE p.is_public = TRUE
		ORDER BY p.created_at DESC, pr.order_index
	`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, err
	}
	cards := make([]*domain.ProjectCard, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, &domain.ProjectCard{
			ID:                       row.ID,
			Name:                     row.Name,
			Description:              row.Description,
			CoverImageURL:            row.CoverImageURL,
			TechStack:                nonNil(row.TechStack),
			PortfolioID:              row.PortfolioID,
			PortfolioUsername:        row.PortfolioUsername,
			PortfolioFullName:        row.PortfolioFullName,
			PortfolioJobTitle:        row.PortfolioJobTitle,
			PortfolioProfilePhotoURL: row.PortfolioProfilePhotoURL,
			PortfolioViewCount:       row.PortfolioViewCount,
			PortfolioCreatedAt:       row.PortfolioCreatedAt,
		})
	}
	return cards, nil
}
