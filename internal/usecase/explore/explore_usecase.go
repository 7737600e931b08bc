package explore

import (
	"context"

	"github.com/portoo/portoo-backend/internal/apperr"
	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/portoo/portoo-backend/internal/repository"
)

// ExploreUseCase serves the public directory from a cached snapshot of public portfolios and projects.
type ExploreUseCase struct {
	portfolios repository.PortfolioRepository
	projects   repository.ProjectRepository
	cache      repository.DirectoryCache
	log        *logger.Logger
}

func NewExploreUseCase(
	portfolios repository.PortfolioRepository,
	projects repository.ProjectRepository,
	cache repository.DirectoryCache,
	log *logger.Logger,
) *ExploreUseCase {
	if cache == nil {
		cache = repository.NoopCache{}
	}
	return &ExploreUseCase{
		portfolios: portfolios,
		projects:   projects,
		cache:      cache,
		log:        log.With("usecase", "explore"),
	}
}

func (uc *ExploreUseCase) Portfolios(ctx context.Context, q Query) (*Page[*domain.Portfolio], error) {
	all, err := uc.publicPortfolios(ctx)
	if err != nil {
		return nil, err
	}
	page := QueryPortfolios(all, q)
	return &page, nil
}

func (uc *ExploreUseCase) Projects(ctx context.Context, q Query) (*Page[*domain.ProjectCard], error) {
	all, ok := uc.cache.GetProjects(ctx)
	if !ok {
		var err error
		all, err = uc.projects.ListPublicCards(ctx)
		if err != nil {
			uc.log.Error("Error fetching projects", "error", err)
			return nil, apperr.Internal("Failed to load projects", err)
		}
		uc.cache.SetProjects(ctx, all)
	}
	page := QueryProjects(all, q)
	return &page, nil
}

// Skills lists every skill name used by a public portfolio
func (uc *ExploreUseCase) Skills(ctx context.Context) ([]string, error) {
	all, err := uc.publicPortfolios(ctx)
	if err != nil {
		return nil, err
	}
	return PortfolioSkills(all), nil
}

func (uc *ExploreUseCase) publicPortfolios(ctx context.Context) ([]*domain.Portfolio, error) {
	if all, ok := uc.cache.GetPortfolios(ctx); ok {
		return all, nil
	}
	all, err := uc.portfolios.ListPublic(ctx)
	if err != nil {
		uc.log.Error("Explore fetch failed", "error", err)
		return nil, apperr.Internal("Failed to load portfolios", err)
	}
	uc.cache.SetPortfolios(ctx, all)
	return all, nil
}
