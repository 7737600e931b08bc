package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/portoo/portoo-backend/internal/domain"
)

// ErrAtomicViewsUnavailable means the store has no atomic view counter and callers should fall back to read-then-write.
var ErrAtomicViewsUnavailable = errors.New("atomic view counter is not available")

type PortfolioRepository interface {
	Create(ctx context.Context, portfolio *domain.Portfolio) error
	Update(ctx context.Context, portfolio *domain.Portfolio) error
	GetByUsername(ctx context.Context, username string) (*domain.Portfolio, error)
	GetByEmail(ctx context.Context, email string) (*domain.Portfolio, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.PortfolioSummary, error)
	ListPublic(ctx context.Context) ([]*domain.Portfolio, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UsernamesWithPrefix(ctx context.Context, prefix string) ([]string, error)
	// IncrementViews performs the atomic server-side increment and returns the new count.
	IncrementViews(ctx context.Context, username string) (int, error)
	SetViewCount(ctx context.Context, username string, count int) error
}

type ExperienceRepository interface {
	CreateBatch(ctx context.Context, experiences []*domain.Experience) error
	DeleteByPortfolio(ctx context.Context, portfolioID uuid.UUID) error
	ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]*domain.Experience, error)
}

type ProjectRepository interface {
	CreateBatch(ctx context.Context, projects []*domain.Project) error
	DeleteByPortfolio(ctx context.Context, portfolioID uuid.UUID) error
	ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]*domain.Project, error)
	ListPublicCards(ctx context.Context) ([]*domain.ProjectCard, error)
}

type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
}

// Repositories groups the repositories bound to one connection or transaction
type Repositories struct {
	Portfolios  PortfolioRepository
	Experiences ExperienceRepository
	Projects    ProjectRepository
	Contacts    ContactRepository
}

// Transactor runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Capabilities describes optional schema features detected at startup
type Capabilities struct {
	Experiences bool
}

// DirectoryCache stores the public directory snapshot between writes.
type DirectoryCache interface {
	GetPortfolios(ctx context.Context) ([]*domain.Portfolio, bool)
	SetPortfolios(ctx context.Context, portfolios []*domain.Portfolio)
	GetProjects(ctx context.Context) ([]*domain.ProjectCard, bool)
	SetProjects(ctx context.Context, projects []*domain.ProjectCard)
	Invalidate(ctx context.Context)
}

// NoopCache never hits; used when Redis is not configured
type NoopCache struct{}

func (NoopCache) GetPortfolios(context.Context) ([]*domain.Portfolio, bool) { return nil, false }
func (NoopCache) SetPortfolios(context.Context, []*domain.Portfolio) {}
func (NoopCache) GetProjects(context.Context) ([]*domain.ProjectCard, bool) { return nil, false }
func (NoopCache) SetProjects(context.Context, []*domain.ProjectCard) {}
func (NoopCache) Invalidate(context.Context) {}
