// Package memory keeps the whole portfolio dataset in process memory.
// It backs DB_DRIVER=memory for local development and doubles as the fake in use case tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/repository"
)

type state struct {
	portfolios  map[uuid.UUID]*domain.Portfolio
	experiences map[uuid.UUID][]*domain.Experience
	projects    map[uuid.UUID][]*domain.Project
	contacts    []*domain.ContactMessage
}

func newState() *state {
	return &state{
		portfolios:  make(map[uuid.UUID]*domain.Portfolio),
		experiences: make(map[uuid.UUID][]*domain.Experience),
		projects:    make(map[uuid.UUID][]*domain.Project),
	}
}

func (s *state) clone() *state {
	c := newState()
	for id, p := range s.portfolios {
		cp := *p
		cp.Skills = append(domain.Skills(nil), p.Skills...)
		c.portfolios[id] = &cp
	}
	for id, list := range s.experiences {
		c.experiences[id] = cloneExperiences(list)
	}
	for id, list := range s.projects {
		c.projects[id] = cloneProjects(list)
	}
	c.contacts = append(c.contacts, s.contacts...)
	return c
}

// Store is a mutex-guarded in-memory dataset
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	data *state
	now  func() time.Time

	// NoViewRPC simulates a deployment without increment_view_count.
	NoViewRPC bool
	// BeforeProjectInsert, when set, runs before every project batch insert; a non-nil error aborts it.
	BeforeProjectInsert func(projects []*domain.Project) error
}

func NewStore() *Store {
	return &Store{data: newState(), now: time.Now}
}

// SetClock replaces the timestamp source used for created_at/updated_at
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Repositories returns repositories bound to the store outside any transaction.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Portfolios:  &portfolioRepo{s: s},
		Experiences: &experienceRepo{s: s},
		Projects:    &projectRepo{s: s},
		Contacts:    &contactRepo{s: s},
	}
}

// WithinTx serializes transactions and restores a snapshot when fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(ctx, s.Repositories()); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// Contacts returns a copy of the stored contact messages
func (s *Store) Contacts() []*domain.ContactMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.ContactMessage(nil), s.data.contacts...)
}

func (s *Store) findByUsername(username string) *domain.Portfolio {
	for _, p := range s.data.portfolios {
		if p.Username == username {
			return p
		}
	}
	return nil
}

type portfolioRepo struct{ s *Store }

func (r *portfolioRepo) Create(_ context.Context, p *domain.Portfolio) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.data.portfolios {
		if existing.Username == p.Username {
			return domain.ErrUsernameTaken
		}
		if strings.EqualFold(existing.Email, p.Email) {
			return domain.ErrEmailHasPortfolio
		}
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := r.s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	r.s.data.portfolios[p.ID] = &cp
	return nil
}

func (r *portfolioRepo) Update(_ context.Context, p *domain.Portfolio) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.data.portfolios[p.ID]
	if !ok {
		return domain.ErrPortfolioNotFound
	}
	for id, other := range r.s.data.portfolios {
		if id != p.ID && strings.EqualFold(other.Email, p.Email) {
			return domain.ErrEmailHasPortfolio
		}
	}
	p.UpdatedAt = r.s.now()
	p.CreatedAt = existing.CreatedAt
	p.ViewCount = existing.ViewCount
	cp := *p
	r.s.data.portfolios[p.ID] = &cp
	return nil
}

func (r *portfolioRepo) GetByUsername(_ context.Context, username string) (*domain.Portfolio, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.s.findByUsername(username)
	if p == nil {
		return nil, domain.ErrPortfolioNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *portfolioRepo) GetByEmail(_ context.Context, email string) (*domain.Portfolio, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.data.portfolios {
		if strings.EqualFold(p.Email, email) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrPortfolioNotFound
}

func (r *portfolioRepo) ListByEmail(_ context.Context, email string) ([]*domain.PortfolioSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.PortfolioSummary
	for _, p := range r.s.data.portfolios {
		if strings.EqualFold(p.Email, email) {
			out = append(out, &domain.PortfolioSummary{
				ID:        p.ID,
				Username:  p.Username,
				FullName:  p.FullName,
				JobTitle:  p.JobTitle,
				IsPublic:  p.IsPublic,
				UpdatedAt: p.UpdatedAt,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *portfolioRepo) ListPublic(_ context.Context) ([]*domain.Portfolio, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.Portfolio
	for _, p := range r.s.data.portfolios {
		if p.IsPublic {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *portfolioRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.findByUsername(username) != nil, nil
}

func (r *portfolioRepo) UsernamesWithPrefix(_ context.Context, prefix string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []string
	for _, p := range r.s.data.portfolios {
		if strings.HasPrefix(p.Username, prefix) {
			out = append(out, p.Username)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *portfolioRepo) IncrementViews(_ context.Context, username string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.NoViewRPC {
		return 0, repository.ErrAtomicViewsUnavailable
	}
	p := r.s.findByUsername(username)
	if p == nil {
		return 0, domain.ErrPortfolioNotFound
	}
	p.ViewCount++
	return p.ViewCount, nil
}

func (r *portfolioRepo) SetViewCount(_ context.Context, username string, count int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.s.findByUsername(username)
	if p == nil {
		return domain.ErrPortfolioNotFound
	}
	p.ViewCount = count
	return nil
}

type experienceRepo struct{ s *Store }

func (r *experienceRepo) CreateBatch(_ context.Context, experiences []*domain.Experience) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	for _, e := range experiences {
		if _, ok := r.s.data.portfolios[e.PortfolioID]; !ok {
			return domain.ErrPortfolioNotFound
		}
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		e.CreatedAt = now
		cp := *e
		r.s.data.experiences[e.PortfolioID] = append(r.s.data.experiences[e.PortfolioID], &cp)
	}
	return nil
}

func (r *experienceRepo) DeleteByPortfolio(_ context.Context, portfolioID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.experiences, portfolioID)
	return nil
}

func (r *experienceRepo) ListByPortfolio(_ context.Context, portfolioID uuid.UUID) ([]*domain.Experience, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := cloneExperiences(r.s.data.experiences[portfolioID])
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

type projectRepo struct{ s *Store }

func (r *projectRepo) CreateBatch(_ context.Context, projects []*domain.Project) error {
	if hook := r.s.BeforeProjectInsert; hook != nil {
		if err := hook(projects); err != nil {
			return err
		}
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	for _, p := range projects {
		if _, ok := r.s.data.portfolios[p.PortfolioID]; !ok {
			return domain.ErrPortfolioNotFound
		}
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		p.CreatedAt = now
		r.s.data.projects[p.PortfolioID] = append(r.s.data.projects[p.PortfolioID], cloneProject(p))
	}
	return nil
}

func (r *projectRepo) DeleteByPortfolio(_ context.Context, portfolioID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.projects, portfolioID)
	return nil
}

func (r *projectRepo) ListByPortfolio(_ context.Context, portfolioID uuid.UUID) ([]*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := cloneProjects(r.s.data.projects[portfolioID])
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (r *projectRepo) ListPublicCards(_ context.Context) ([]*domain.ProjectCard, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.ProjectCard
	for id, list := range r.s.data.projects {
		owner, ok := r.s.data.portfolios[id]
		if !ok || !owner.IsPublic {
			continue
		}
		for _, p := range list {
			out = append(out, &domain.ProjectCard{
				ID:                       p.ID,
				Name:                     p.Name,
				Description:              p.Description,
				CoverImageURL:            p.CoverImageURL,
				TechStack:                copyStrings(p.TechStack),
				PortfolioID:              owner.ID,
				PortfolioUsername:        owner.Username,
				PortfolioFullName:        owner.FullName,
				PortfolioJobTitle:        owner.JobTitle,
				PortfolioProfilePhotoURL: owner.ProfilePhotoURL,
				PortfolioViewCount:       owner.ViewCount,
				PortfolioCreatedAt:       owner.CreatedAt,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PortfolioCreatedAt.After(out[j].PortfolioCreatedAt)
	})
	return out, nil
}

type contactRepo struct{ s *Store }

func (r *contactRepo) Create(_ context.Context, msg *domain.ContactMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.portfolios[msg.PortfolioID]; !ok {
		return domain.ErrPortfolioNotFound
	}
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	msg.CreatedAt = r.s.now()
	cp := *msg
	r.s.data.contacts = append(r.s.data.contacts, &cp)
	return nil
}

func cloneExperiences(list []*domain.Experience) []*domain.Experience {
	out := make([]*domain.Experience, 0, len(list))
	for _, e := range list {
		cp := *e
		out = append(out, &cp)
	}
	return out
}

func cloneProject(p *domain.Project) *domain.Project {
	cp := *p
	cp.CarouselImages = copyStrings(p.CarouselImages)
	cp.TechStack = copyStrings(p.TechStack)
	return &cp
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneProjects(list []*domain.Project) []*domain.Project {
	out := make([]*domain.Project, 0, len(list))
	for _, p := range list {
		out = append(out, cloneProject(p))
	}
	return out
}
