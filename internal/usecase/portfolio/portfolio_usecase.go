package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/portoo/portoo-backend/internal/apperr"
	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/portoo/portoo-backend/internal/repository"
	"github.com/portoo/portoo-backend/internal/validation"
)

type PortfolioUseCase struct {
	repos     repository.Repositories
	tx        repository.Transactor
	caps      repository.Capabilities
	cache     repository.DirectoryCache
	validator *validation.Validator
	baseURL   string
	log       *logger.Logger
}

func NewPortfolioUseCase(
	repos repository.Repositories,
	tx repository.Transactor,
	caps repository.Capabilities,
	cache repository.DirectoryCache,
	validator *validation.Validator,
	baseURL string,
	log *logger.Logger,
) *PortfolioUseCase {
	if cache == nil {
		cache = repository.NoopCache{}
	}
	return &PortfolioUseCase{
		repos:     repos,
		tx:        tx,
		caps:      caps,
		cache:     cache,
		validator: validator,
		baseURL:   strings.TrimRight(baseURL, "/"),
		log:       log.With("usecase", "portfolio"),
	}
}

// Create validates the aggregate, enforces the one-portfolio-per-email and username rules
// and writes the portfolio with its experiences and projects in one transaction.
func (uc *PortfolioUseCase) Create(ctx context.Context, req *CreatePortfolioRequest) (*CreateResult, error) {
	req.Template = domain.NormalizeTemplate(req.Template)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := uc.validator.Struct(req); err != nil {
		return nil, err
	}

	existing, err := uc.repos.Portfolios.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, emailConflict(existing.Username)
	case !errors.Is(err, domain.ErrPortfolioNotFound):
		uc.log.Error("Failed to check existing portfolio", "error", err)
		return nil, apperr.Internal("Failed to create portfolio", err)
	}

	if err := domain.ValidateUsername(req.Username); err != nil {
		return nil, apperr.Invalid(err)
	}
	taken, err := uc.repos.Portfolios.UsernameExists(ctx, req.Username)
	if err != nil {
		uc.log.Error("Failed to check username", "username", req.Username, "error", err)
		return nil, apperr.Internal("Failed to create portfolio", err)
	}
	if taken {
		return nil, usernameConflict(req.Username)
	}

	experiences := buildExperiences(req.Experiences)
	projects := buildProjects(req.Projects)
	if err := checkLimits(experiences, projects); err != nil {
		return nil, err
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	p := &domain.Portfolio{
		Username:           req.Username,
		FullName:           req.FullName,
		Tagline:            req.Tagline,
		JobTitle:           req.JobTitle,
		Location:           req.Location,
		Bio:                req.Bio,
		Email:              req.Email,
		ProfilePhotoURL:    req.ProfilePhotoURL,
		LinkedinURL:        req.LinkedinURL,
		GithubUsername:     req.GithubUsername,
		ResumeURL:          req.ResumeURL,
		AvailabilityStatus: domain.AvailabilityStatus(req.AvailabilityStatus),
		OpenToWork:         req.OpenToWork,
		Skills:             toSkills(req.Skills),
		Template:           req.Template,
		IsPublic:           isPublic,
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Portfolios.Create(ctx, p); err != nil {
			switch {
			case errors.Is(err, domain.ErrUsernameTaken):
				return usernameConflict(p.Username)
			case errors.Is(err, domain.ErrEmailHasPortfolio):
				return emailConflict("")
			}
			uc.log.Error("Portfolio insert failed", "username", p.Username, "error", err)
			return apperr.Internal("Failed to create portfolio", err)
		}
		if err := uc.writeExperiences(ctx, repos, p, experiences, false); err != nil {
			return apperr.Internal("Failed to save experiences. Please check experience details and try again.", err)
		}
		if err := uc.writeProjects(ctx, repos, p, projects, false); err != nil {
			return apperr.Internal("Failed to save projects. Please check project details and try again.", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	uc.log.Info("Portfolio created", "username", p.Username, "experiences", len(experiences), "projects", len(projects))

	return &CreateResult{
		Username:     p.Username,
		PortfolioURL: uc.PortfolioURL(p.Username),
	}, nil
}

// Update applies the fields present in req to the portfolio owned by ownerEmail.
// Child collections present in req are replaced wholesale; absent ones are left untouched.
func (uc *PortfolioUseCase) Update(ctx context.Context, username, ownerEmail string, req *UpdatePortfolioRequest) (*domain.PortfolioAggregate, error) {
	if req.Template != nil {
		t := domain.NormalizeTemplate(*req.Template)
		req.Template = &t
	}
	if err := uc.validator.Struct(req); err != nil {
		return nil, err
	}

	p, err := uc.repos.Portfolios.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrPortfolioNotFound) {
			return nil, apperr.NotFound("Portfolio not found", err)
		}
		uc.log.Error("Failed to load portfolio", "username", username, "error", err)
		return nil, apperr.Internal("Failed to update portfolio", err)
	}
	if !p.OwnedBy(ownerEmail) {
		return nil, apperr.Forbidden("You can only edit your own portfolio", nil)
	}

	var experiences []*domain.Experience
	var projects []*domain.Project
	if req.Experiences != nil {
		experiences = buildExperiences(*req.Experiences)
	}
	if req.Projects != nil {
		projects = buildProjects(*req.Projects)
	}
	if err := checkLimits(experiences, projects); err != nil {
		return nil, err
	}

	applyUpdate(p, req)

	err = uc.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Portfolios.Update(ctx, p); err != nil {
			if errors.Is(err, domain.ErrEmailHasPortfolio) {
				return emailConflict("")
			}
			uc.log.Error("Portfolio update failed", "username", username, "error", err)
			return apperr.Internal("Failed to update portfolio", err)
		}
		if req.Experiences != nil {
			if err := uc.writeExperiences(ctx, repos, p, experiences, true); err != nil {
				return apperr.Internal("Failed to update experiences", err)
			}
		}
		if req.Projects != nil {
			if err := uc.writeProjects(ctx, repos, p, projects, true); err != nil {
				return apperr.Internal("Failed to update projects", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	uc.log.Info("Portfolio updated", "username", username)

	return uc.loadAggregate(ctx, p)
}

// GetPublic returns a public portfolio with its children ordered by order_index.
func (uc *PortfolioUseCase) GetPublic(ctx context.Context, username string) (*domain.PortfolioAggregate, error) {
	p, err := uc.repos.Portfolios.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrPortfolioNotFound) {
			return nil, apperr.NotFound("Portfolio not found", err)
		}
		uc.log.Error("Failed to load portfolio", "username", username, "error", err)
		return nil, apperr.Internal("Internal server error", err)
	}
	if !p.IsPublic {
		return nil, apperr.NotFound("Portfolio not found", domain.ErrPortfolioNotFound)
	}
	return uc.loadAggregate(ctx, p)
}

// ListMine returns the caller's portfolios, most recently updated first
func (uc *PortfolioUseCase) ListMine(ctx context.Context, email string) ([]*domain.PortfolioSummary, error) {
	list, err := uc.repos.Portfolios.ListByEmail(ctx, email)
	if err != nil {
		uc.log.Error("My portfolios fetch failed", "error", err)
		return nil, apperr.Internal("Failed to fetch portfolios", err)
	}
	if list == nil {
		list = []*domain.PortfolioSummary{}
	}
	return list, nil
}

// IncrementViews bumps the view counter, preferring the atomic store primitive and
// falling back to read-then-write. Unknown usernames report a count of zero.
func (uc *PortfolioUseCase) IncrementViews(ctx context.Context, username string) (int, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, apperr.Invalid(domain.ErrUsernameRequired)
	}

	count, err := uc.repos.Portfolios.IncrementViews(ctx, username)
	if err == nil {
		return count, nil
	}
	if errors.Is(err, domain.ErrPortfolioNotFound) {
		return 0, nil
	}
	uc.log.Debug("Atomic view increment unavailable, falling back", "username", username, "error", err)

	p, err := uc.repos.Portfolios.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrPortfolioNotFound) {
			return 0, nil
		}
		uc.log.Error("View count read failed", "username", username, "error", err)
		return 0, apperr.Internal("Internal server error", err)
	}
	next := p.ViewCount + 1
	if err := uc.repos.Portfolios.SetViewCount(ctx, username, next); err != nil {
		uc.log.Error("View count write failed", "username", username, "error", err)
		return 0, apperr.Internal("Internal server error", err)
	}
	return next, nil
}

// PortfolioURL is the public address of a portfolio page
func (uc *PortfolioUseCase) PortfolioURL(username string) string {
	return fmt.Sprintf("%s/%s", uc.baseURL, username)
}

func (uc *PortfolioUseCase) writeExperiences(ctx context.Context, repos repository.Repositories, p *domain.Portfolio, experiences []*domain.Experience, replace bool) error {
	if !uc.caps.Experiences {
		if len(experiences) > 0 || replace {
			uc.log.Warn("Experiences table is missing. Continuing without saving experiences.", "username", p.Username)
		}
		return nil
	}
	if replace {
		if err := repos.Experiences.DeleteByPortfolio(ctx, p.ID); err != nil {
			uc.log.Error("Experience delete failed", "username", p.Username, "error", err)
			return err
		}
	}
	if len(experiences) == 0 {
		return nil
	}
	for _, e := range experiences {
		e.PortfolioID = p.ID
	}
	if err := repos.Experiences.CreateBatch(ctx, experiences); err != nil {
		uc.log.Error("Experiences insert failed", "username", p.Username, "error", err)
		return err
	}
	return nil
}

func (uc *PortfolioUseCase) writeProjects(ctx context.Context, repos repository.Repositories, p *domain.Portfolio, projects []*domain.Project, replace bool) error {
	if replace {
		if err := repos.Projects.DeleteByPortfolio(ctx, p.ID); err != nil {
			uc.log.Error("Project delete failed", "username", p.Username, "error", err)
			return err
		}
	}
	if len(projects) == 0 {
		return nil
	}
	for _, pr := range projects {
		pr.PortfolioID = p.ID
	}
	if err := repos.Projects.CreateBatch(ctx, projects); err != nil {
		uc.log.Error("Projects insert failed", "username", p.Username, "error", err)
		return err
	}
	return nil
}

func (uc *PortfolioUseCase) loadAggregate(ctx context.Context, p *domain.Portfolio) (*domain.PortfolioAggregate, error) {
	p.Template = domain.NormalizeTemplate(p.Template)
	agg := &domain.PortfolioAggregate{
		Portfolio:   *p,
		Experiences: []*domain.Experience{},
		Projects:    []*domain.Project{},
	}

	if uc.caps.Experiences {
		experiences, err := uc.repos.Experiences.ListByPortfolio(ctx, p.ID)
		if err != nil {
			uc.log.Error("Experiences fetch failed", "username", p.Username, "error", err)
		} else if experiences != nil {
			agg.Experiences = experiences
		}
	}

	projects, err := uc.repos.Projects.ListByPortfolio(ctx, p.ID)
	if err != nil {
		uc.log.Error("Projects fetch failed", "username", p.Username, "error", err)
	} else if projects != nil {
		agg.Projects = projects
	}
	return agg, nil
}

func applyUpdate(p *domain.Portfolio, req *UpdatePortfolioRequest) {
	setString(&p.FullName, req.FullName)
	setString(&p.Tagline, req.Tagline)
	setString(&p.JobTitle, req.JobTitle)
	setString(&p.Location, req.Location)
	setString(&p.Bio, req.Bio)
	setString(&p.ProfilePhotoURL, req.ProfilePhotoURL)
	setString(&p.LinkedinURL, req.LinkedinURL)
	setString(&p.GithubUsername, req.GithubUsername)
	setString(&p.ResumeURL, req.ResumeURL)
	setString(&p.Template, req.Template)
	if req.Email != nil {
		p.Email = strings.TrimSpace(*req.Email)
	}
	if req.AvailabilityStatus != nil {
		p.AvailabilityStatus = domain.AvailabilityStatus(*req.AvailabilityStatus)
	}
	if req.OpenToWork != nil {
		p.OpenToWork = *req.OpenToWork
	}
	if req.IsPublic != nil {
		p.IsPublic = *req.IsPublic
	}
	if req.Skills != nil {
		p.Skills = toSkills(*req.Skills)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func checkLimits(experiences []*domain.Experience, projects []*domain.Project) error {
	var issues []validation.Issue
	if len(experiences) > domain.MaxExperiences {
		issues = append(issues, validation.Issue{
			Field:   "experiences",
			Message: fmt.Sprintf("Max %d experiences", domain.MaxExperiences),
		})
	}
	if len(projects) > domain.MaxProjects {
		issues = append(issues, validation.Issue{
			Field:   "projects",
			Message: fmt.Sprintf("Max %d projects", domain.MaxProjects),
		})
	}
	if len(issues) > 0 {
		return &validation.Error{Issues: issues}
	}
	return nil
}

func emailConflict(existingUsername string) error {
	if existingUsername == "" {
		return apperr.Conflict("You already have a portfolio. You can only have one portfolio. Please edit your existing portfolio instead.", domain.ErrEmailHasPortfolio)
	}
	return apperr.Conflict(
		fmt.Sprintf("You already have a portfolio (@%s). You can only have one portfolio. Please edit your existing portfolio instead.", existingUsername),
		domain.ErrEmailHasPortfolio,
	)
}

func usernameConflict(username string) error {
	return apperr.Conflict(
		fmt.Sprintf("The username \"@%s\" is already taken. Please choose a different one.", username),
		domain.ErrUsernameTaken,
	)
}
