package portfolio

import (
	"strings"

	"github.com/portoo/portoo-backend/internal/domain"
)

type SkillInput struct {
	Name     string `json:"name" yaml:"name" validate:"required,max=50"`
	Category string `json:"category" yaml:"category" validate:"skillcategory"`
}

type ExperienceInput struct {
	Company     string `json:"company" yaml:"company" validate:"max=100"`
	Role        string `json:"role" yaml:"role" validate:"max=100"`
	Location    string `json:"location" yaml:"location" validate:"max=100"`
	StartDate   string `json:"start_date" yaml:"start_date"`
	EndDate     string `json:"end_date" yaml:"end_date"`
	IsCurrent   bool   `json:"is_current" yaml:"is_current"`
	Description string `json:"description" yaml:"description" validate:"max=800"`
}

// IsBlank reports whether none of the free-text fields carry content
func (e ExperienceInput) IsBlank() bool {
	return blank(e.Company) && blank(e.Role) && blank(e.Description)
}

type ProjectInput struct {
	Name           string   `json:"name" yaml:"name" validate:"max=100"`
	CoverImageURL  string   `json:"cover_image_url" yaml:"cover_image_url"`
	CarouselImages []string `json:"carousel_images" yaml:"carousel_images" validate:"max=3"`
	Description    string   `json:"description" yaml:"description" validate:"max=800"`
	TechStack      []string `json:"tech_stack" yaml:"tech_stack"`
	GithubURL      string   `json:"github_url" yaml:"github_url" validate:"omitempty,url"`
	DemoURL        string   `json:"demo_url" yaml:"demo_url" validate:"omitempty,url"`
	IsFeatured     bool     `json:"is_featured" yaml:"is_featured"`
}

func (p ProjectInput) IsBlank() bool {
	return blank(p.Name) && blank(p.Description) && blank(p.GithubURL) && blank(p.DemoURL)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// CreatePortfolioRequest is the full aggregate submitted by the builder
type CreatePortfolioRequest struct {
	Username           string            `json:"username" validate:"required"`
	FullName           string            `json:"full_name" validate:"required,max=100"`
	Tagline            string            `json:"tagline" validate:"max=100"`
	JobTitle           string            `json:"job_title" validate:"required,max=100"`
	Location           string            `json:"location" validate:"max=100"`
	Bio                string            `json:"bio" validate:"maxwords=400"`
	Email              string            `json:"email" validate:"required,email"`
	ProfilePhotoURL    string            `json:"profile_photo_url"`
	LinkedinURL        string            `json:"linkedin_url" validate:"omitempty,url"`
	GithubUsername     string            `json:"github_username" validate:"max=50"`
	ResumeURL          string            `json:"resume_url"`
	AvailabilityStatus string            `json:"availability_status" validate:"availability"`
	OpenToWork         bool              `json:"open_to_work"`
	Skills             []SkillInput      `json:"skills" validate:"max=30,dive"`
	Template           string            `json:"template" validate:"template"`
	IsPublic           *bool             `json:"is_public"`
	Experiences        []ExperienceInput `json:"experiences" validate:"dive"`
	Projects           []ProjectInput    `json:"projects" validate:"dive"`
}

// UpdatePortfolioRequest only touches the fields present in the body.
// There is no username field: usernames are fixed at creation.
type UpdatePortfolioRequest struct {
	FullName           *string            `json:"full_name" validate:"omitnil,required,max=100"`
	Tagline            *string            `json:"tagline" validate:"omitnil,max=100"`
	JobTitle           *string            `json:"job_title" validate:"omitnil,required,max=100"`
	Location           *string            `json:"location" validate:"omitnil,max=100"`
	Bio                *string            `json:"bio" validate:"omitnil,maxwords=400"`
	Email              *string            `json:"email" validate:"omitnil,required,email"`
	ProfilePhotoURL    *string            `json:"profile_photo_url"`
	LinkedinURL        *string            `json:"linkedin_url" validate:"omitnil,omitempty,url"`
	GithubUsername     *string            `json:"github_username" validate:"omitnil,max=50"`
	ResumeURL          *string            `json:"resume_url"`
	AvailabilityStatus *string            `json:"availability_status" validate:"omitnil,availability"`
	OpenToWork         *bool              `json:"open_to_work"`
	Skills             *[]SkillInput      `json:"skills" validate:"omitnil,max=30,dive"`
	Template           *string            `json:"template" validate:"omitnil,template"`
	IsPublic           *bool              `json:"is_public"`
	Experiences        *[]ExperienceInput `json:"experiences" validate:"omitnil,dive"`
	Projects           *[]ProjectInput    `json:"projects" validate:"omitnil,dive"`
}

// CreateResult is returned after a successful create
type CreateResult struct {
	Username     string `json:"username"`
	PortfolioURL string `json:"portfolio_url"`
}

func toSkills(in []SkillInput) domain.Skills {
	out := make(domain.Skills, 0, len(in))
	for _, s := range in {
		out = append(out, domain.Skill{Name: strings.TrimSpace(s.Name), Category: s.Category})
	}
	return out
}

// buildExperiences drops blank entries and reassigns a dense order_index.
func buildExperiences(in []ExperienceInput) []*domain.Experience {
	out := make([]*domain.Experience, 0, len(in))
	for _, e := range in {
		if e.IsBlank() {
			continue
		}
		out = append(out, &domain.Experience{
			Company:     e.Company,
			Role:        e.Role,
			Location:    e.Location,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			IsCurrent:   e.IsCurrent,
			Description: e.Description,
			OrderIndex:  len(out),
		})
	}
	return out
}

// buildProjects drops blank entries, reindexes them and keeps at most one featured project.
func buildProjects(in []ProjectInput) []*domain.Project {
	out := make([]*domain.Project, 0, len(in))
	featured := false
	for _, p := range in {
		if p.IsBlank() {
			continue
		}
		isFeatured := p.IsFeatured && !featured
		featured = featured || isFeatured
		out = append(out, &domain.Project{
			Name:           p.Name,
			CoverImageURL:  p.CoverImageURL,
			CarouselImages: nonEmpty(p.CarouselImages),
			Description:    p.Description,
			TechStack:      nonEmpty(p.TechStack),
			GithubURL:      p.GithubURL,
			DemoURL:        p.DemoURL,
			IsFeatured:     isFeatured,
			OrderIndex:     len(out),
		})
	}
	return out
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
