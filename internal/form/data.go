package form

import (
	"strings"

	"github.com/portoo/portoo-backend/internal/domain"
)

// Data is the whole authoring state of one portfolio. Fields named *File hold local
// paths of files that still have to be uploaded; the matching *URL fields hold
// already stored objects.
type Data struct {
	Username           string                    `yaml:"username,omitempty"`
	FullName           string                    `yaml:"full_name"`
	Tagline            string                    `yaml:"tagline,omitempty"`
	JobTitle           string                    `yaml:"job_title"`
	Location           string                    `yaml:"location,omitempty"`
	Bio                string                    `yaml:"bio"`
	Email              string                    `yaml:"email"`
	ProfilePhotoFile   string                    `yaml:"profile_photo,omitempty"`
	ProfilePhotoURL    string                    `yaml:"profile_photo_url,omitempty"`
	LinkedinURL        string                    `yaml:"linkedin_url,omitempty"`
	GithubUsername     string                    `yaml:"github_username,omitempty"`
	ResumeFile         string                    `yaml:"resume,omitempty"`
	ResumeURL          string                    `yaml:"resume_url,omitempty"`
	AvailabilityStatus domain.AvailabilityStatus `yaml:"availability_status"`
	OpenToWork         bool                      `yaml:"open_to_work"`
	Skills             []domain.Skill            `yaml:"skills,omitempty"`
	Experiences        []Experience              `yaml:"experiences,omitempty"`
	Projects           []Project                 `yaml:"projects,omitempty"`
	Template           string                    `yaml:"template"`
	IsPublic           bool                      `yaml:"is_public"`
}

type Experience struct {
	ID          string `yaml:"-"`
	Company     string `yaml:"company,omitempty"`
	Role        string `yaml:"role,omitempty"`
	Location    string `yaml:"location,omitempty"`
	StartDate   string `yaml:"start_date,omitempty"`
	EndDate     string `yaml:"end_date,omitempty"`
	IsCurrent   bool   `yaml:"is_current,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// IsBlank reports whether the entry would be dropped on submit
func (e *Experience) IsBlank() bool {
	return blank(e.Company) && blank(e.Role) && blank(e.Description)
}

// Project is one project card. GalleryFiles and GalleryURLs are indexed by gallery
// slot; an empty entry is an empty slot.
type Project struct {
	ID            string   `yaml:"-"`
	Name          string   `yaml:"name,omitempty"`
	CoverFile     string   `yaml:"cover_image,omitempty"`
	CoverImageURL string   `yaml:"cover_image_url,omitempty"`
	GalleryFiles  []string `yaml:"carousel_images,omitempty"`
	GalleryURLs   []string `yaml:"carousel_image_urls,omitempty"`
	Description   string   `yaml:"description,omitempty"`
	TechStack     []string `yaml:"tech_stack,omitempty"`
	GithubURL     string   `yaml:"github_url,omitempty"`
	DemoURL       string   `yaml:"demo_url,omitempty"`
	IsFeatured    bool     `yaml:"is_featured,omitempty"`
}

// IsActive reports whether the project carries anything worth submitting,
// including a pending cover image or a tech stack.
func (p *Project) IsActive() bool {
	return !blank(p.Name) || !blank(p.Description) ||
		p.CoverFile != "" || p.CoverImageURL != "" ||
		len(p.TechStack) > 0 ||
		!blank(p.GithubURL) || !blank(p.DemoURL)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ActiveExperiences returns the non-blank experiences in order
func (d *Data) ActiveExperiences() []Experience {
	out := make([]Experience, 0, len(d.Experiences))
	for _, e := range d.Experiences {
		if !e.IsBlank() {
			out = append(out, e)
		}
	}
	return out
}

func (d *Data) ActiveProjects() []Project {
	out := make([]Project, 0, len(d.Projects))
	for _, p := range d.Projects {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out
}

func (d Data) clone() Data {
	out := d
	out.Skills = append([]domain.Skill(nil), d.Skills...)
	out.Experiences = append([]Experience(nil), d.Experiences...)
	out.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		p.GalleryFiles = append([]string(nil), p.GalleryFiles...)
		p.GalleryURLs = append([]string(nil), p.GalleryURLs...)
		p.TechStack = append([]string(nil), p.TechStack...)
		out.Projects[i] = p
	}
	return out
}

func defaultData() Data {
	return Data{
		AvailabilityStatus: domain.AvailabilityOpenFulltime,
		OpenToWork:         true,
		Template:           domain.TemplateMinimal,
		IsPublic:           true,
		Skills:             []domain.Skill{},
		Experiences:        []Experience{},
		Projects:           []Project{},
	}
}
