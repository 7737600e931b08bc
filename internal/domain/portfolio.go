package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type AvailabilityStatus string

const (
	AvailabilityOpenFulltime AvailabilityStatus = "open_fulltime"
	AvailabilityFreelance    AvailabilityStatus = "freelance"
	AvailabilityNotLooking   AvailabilityStatus = "not_looking"
)

func (a AvailabilityStatus) Valid() bool {
	switch a {
	case AvailabilityOpenFulltime, AvailabilityFreelance, AvailabilityNotLooking:
		return true
	}
	return false
}

const (
	TemplateMinimal      = "minimal"
	TemplateProfessional = "professional"

	// legacy value still present in older rows and clients
	templatePastel = "pastel"
)

// NormalizeTemplate maps the legacy "pastel" template to "professional".
func NormalizeTemplate(template string) string {
	if template == templatePastel {
		return TemplateProfessional
	}
	return template
}

func ValidTemplate(template string) bool {
	return template == TemplateMinimal || template == TemplateProfessional
}

const (
	MaxBioWords          = 400
	MaxDescriptionLength = 800
	MaxSkills            = 30
	MaxExperiences       = 10
	MaxProjects          = 10
	GallerySlots         = 3
)

var SkillCategories = []string{"Languages", "Tools", "Frameworks", "Other"}

func ValidSkillCategory(category string) bool {
	for _, c := range SkillCategories {
		if c == category {
			return true
		}
	}
	return false
}

// CountWords counts whitespace-delimited words
func CountWords(s string) int {
	return len(strings.Fields(s))
}

type Skill struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// Skills is stored as embedded JSON on the portfolio row.
type Skills []Skill

func (s Skills) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (s *Skills) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = Skills{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("skills: unsupported scan type %T", src)
	}
	if len(raw) == 0 {
		*s = Skills{}
		return nil
	}
	return json.Unmarshal(raw, (*[]Skill)(s))
}

type Portfolio struct {
	ID                 uuid.UUID          `json:"id" db:"id"`
	Username           string             `json:"username" db:"username"`
	FullName           string             `json:"full_name" db:"full_name"`
	Tagline            string             `json:"tagline" db:"tagline"`
	JobTitle           string             `json:"job_title" db:"job_title"`
	Location           string             `json:"location" db:"location"`
	Bio                string             `json:"bio" db:"bio"`
	Email              string             `json:"email" db:"email"`
	ProfilePhotoURL    string             `json:"profile_photo_url" db:"profile_photo_url"`
	LinkedinURL        string             `json:"linkedin_url" db:"linkedin_url"`
	GithubUsername     string             `json:"github_username" db:"github_username"`
	ResumeURL          string             `json:"resume_url" db:"resume_url"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status" db:"availability_status"`
	OpenToWork         bool               `json:"open_to_work" db:"open_to_work"`
	Skills             Skills             `json:"skills" db:"skills"`
	Template           string             `json:"template" db:"template"`
	IsPublic           bool               `json:"is_public" db:"is_public"`
	ViewCount          int                `json:"view_count" db:"view_count"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" db:"updated_at"`
}

// IsAvailable reports whether the owner is looking for work in any form
func (p *Portfolio) IsAvailable() bool {
	return p.OpenToWork ||
		p.AvailabilityStatus == AvailabilityOpenFulltime ||
		p.AvailabilityStatus == AvailabilityFreelance
}

// OwnedBy compares the owner e-mail case-insensitively.
func (p *Portfolio) OwnedBy(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && strings.EqualFold(strings.TrimSpace(p.Email), email)
}

type Experience struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PortfolioID uuid.UUID `json:"portfolio_id" db:"portfolio_id"`
	Company     string    `json:"company" db:"company"`
	Role        string    `json:"role" db:"role"`
	Location    string    `json:"location" db:"location"`
	StartDate   string    `json:"start_date" db:"start_date"`
	EndDate     string    `json:"end_date" db:"end_date"`
	IsCurrent   bool      `json:"is_current" db:"is_current"`
	Description string    `json:"description" db:"description"`
	OrderIndex  int       `json:"order_index" db:"order_index"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type Project struct {
	ID             uuid.UUID `json:"id"`
	PortfolioID    uuid.UUID `json:"portfolio_id"`
	Name           string    `json:"name"`
	CoverImageURL  string    `json:"cover_image_url"`
	CarouselImages []string  `json:"carousel_images"`
	Description    string    `json:"description"`
	TechStack      []string  `json:"tech_stack"`
	GithubURL      string    `json:"github_url"`
	DemoURL        string    `json:"demo_url"`
	IsFeatured     bool      `json:"is_featured"`
	OrderIndex     int       `json:"order_index"`
	CreatedAt      time.Time `json:"created_at"`
}

// PortfolioAggregate is a portfolio together with its ordered child collections
type PortfolioAggregate struct {
	Portfolio
	Experiences []*Experience `json:"experiences"`
	Projects    []*Project    `json:"projects"`
}

// FeaturedProject returns the featured project, or the first one when none is flagged.
func (a *PortfolioAggregate) FeaturedProject() *Project {
	for _, p := range a.Projects {
		if p.IsFeatured {
			return p
		}
	}
	if len(a.Projects) > 0 {
		return a.Projects[0]
	}
	return nil
}

// PortfolioSummary is the owner-facing listing row
type PortfolioSummary struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	FullName  string    `json:"full_name" db:"full_name"`
	JobTitle  string    `json:"job_title" db:"job_title"`
	IsPublic  bool      `json:"is_public" db:"is_public"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ProjectCard is a public project joined with its owner's portfolio fields.
type ProjectCard struct {
	ID                       uuid.UUID `json:"id"`
	Name                     string    `json:"name"`
	Description              string    `json:"description"`
	CoverImageURL            string    `json:"cover_image_url"`
	TechStack                []string  `json:"tech_stack"`
	PortfolioID              uuid.UUID `json:"portfolio_id"`
	PortfolioUsername        string    `json:"portfolio_username"`
	PortfolioFullName        string    `json:"portfolio_full_name"`
	PortfolioJobTitle        string    `json:"portfolio_job_title"`
	PortfolioProfilePhotoURL string    `json:"portfolio_profile_photo_url"`
	PortfolioViewCount       int       `json:"portfolio_view_count"`
	PortfolioCreatedAt       time.Time `json:"portfolio_created_at"`
}

type ContactMessage struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PortfolioID uuid.UUID `json:"portfolio_id" db:"portfolio_id"`
	SenderName  string    `json:"sender_name" db:"sender_name"`
	SenderEmail string    `json:"sender_email" db:"sender_email"`
	Message     string    `json:"message" db:"message"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
