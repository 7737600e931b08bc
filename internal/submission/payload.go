package submission

import (
	"github.com/portoo/portoo-backend/internal/form"
	"github.com/portoo/portoo-backend/internal/usecase/portfolio"
)

// buildRequest maps form data onto the create payload. Blank experiences and
// inactive projects are left out, and current positions carry no end date.
func buildRequest(d form.Data) *portfolio.CreatePortfolioRequest {
	isPublic := d.IsPublic
	req := &portfolio.CreatePortfolioRequest{
		Username:           d.Username,
		FullName:           d.FullName,
		Tagline:            d.Tagline,
		JobTitle:           d.JobTitle,
		Location:           d.Location,
		Bio:                d.Bio,
		Email:              d.Email,
		ProfilePhotoURL:    d.ProfilePhotoURL,
		LinkedinURL:        d.LinkedinURL,
		GithubUsername:     d.GithubUsername,
		ResumeURL:          d.ResumeURL,
		AvailabilityStatus: string(d.AvailabilityStatus),
		OpenToWork:         d.OpenToWork,
		Template:           d.Template,
		IsPublic:           &isPublic,
		Skills:             make([]portfolio.SkillInput, 0, len(d.Skills)),
		Experiences:        []portfolio.ExperienceInput{},
		Projects:           []portfolio.ProjectInput{},
	}
	for _, s := range d.Skills {
		req.Skills = append(req.Skills, portfolio.SkillInput{Name: s.Name, Category: s.Category})
	}
	for _, e := range d.ActiveExperiences() {
		end := e.EndDate
		if e.IsCurrent {
			end = ""
		}
		req.Experiences = append(req.Experiences, portfolio.ExperienceInput{
			Company:     e.Company,
			Role:        e.Role,
			Location:    e.Location,
			StartDate:   e.StartDate,
			EndDate:     end,
			IsCurrent:   e.IsCurrent,
			Description: e.Description,
		})
	}
	for _, p := range d.ActiveProjects() {
		req.Projects = append(req.Projects, portfolio.ProjectInput{
			Name:           p.Name,
			CoverImageURL:  p.CoverImageURL,
			CarouselImages: compact(p.GalleryURLs),
			Description:    p.Description,
			TechStack:      append([]string{}, p.TechStack...),
			GithubURL:      p.GithubURL,
			DemoURL:        p.DemoURL,
			IsFeatured:     p.IsFeatured,
		})
	}
	return req
}

// UpdateFromCreate turns a full payload into an update that sets every field
// except the username.
func UpdateFromCreate(req *portfolio.CreatePortfolioRequest) *portfolio.UpdatePortfolioRequest {
	skills := req.Skills
	experiences := req.Experiences
	projects := req.Projects
	return &portfolio.UpdatePortfolioRequest{
		FullName:           &req.FullName,
		Tagline:            &req.Tagline,
		JobTitle:           &req.JobTitle,
		Location:           &req.Location,
		Bio:                &req.Bio,
		Email:              &req.Email,
		ProfilePhotoURL:    &req.ProfilePhotoURL,
		LinkedinURL:        &req.LinkedinURL,
		GithubUsername:     &req.GithubUsername,
		ResumeURL:          &req.ResumeURL,
		AvailabilityStatus: &req.AvailabilityStatus,
		OpenToWork:         &req.OpenToWork,
		Skills:             &skills,
		Template:           &req.Template,
		IsPublic:           req.IsPublic,
		Experiences:        &experiences,
		Projects:           &projects,
	}
}
