package bio

import (
	"context"
	"fmt"
	"strings"

	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/infrastructure/gemini"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/portoo/portoo-backend/internal/validation"
)

const DraftCount = 3

// DraftGenerator produces bio drafts. *gemini.GeminiClient implements it.
type DraftGenerator interface {
	GenerateBioDrafts(ctx context.Context, p gemini.BioPrompt) ([]string, error)
}

type DraftRequest struct {
	FullName string   `json:"full_name" validate:"required,max=100"`
	JobTitle string   `json:"job_title" validate:"required,max=100"`
	Skills   []string `json:"skills" validate:"max=30"`
	Tone     string   `json:"tone" validate:"max=50"`
}

type DraftResponse struct {
	Drafts    []string `json:"drafts"`
	Generated bool     `json:"generated"`
}

type BioUseCase struct {
	generator DraftGenerator
	validator *validation.Validator
	log       *logger.Logger
}

// NewBioUseCase accepts a nil generator, in which case only template drafts are served.
func NewBioUseCase(generator DraftGenerator, validator *validation.Validator, log *logger.Logger) *BioUseCase {
	return &BioUseCase{
		generator: generator,
		validator: validator,
		log:       log.With("usecase", "bio"),
	}
}

// Drafts returns DraftCount bios of at most domain.MaxBioWords words each.
// Generator failures are logged and replaced by template drafts.
func (uc *BioUseCase) Drafts(ctx context.Context, req *DraftRequest) (*DraftResponse, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	if err := uc.validator.Struct(req); err != nil {
		return nil, err
	}

	skills := make([]string, 0, len(req.Skills))
	for _, s := range req.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	if uc.generator != nil {
		drafts, err := uc.generator.GenerateBioDrafts(ctx, gemini.BioPrompt{
			FullName: req.FullName,
			JobTitle: req.JobTitle,
			Skills:   skills,
			Tone:     req.Tone,
			Count:    DraftCount,
			MaxWords: domain.MaxBioWords,
		})
		if err == nil && len(drafts) > 0 {
			return &DraftResponse{Drafts: fill(clampAll(drafts), req.FullName, req.JobTitle, skills), Generated: true}, nil
		}
		uc.log.Warn("Bio generator unavailable, using template drafts", "error", err)
	}

	return &DraftResponse{Drafts: templateDrafts(req.FullName, req.JobTitle, skills)}, nil
}

func clampAll(drafts []string) []string {
	if len(drafts) > DraftCount {
		drafts = drafts[:DraftCount]
	}
	out := make([]string, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, Clamp(d, domain.MaxBioWords))
	}
	return out
}

// fill tops up a short generator answer with template drafts
func fill(drafts []string, name, title string, skills []string) []string {
	for _, t := range templateDrafts(name, title, skills) {
		if len(drafts) >= DraftCount {
			break
		}
		drafts = append(drafts, t)
	}
	return drafts
}

// Clamp cuts s down to at most max words, normalizing whitespace only when it cuts.
func Clamp(s string, max int) string {
	words := strings.Fields(s)
	if len(words) <= max {
		return strings.TrimSpace(s)
	}
	return strings.Join(words[:max], " ")
}

func templateDrafts(name, title string, skills []string) []string {
	first := strings.Fields(name)[0]
	article := "a"
	if title != "" && strings.ContainsRune("AEIOUaeiou", rune(title[0])) {
		article = "an"
	}

	var withSkills, toolkit string
	switch len(skills) {
	case 0:
		withSkills = ""
		toolkit = "the right tool for each problem"
	case 1:
		withSkills = fmt.Sprintf(" with a focus on %s", skills[0])
		toolkit = skills[0]
	default:
		list := strings.Join(skills[:len(skills)-1], ", ") + " and " + skills[len(skills)-1]
		withSkills = fmt.Sprintf(" working mostly with %s", list)
		toolkit = list
	}

	return []string{
		fmt.Sprintf("I'm %s, %s %s%s. I care about building things that are simple to use and easy to maintain, and I enjoy turning rough ideas into finished work.", name, article, title, withSkills),
		fmt.Sprintf("Hi, I'm %s. As %s %s I spend my days solving practical problems with %s. I like clear communication, steady progress and shipping work I can be proud of.", first, article, title, toolkit),
		fmt.Sprintf("Meet %s, %s %s who enjoys learning by doing. Their toolkit includes %s, and they are always looking for the next interesting project to work on.", name, article, title, toolkit),
	}
}
