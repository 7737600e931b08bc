package form

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/portoo/portoo-backend/internal/domain"
)

type Step int

const (
	StepPersonal Step = iota + 1
	StepSkills
	StepExperience
	StepProjects
	StepTemplate
)

const (
	FirstStep = StepPersonal
	LastStep  = StepTemplate
)

func (s Step) String() string {
	switch s {
	case StepPersonal:
		return "personal"
	case StepSkills:
		return "skills"
	case StepExperience:
		return "experience"
	case StepProjects:
		return "projects"
	case StepTemplate:
		return "template"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// StepError is a failed step gate. Message is shown to the user as is.
type StepError struct {
	Step    Step
	Message string
}

func (e *StepError) Error() string {
	return e.Message
}

// ValidateStep checks the gate of a single step. Only the personal and template
// steps can block; the username is only required when creating a new portfolio.
func ValidateStep(d *Data, step Step, editMode bool) error {
	fail := func(msg string) error { return &StepError{Step: step, Message: msg} }

	switch step {
	case StepPersonal:
		switch {
		case blank(d.FullName):
			return fail("Full name is required")
		case blank(d.JobTitle):
			return fail("Job title is required")
		case blank(d.Bio):
			return fail("Bio is required")
		case blank(d.Email):
			return fail("Email is required")
		case !emailRe.MatchString(d.Email):
			return fail("Invalid email format")
		case domain.CountWords(d.Bio) > domain.MaxBioWords:
			return fail("Bio must be 400 words or less.")
		}
	case StepTemplate:
		if editMode {
			return nil
		}
		if len(d.Username) < domain.MinUsernameLength {
			return fail("Please enter a username (at least 3 characters)")
		}
		if !domain.MatchesUsernamePattern(d.Username) {
			return fail("Username can only contain lowercase letters, numbers, and hyphens")
		}
	}
	return nil
}

// ValidateSubmit runs every step gate plus the checks that only apply to the
// final payload.
func ValidateSubmit(d *Data, editMode bool) error {
	for step := FirstStep; step <= LastStep; step++ {
		if err := ValidateStep(d, step, editMode); err != nil {
			return err
		}
	}
	for _, p := range d.ActiveProjects() {
		if strings.TrimSpace(p.Name) == "" {
			return &StepError{Step: StepProjects, Message: "Each project must have a name."}
		}
	}
	return nil
}
