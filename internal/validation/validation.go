package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/portoo/portoo-backend/internal/domain"
)

// Issue is a single per-field validation failure returned to API clients
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries the structured issues of a failed validation
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	if len(e.Issues) == 0 {
		return "validation error"
	}
	return e.Issues[0].Message
}

// Validator wraps validator/v10 with the portfolio-specific tags registered.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		return domain.MatchesUsernamePattern(fl.Field().String())
	})
	mustRegister(v, "maxwords", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return domain.CountWords(fl.Field().String()) <= limit
	})
	mustRegister(v, "availability", func(fl validator.FieldLevel) bool {
		return domain.AvailabilityStatus(fl.Field().String()).Valid()
	})
	mustRegister(v, "template", func(fl validator.FieldLevel) bool {
		return domain.ValidTemplate(fl.Field().String())
	})
	mustRegister(v, "skillcategory", func(fl validator.FieldLevel) bool {
		return domain.ValidSkillCategory(fl.Field().String())
	})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// Struct validates s and converts failures into an *Error.
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}
	return &Error{Issues: issues}
}

// fieldPath drops the root struct name: "CreatePortfolioRequest.skills[0].name" -> "skills[0].name"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", humanize(field))
	case "username":
		return domain.UserMessage(domain.ErrUsernameFormat)
	case "maxwords":
		return fmt.Sprintf("%s must be %s words or less", humanize(field), fe.Param())
	case "email":
		return "Invalid email address"
	case "url", "http_url":
		return fmt.Sprintf("Invalid %s", strings.ToLower(humanize(field)))
	case "availability":
		return "Availability must be one of open_fulltime, freelance, not_looking"
	case "template":
		return "Template must be minimal or professional"
	case "skillcategory":
		return "Skill category must be one of Languages, Tools, Frameworks, Other"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", humanize(field), fe.Param())
		}
		return fmt.Sprintf("%s must contain at least %s items", humanize(field), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be under %s characters", humanize(field), fe.Param())
		}
		return fmt.Sprintf("Max %s %s allowed", fe.Param(), strings.ToLower(humanize(field)))
	}
	return fmt.Sprintf("%s is invalid", humanize(field))
}

// humanize turns "full_name" into "Full name"
func humanize(field string) string {
	if i := strings.Index(field, "["); i >= 0 {
		field = field[:i]
	}
	field = strings.ReplaceAll(field, "_", " ")
	if field == "" {
		return field
	}
	r, size := utf8.DecodeRuneInString(field)
	return strings.ToUpper(string(r)) + field[size:]
}
