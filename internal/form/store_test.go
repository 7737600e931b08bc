package form

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newTestStore() *Store {
	s := NewStore()
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func featured(d Data) []string {
	var out []string
	for _, p := range d.Projects {
		if p.IsFeatured {
			out = append(out, p.ID)
		}
	}
	return out
}

func TestNewStoreDefaults(t *testing.T) {
	s := NewStore()
	d := s.Data()
	assert.Equal(t, StepPersonal, s.Step())
	assert.Equal(t, domain.AvailabilityOpenFulltime, d.AvailabilityStatus)
	assert.True(t, d.OpenToWork)
	assert.True(t, d.IsPublic)
	assert.Equal(t, domain.TemplateMinimal, d.Template)
	assert.False(t, s.EditMode())
}

func TestUpdatePersonalMerges(t *testing.T) {
	s := newTestStore()
	s.UpdatePersonal(PersonalPatch{FullName: ptr("Alex"), JobTitle: ptr("Engineer")})
	s.UpdatePersonal(PersonalPatch{Tagline: ptr("Builds things"), OpenToWork: ptr(false)})

	d := s.Data()
	assert.Equal(t, "Alex", d.FullName)
	assert.Equal(t, "Engineer", d.JobTitle)
	assert.Equal(t, "Builds things", d.Tagline)
	assert.False(t, d.OpenToWork)
}

func TestDataIsACopy(t *testing.T) {
	s := newTestStore()
	id, err := s.AddProject()
	require.NoError(t, err)
	require.NoError(t, s.UpdateProject(id, ProjectPatch{TechStack: &[]string{"Go"}}))

	d := s.Data()
	d.Projects[0].TechStack[0] = "Rust"
	d.Projects[0].Name = "changed"

	assert.Equal(t, []string{"Go"}, s.Data().Projects[0].TechStack)
	assert.Empty(t, s.Data().Projects[0].Name)
}

func TestExperienceLimitAndOps(t *testing.T) {
	s := newTestStore()
	for i := 0; i < domain.MaxExperiences; i++ {
		_, err := s.AddExperience()
		require.NoError(t, err)
	}
	_, err := s.AddExperience()
	assert.ErrorIs(t, err, ErrTooManyExperiences)

	require.NoError(t, s.UpdateExperience("id-3", ExperiencePatch{Company: ptr("Acme")}))
	assert.Equal(t, "Acme", s.Data().Experiences[2].Company)

	require.NoError(t, s.RemoveExperience("id-1"))
	assert.Len(t, s.Data().Experiences, domain.MaxExperiences-1)
	assert.ErrorIs(t, s.RemoveExperience("id-1"), ErrItemNotFound)
	assert.ErrorIs(t, s.UpdateExperience("nope", ExperiencePatch{}), ErrItemNotFound)
}

func TestReorderIsRemoveThenInsert(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 4; i++ {
		_, err := s.AddExperience()
		require.NoError(t, err)
	}
	ids := func() []string {
		var out []string
		for _, e := range s.Data().Experiences {
			out = append(out, e.ID)
		}
		return out
	}

	require.NoError(t, s.ReorderExperiences(0, 2))
	assert.Equal(t, []string{"id-2", "id-3", "id-1", "id-4"}, ids())

	require.NoError(t, s.ReorderExperiences(3, 0))
	assert.Equal(t, []string{"id-4", "id-2", "id-3", "id-1"}, ids())

	assert.ErrorIs(t, s.ReorderExperiences(0, 4), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.ReorderExperiences(-1, 0), ErrIndexOutOfRange)
}

func TestProjectLimit(t *testing.T) {
	s := newTestStore()
	for i := 0; i < domain.MaxProjects; i++ {
		_, err := s.AddProject()
		require.NoError(t, err)
	}
	_, err := s.AddProject()
	assert.ErrorIs(t, err, ErrTooManyProjects)
}

func TestFeaturedInvariant(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 3; i++ {
		_, err := s.AddProject()
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"id-1"}, featured(s.Data()), "first project starts featured")

	require.NoError(t, s.SetFeatured("id-3", true))
	assert.Equal(t, []string{"id-3"}, featured(s.Data()))

	require.NoError(t, s.ReorderProjects(2, 0))
	require.NoError(t, s.RemoveProject("id-3"))
	assert.Equal(t, []string{"id-1"}, featured(s.Data()), "first remaining project is promoted")

	require.NoError(t, s.RemoveProject("id-2"))
	assert.Equal(t, []string{"id-1"}, featured(s.Data()))

	require.NoError(t, s.SetFeatured("id-1", false))
	assert.Empty(t, featured(s.Data()))

	require.NoError(t, s.RemoveProject("id-1"))
	assert.Empty(t, s.Data().Projects)
	assert.ErrorIs(t, s.SetFeatured("id-1", true), ErrItemNotFound)
}

func TestRemovingUnfeaturedProjectKeepsFeatured(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 3; i++ {
		_, err := s.AddProject()
		require.NoError(t, err)
	}
	require.NoError(t, s.SetFeatured("id-2", true))
	require.NoError(t, s.RemoveProject("id-1"))
	assert.Equal(t, []string{"id-2"}, featured(s.Data()))
}

func TestUpdateProjectGalleryIsBounded(t *testing.T) {
	s := newTestStore()
	id, err := s.AddProject()
	require.NoError(t, err)
	require.NoError(t, s.UpdateProject(id, ProjectPatch{
		Name:         ptr("Site"),
		GalleryFiles: &[]string{"a.png", "b.png", "c.png", "d.png"},
	}))
	p := s.Data().Projects[0]
	assert.Equal(t, "Site", p.Name)
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, p.GalleryFiles)
}

func TestSetTemplateRemapsPastel(t *testing.T) {
	s := newTestStore()
	s.SetTemplate("pastel")
	assert.Equal(t, domain.TemplateProfessional, s.Data().Template)
}

func fillPersonal(s *Store) {
	s.UpdatePersonal(PersonalPatch{
		FullName: ptr("Alex Rivera"),
		JobTitle: ptr("Engineer"),
		Bio:      ptr("I build things."),
		Email:    ptr("alex@example.com"),
	})
}

func TestNextBackGating(t *testing.T) {
	s := newTestStore()

	err := s.Next()
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepPersonal, stepErr.Step)
	assert.Equal(t, "Full name is required", stepErr.Message)
	assert.Equal(t, StepPersonal, s.Step())

	fillPersonal(s)
	for _, want := range []Step{StepSkills, StepExperience, StepProjects, StepTemplate} {
		require.NoError(t, s.Next())
		assert.Equal(t, want, s.Step())
	}

	err = s.Next()
	require.Error(t, err)
	assert.Equal(t, "Please enter a username (at least 3 characters)", err.Error())

	s.SetUsername("alex")
	require.NoError(t, s.Next())
	assert.Equal(t, StepTemplate, s.Step())

	s.Back()
	assert.Equal(t, StepProjects, s.Step())
	for i := 0; i < 10; i++ {
		s.Back()
	}
	assert.Equal(t, StepPersonal, s.Step())
}

func TestValidateStep(t *testing.T) {
	valid := Data{FullName: "Alex", JobTitle: "Eng", Bio: "Hello", Email: "a@b.co", Username: "abc"}
	cases := []struct {
		name  string
		step  Step
		edit  bool
		patch func(d *Data)
		want  string
	}{
		{"valid personal", StepPersonal, false, func(d *Data) {}, ""},
		{"missing title", StepPersonal, false, func(d *Data) { d.JobTitle = "  " }, "Job title is required"},
		{"missing bio", StepPersonal, false, func(d *Data) { d.Bio = "" }, "Bio is required"},
		{"missing email", StepPersonal, false, func(d *Data) { d.Email = "" }, "Email is required"},
		{"bad email", StepPersonal, false, func(d *Data) { d.Email = "a@b" }, "Invalid email format"},
		{"bio 400 words", StepPersonal, false, func(d *Data) { d.Bio = strings.Repeat("w ", 400) }, ""},
		{"bio 401 words", StepPersonal, false, func(d *Data) { d.Bio = strings.Repeat("w ", 401) }, "Bio must be 400 words or less."},
		{"skills never block", StepSkills, false, func(d *Data) { d.FullName = "" }, ""},
		{"projects never block", StepProjects, false, func(d *Data) {}, ""},
		{"username 3 chars", StepTemplate, false, func(d *Data) {}, ""},
		{"username 2 chars", StepTemplate, false, func(d *Data) { d.Username = "ab" }, "Please enter a username (at least 3 characters)"},
		{"username uppercase", StepTemplate, false, func(d *Data) { d.Username = "Alex" }, "Username can only contain lowercase letters, numbers, and hyphens"},
		{"edit mode skips username", StepTemplate, true, func(d *Data) { d.Username = "" }, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := valid
			tc.patch(&d)
			err := ValidateStep(&d, tc.step, tc.edit)
			if tc.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestValidateSubmitRequiresProjectNames(t *testing.T) {
	d := Data{FullName: "Alex", JobTitle: "Eng", Bio: "Hello", Email: "a@b.co", Username: "abc",
		Projects: []Project{{Name: "ok"}, {}, {TechStack: []string{"Go"}}}}
	err := ValidateSubmit(&d, false)
	require.Error(t, err)
	assert.Equal(t, "Each project must have a name.", err.Error())

	d.Projects = d.Projects[:2]
	assert.NoError(t, ValidateSubmit(&d, false))
}

func sampleAggregate() *domain.PortfolioAggregate {
	return &domain.PortfolioAggregate{
		Portfolio: domain.Portfolio{
			Username: "alex",
			FullName: "Alex Rivera",
			Email:    "Alex@Example.com",
			Template: "pastel",
			IsPublic: true,
			Skills:   domain.Skills{{Name: "Go", Category: "Languages"}},
		},
		Experiences: []*domain.Experience{{ID: uuid.New(), Company: "Acme", OrderIndex: 0}},
		Projects: []*domain.Project{
			{Name: "One", IsFeatured: true, CarouselImages: []string{"u1", "u2"}},
			{Name: "Two", IsFeatured: true},
		},
	}
}

func TestHydrate(t *testing.T) {
	s := newTestStore()
	s.UpdatePersonal(PersonalPatch{FullName: ptr("stale")})

	require.NoError(t, s.Hydrate(sampleAggregate(), "alex@example.COM"))

	d := s.Data()
	assert.Equal(t, "alex", s.EditUsername())
	assert.True(t, s.EditMode())
	assert.Equal(t, StepPersonal, s.Step())
	assert.Equal(t, "Alex Rivera", d.FullName)
	assert.Equal(t, domain.TemplateProfessional, d.Template)
	require.Len(t, d.Experiences, 1)
	assert.NotEmpty(t, d.Experiences[0].ID)
	require.Len(t, d.Projects, 2)
	assert.Equal(t, []string{"u1", "u2"}, d.Projects[0].GalleryURLs)
	assert.Equal(t, "id-1", d.Projects[0].ID, "rows without ids get fresh ones")
	assert.Len(t, featured(d), 1)
	assert.True(t, d.Projects[0].IsFeatured)
}

func TestHydrateOwnerGuard(t *testing.T) {
	s := newTestStore()
	s.UpdatePersonal(PersonalPatch{FullName: ptr("mine")})

	assert.ErrorIs(t, s.Hydrate(sampleAggregate(), ""), ErrLoginRequired)
	assert.ErrorIs(t, s.Hydrate(sampleAggregate(), "someone@else.com"), ErrNotOwner)

	assert.Equal(t, "mine", s.Data().FullName)
	assert.False(t, s.EditMode())
}

func TestEditAsKeepsData(t *testing.T) {
	s := newTestStore()
	s.UpdatePersonal(PersonalPatch{FullName: ptr("Alex")})
	require.False(t, s.EditMode())

	s.EditAs("alex")
	assert.True(t, s.EditMode())
	assert.Equal(t, "alex", s.EditUsername())
	assert.Equal(t, "alex", s.Data().Username)
	assert.Equal(t, "Alex", s.Data().FullName)
}
