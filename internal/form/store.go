package form

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/portoo/portoo-backend/internal/domain"
)

var (
	ErrTooManyExperiences = errors.New("too many experiences (max 10)")
	ErrTooManyProjects    = errors.New("too many projects (max 10)")
	ErrItemNotFound       = errors.New("item not found")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrLoginRequired      = errors.New("login required to edit a portfolio")
	ErrNotOwner           = errors.New("portfolio belongs to another account")
)

// PersonalPatch carries the step 1 fields to merge; nil fields are left alone.
type PersonalPatch struct {
	FullName           *string
	Tagline            *string
	JobTitle           *string
	Location           *string
	Bio                *string
	Email              *string
	ProfilePhotoFile   *string
	ProfilePhotoURL    *string
	LinkedinURL        *string
	GithubUsername     *string
	ResumeFile         *string
	ResumeURL          *string
	AvailabilityStatus *domain.AvailabilityStatus
	OpenToWork         *bool
}

type ExperiencePatch struct {
	Company     *string
	Role        *string
	Location    *string
	StartDate   *string
	EndDate     *string
	IsCurrent   *bool
	Description *string
}

// ProjectPatch has no featured flag: featuring goes through SetFeatured.
type ProjectPatch struct {
	Name          *string
	CoverFile     *string
	CoverImageURL *string
	GalleryFiles  *[]string
	GalleryURLs   *[]string
	Description   *string
	TechStack     *[]string
	GithubURL     *string
	DemoURL       *string
}

// Store holds one authoring session: the form data, the current step and,
// in edit mode, the username being edited. It is safe for concurrent use.
type Store struct {
	mu           sync.RWMutex
	data         Data
	step         Step
	editUsername string
	newID        func() string
}

func NewStore() *Store {
	return &Store{
		data:  defaultData(),
		step:  FirstStep,
		newID: func() string { return uuid.NewString() },
	}
}

// Data returns a copy of the current state
func (s *Store) Data() Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

func (s *Store) Step() Step {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.step
}

// EditUsername is the username being edited, empty for a new portfolio
func (s *Store) EditUsername() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editUsername
}

func (s *Store) EditMode() bool {
	return s.EditUsername() != ""
}

func (s *Store) UpdatePersonal(p PersonalPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := &s.data
	set(&d.FullName, p.FullName)
	set(&d.Tagline, p.Tagline)
	set(&d.JobTitle, p.JobTitle)
	set(&d.Location, p.Location)
	set(&d.Bio, p.Bio)
	set(&d.Email, p.Email)
	set(&d.ProfilePhotoFile, p.ProfilePhotoFile)
	set(&d.ProfilePhotoURL, p.ProfilePhotoURL)
	set(&d.LinkedinURL, p.LinkedinURL)
	set(&d.GithubUsername, p.GithubUsername)
	set(&d.ResumeFile, p.ResumeFile)
	set(&d.ResumeURL, p.ResumeURL)
	set(&d.AvailabilityStatus, p.AvailabilityStatus)
	set(&d.OpenToWork, p.OpenToWork)
}

func (s *Store) SetSkills(skills []domain.Skill) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Skills = append([]domain.Skill{}, skills...)
}

// SetTemplate stores the template, mapping the legacy "pastel" value to "professional".
func (s *Store) SetTemplate(template string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Template = domain.NormalizeTemplate(template)
}

func (s *Store) SetUsername(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Username = strings.TrimSpace(username)
}

func (s *Store) SetPublic(public bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.IsPublic = public
}

// AddExperience appends an empty experience and returns its id
func (s *Store) AddExperience() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.data.Experiences) >= domain.MaxExperiences {
		return "", ErrTooManyExperiences
	}
	id := s.newID()
	s.data.Experiences = append(s.data.Experiences, Experience{ID: id})
	return id, nil
}

func (s *Store) RemoveExperience(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.data.Experiences, id, func(e Experience) string { return e.ID })
	if i < 0 {
		return ErrItemNotFound
	}
	s.data.Experiences = append(s.data.Experiences[:i], s.data.Experiences[i+1:]...)
	return nil
}

func (s *Store) UpdateExperience(id string, p ExperiencePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.data.Experiences, id, func(e Experience) string { return e.ID })
	if i < 0 {
		return ErrItemNotFound
	}
	e := &s.data.Experiences[i]
	set(&e.Company, p.Company)
	set(&e.Role, p.Role)
	set(&e.Location, p.Location)
	set(&e.StartDate, p.StartDate)
	set(&e.EndDate, p.EndDate)
	set(&e.IsCurrent, p.IsCurrent)
	set(&e.Description, p.Description)
	return nil
}

// ReorderExperiences moves the item at from so that it ends up at index to.
func (s *Store) ReorderExperiences(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := move(s.data.Experiences, from, to)
	if err != nil {
		return err
	}
	s.data.Experiences = out
	return nil
}

// AddProject appends an empty project and returns its id. The first project
// of an empty list starts out featured.
func (s *Store) AddProject() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.data.Projects) >= domain.MaxProjects {
		return "", ErrTooManyProjects
	}
	id := s.newID()
	s.data.Projects = append(s.data.Projects, Project{
		ID:           id,
		GalleryFiles: make([]string, domain.GallerySlots),
		IsFeatured:   len(s.data.Projects) == 0,
	})
	return id, nil
}

// RemoveProject deletes a project. When the featured project goes away the
// first remaining project is featured instead.
func (s *Store) RemoveProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.data.Projects, id, func(p Project) string { return p.ID })
	if i < 0 {
		return ErrItemNotFound
	}
	wasFeatured := s.data.Projects[i].IsFeatured
	s.data.Projects = append(s.data.Projects[:i], s.data.Projects[i+1:]...)
	if wasFeatured && len(s.data.Projects) > 0 {
		s.data.Projects[0].IsFeatured = true
	}
	return nil
}

func (s *Store) UpdateProject(id string, p ProjectPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.data.Projects, id, func(p Project) string { return p.ID })
	if i < 0 {
		return ErrItemNotFound
	}
	pr := &s.data.Projects[i]
	set(&pr.Name, p.Name)
	set(&pr.CoverFile, p.CoverFile)
	set(&pr.CoverImageURL, p.CoverImageURL)
	if p.GalleryFiles != nil {
		pr.GalleryFiles = gallery(*p.GalleryFiles)
	}
	if p.GalleryURLs != nil {
		pr.GalleryURLs = gallery(*p.GalleryURLs)
	}
	set(&pr.Description, p.Description)
	if p.TechStack != nil {
		pr.TechStack = append([]string{}, *p.TechStack...)
	}
	set(&pr.GithubURL, p.GithubURL)
	set(&pr.DemoURL, p.DemoURL)
	return nil
}

// SetFeatured flags or unflags a project. Flagging one unflags every other project.
func (s *Store) SetFeatured(id string, featured bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.data.Projects, id, func(p Project) string { return p.ID })
	if i < 0 {
		return ErrItemNotFound
	}
	for j := range s.data.Projects {
		if featured {
			s.data.Projects[j].IsFeatured = j == i
		} else if j == i {
			s.data.Projects[j].IsFeatured = false
		}
	}
	return nil
}

func (s *Store) ReorderProjects(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := move(s.data.Projects, from, to)
	if err != nil {
		return err
	}
	s.data.Projects = out
	return nil
}

// Next advances the cursor if the current step passes its gate.
func (s *Store) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ValidateStep(&s.data, s.step, s.editUsername != ""); err != nil {
		return err
	}
	if s.step < LastStep {
		s.step++
	}
	return nil
}

func (s *Store) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step > FirstStep {
		s.step--
	}
}

// Hydrate loads an existing portfolio for editing. Only the owner, matched by
// e-mail case-insensitively, may do so; on refusal the store is left untouched.
func (s *Store) Hydrate(agg *domain.PortfolioAggregate, viewerEmail string) error {
	if strings.TrimSpace(viewerEmail) == "" {
		return ErrLoginRequired
	}
	if !agg.OwnedBy(viewerEmail) {
		return ErrNotOwner
	}

	d := Data{
		FullName:           agg.FullName,
		Tagline:            agg.Tagline,
		JobTitle:           agg.JobTitle,
		Location:           agg.Location,
		Bio:                agg.Bio,
		Email:              agg.Email,
		ProfilePhotoURL:    agg.ProfilePhotoURL,
		LinkedinURL:        agg.LinkedinURL,
		GithubUsername:     agg.GithubUsername,
		ResumeURL:          agg.ResumeURL,
		AvailabilityStatus: agg.AvailabilityStatus,
		OpenToWork:         agg.OpenToWork,
		Skills:             append([]domain.Skill{}, agg.Skills...),
		Template:           domain.NormalizeTemplate(agg.Template),
		IsPublic:           agg.IsPublic,
		Experiences:        make([]Experience, 0, len(agg.Experiences)),
		Projects:           make([]Project, 0, len(agg.Projects)),
	}
	for _, e := range agg.Experiences {
		d.Experiences = append(d.Experiences, Experience{
			ID:          s.idOr(e.ID.String()),
			Company:     e.Company,
			Role:        e.Role,
			Location:    e.Location,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			IsCurrent:   e.IsCurrent,
			Description: e.Description,
		})
	}
	for _, p := range agg.Projects {
		d.Projects = append(d.Projects, Project{
			ID:            s.idOr(p.ID.String()),
			Name:          p.Name,
			CoverImageURL: p.CoverImageURL,
			GalleryFiles:  make([]string, domain.GallerySlots),
			GalleryURLs:   gallery(p.CarouselImages),
			Description:   p.Description,
			TechStack:     append([]string{}, p.TechStack...),
			GithubURL:     p.GithubURL,
			DemoURL:       p.DemoURL,
			IsFeatured:    p.IsFeatured,
		})
	}
	normalizeFeatured(d.Projects)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = d
	s.editUsername = agg.Username
	s.step = FirstStep
	return nil
}

// EditAs puts the store in edit mode for username while keeping the loaded data,
// as when a draft written from a hydrated store is read back from disk.
func (s *Store) EditAs(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editUsername = username
	s.data.Username = username
}

func (s *Store) idOr(id string) string {
	if id == "" || id == uuid.Nil.String() {
		return s.newID()
	}
	return id
}

// normalizeFeatured keeps the first flagged project and unflags the rest.
func normalizeFeatured(projects []Project) {
	seen := false
	for i := range projects {
		if projects[i].IsFeatured {
			projects[i].IsFeatured = !seen
			seen = true
		}
	}
}

// gallery trims a slot list to the gallery size
func gallery(in []string) []string {
	out := append([]string{}, in...)
	if len(out) > domain.GallerySlots {
		out = out[:domain.GallerySlots]
	}
	return out
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func indexOf[T any](items []T, id string, key func(T) string) int {
	for i, it := range items {
		if key(it) == id {
			return i
		}
	}
	return -1
}

// move is a remove-then-insert, not a swap
func move[T any](items []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, ErrIndexOutOfRange
	}
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	item := items[from]
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out, nil
}
