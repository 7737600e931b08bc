package explore

import (
	"sort"
	"strings"

	"github.com/portoo/portoo-backend/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	PortfolioPageSize = 9
	ProjectPageSize   = 12

	SortNewest       = "newest"
	SortMostViewed   = "most_viewed"
	SortAlphabetical = "alphabetical"

	FilterAll       = "all"
	FilterAvailable = "available"
)

// Query holds the directory filters; zero values mean "no filter", newest first, page 1.
type Query struct {
	Search       string `form:"q"`
	Skill        string `form:"skill"`
	Availability string `form:"availability"`
	Sort         string `form:"sort"`
	Page         int    `form:"page"`
}

// Page is one page of a filtered, sorted listing
type Page[T any] struct {
	Items      []T      `json:"items"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	Total      int      `json:"total"`
	Skills     []string `json:"skills"`
}

// QueryPortfolios filters, sorts and paginates portfolios in a single pass over the slice.
func QueryPortfolios(all []*domain.Portfolio, q Query) Page[*domain.Portfolio] {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	skill := strings.ToLower(strings.TrimSpace(q.Skill))

	filtered := make([]*domain.Portfolio, 0, len(all))
	for _, p := range all {
		skillNames := make([]string, 0, len(p.Skills))
		for _, s := range p.Skills {
			skillNames = append(skillNames, strings.ToLower(s.Name))
		}
		if search != "" && !containsAny(search, skillNames, p.FullName, p.JobTitle, p.Location, p.Tagline, p.Bio) {
			continue
		}
		if skill != "" && skill != FilterAll && !contains(skillNames, skill) {
			continue
		}
		if !matchesAvailability(p, q.Availability) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch q.Sort {
	case SortMostViewed:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].ViewCount > filtered[j].ViewCount })
	case SortAlphabetical:
		c := newCollator()
		sort.SliceStable(filtered, func(i, j int) bool {
			return c.CompareString(filtered[i].FullName, filtered[j].FullName) < 0
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].CreatedAt.After(filtered[j].CreatedAt) })
	}

	return paginate(filtered, q.Page, PortfolioPageSize, PortfolioSkills(all))
}

// QueryProjects is the project-card variant: search covers the project and its owner, the
// skill filter matches the tech stack and alphabetical order uses the project name.
func QueryProjects(all []*domain.ProjectCard, q Query) Page[*domain.ProjectCard] {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	skill := strings.ToLower(strings.TrimSpace(q.Skill))

	filtered := make([]*domain.ProjectCard, 0, len(all))
	for _, p := range all {
		stack := make([]string, 0, len(p.TechStack))
		for _, s := range p.TechStack {
			stack = append(stack, strings.ToLower(s))
		}
		if search != "" && !containsAny(search, stack, p.Name, p.Description, p.PortfolioFullName, p.PortfolioJobTitle) {
			continue
		}
		if skill != "" && skill != FilterAll && !contains(stack, skill) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch q.Sort {
	case SortMostViewed:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].PortfolioViewCount > filtered[j].PortfolioViewCount
		})
	case SortAlphabetical:
		c := newCollator()
		sort.SliceStable(filtered, func(i, j int) bool {
			return c.CompareString(filtered[i].Name, filtered[j].Name) < 0
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].PortfolioCreatedAt.After(filtered[j].PortfolioCreatedAt)
		})
	}

	return paginate(filtered, q.Page, ProjectPageSize, ProjectSkills(all))
}

// PortfolioSkills returns the sorted, de-duplicated skill names across portfolios
func PortfolioSkills(all []*domain.Portfolio) []string {
	set := make(map[string]struct{})
	for _, p := range all {
		for _, s := range p.Skills {
			if name := strings.TrimSpace(s.Name); name != "" {
				set[name] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

// ProjectSkills returns the sorted, de-duplicated tech stack entries across project cards
func ProjectSkills(all []*domain.ProjectCard) []string {
	set := make(map[string]struct{})
	for _, p := range all {
		for _, s := range p.TechStack {
			if s = strings.TrimSpace(s); s != "" {
				set[s] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

func paginate[T any](items []T, page, size int, skills []string) Page[T] {
	totalPages := (len(items) + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      len(items),
		Skills:     skills,
	}
}

func matchesAvailability(p *domain.Portfolio, filter string) bool {
	switch filter {
	case "", FilterAll:
		return true
	case FilterAvailable:
		return p.IsAvailable()
	default:
		return string(p.AvailabilityStatus) == filter
	}
}

func containsAny(needle string, lowered []string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	for _, s := range lowered {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// newCollator is not safe for concurrent use, so each query builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}
