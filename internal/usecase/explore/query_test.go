package explore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/portoo/portoo-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixture() []*domain.Portfolio {
	return []*domain.Portfolio{
		{
			Username: "zoe", FullName: "Zoë Adams", JobTitle: "Designer", CreatedAt: t0.Add(1 * time.Hour),
			ViewCount: 5, AvailabilityStatus: domain.AvailabilityNotLooking,
			Skills: domain.Skills{{Name: "Figma", Category: "Tools"}},
		},
		{
			Username: "emil", FullName: "Émile Durand", JobTitle: "Engineer", CreatedAt: t0.Add(3 * time.Hour),
			ViewCount: 1, AvailabilityStatus: domain.AvailabilityFreelance,
			Skills: domain.Skills{{Name: "Go", Category: "Languages"}},
		},
		{
			Username: "bob", FullName: "bob Brown", JobTitle: "Analyst", Location: "Berlin", CreatedAt: t0.Add(2 * time.Hour),
			ViewCount: 9, AvailabilityStatus: domain.AvailabilityNotLooking, OpenToWork: true,
			Skills: domain.Skills{{Name: "PostgreSQL", Category: "Tools"}, {Name: "Go", Category: "Languages"}},
		},
	}
}

func usernames(items []*domain.Portfolio) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Username)
	}
	return out
}

func TestQueryPortfoliosSorts(t *testing.T) {
	assert.Equal(t, []string{"emil", "bob", "zoe"}, usernames(QueryPortfolios(fixture(), Query{}).Items))
	assert.Equal(t, []string{"emil", "bob", "zoe"}, usernames(QueryPortfolios(fixture(), Query{Sort: SortNewest}).Items))
	assert.Equal(t, []string{"bob", "zoe", "emil"}, usernames(QueryPortfolios(fixture(), Query{Sort: SortMostViewed}).Items))
	// locale-aware: "bob" sorts before "Émile" and "Émile" before "Zoë" regardless of case and accents
	assert.Equal(t, []string{"bob", "emil", "zoe"}, usernames(QueryPortfolios(fixture(), Query{Sort: SortAlphabetical}).Items))
}

func TestQueryPortfoliosFilters(t *testing.T) {
	// "postgres" only appears in a skill name
	assert.Equal(t, []string{"bob"}, usernames(QueryPortfolios(fixture(), Query{Search: "postgres"}).Items))
	assert.Equal(t, []string{"bob"}, usernames(QueryPortfolios(fixture(), Query{Search: " BERLIN "}).Items))
	assert.Equal(t, []string{"emil", "bob"}, usernames(QueryPortfolios(fixture(), Query{Skill: "go"}).Items))
	assert.Len(t, QueryPortfolios(fixture(), Query{Skill: FilterAll}).Items, 3)
	assert.Equal(t, []string{"emil", "bob"}, usernames(QueryPortfolios(fixture(), Query{Availability: FilterAvailable}).Items))
	assert.Equal(t, []string{"emil"}, usernames(QueryPortfolios(fixture(), Query{Availability: "freelance"}).Items))
	assert.Empty(t, QueryPortfolios(fixture(), Query{Search: "nothing matches"}).Items)
}

func TestQueryPortfoliosPagination(t *testing.T) {
	var all []*domain.Portfolio
	for i := 0; i < 20; i++ {
		all = append(all, &domain.Portfolio{Username: fmt.Sprintf("u%02d", i), CreatedAt: t0.Add(time.Duration(i) * time.Minute)})
	}

	first := QueryPortfolios(all, Query{Page: 1})
	assert.Len(t, first.Items, PortfolioPageSize)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 20, first.Total)
	assert.Equal(t, "u19", first.Items[0].Username)

	last := QueryPortfolios(all, Query{Page: 99})
	assert.Equal(t, 3, last.Page)
	assert.Len(t, last.Items, 2)

	empty := QueryPortfolios(nil, Query{Page: 0})
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Items)
}

func TestQueryPortfoliosSkills(t *testing.T) {
	page := QueryPortfolios(fixture(), Query{Search: "zoe"})
	assert.Equal(t, []string{"Figma", "Go", "PostgreSQL"}, page.Skills)
}

func TestQueryProjects(t *testing.T) {
	cards := []*domain.ProjectCard{
		{Name: "beta", TechStack: []string{"Go"}, PortfolioViewCount: 3, PortfolioCreatedAt: t0},
		{Name: "Alpha", TechStack: []string{"React", "TypeScript"}, PortfolioFullName: "Sam", PortfolioViewCount: 7, PortfolioCreatedAt: t0.Add(time.Hour)},
	}

	names := func(p Page[*domain.ProjectCard]) []string {
		var out []string
		for _, c := range p.Items {
			out = append(out, c.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Alpha", "beta"}, names(QueryProjects(cards, Query{})))
	assert.Equal(t, []string{"Alpha", "beta"}, names(QueryProjects(cards, Query{Sort: SortAlphabetical})))
	assert.Equal(t, []string{"Alpha", "beta"}, names(QueryProjects(cards, Query{Sort: SortMostViewed})))
	assert.Equal(t, []string{"beta"}, names(QueryProjects(cards, Query{Skill: "GO"})))
	assert.Equal(t, []string{"Alpha"}, names(QueryProjects(cards, Query{Search: "typescript"})))
	assert.Equal(t, []string{"Go", "React", "TypeScript"}, QueryProjects(cards, Query{}).Skills)
}

func TestExploreUseCaseReadsPublicPortfoliosOnly(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	require.NoError(t, repos.Portfolios.Create(ctx, &domain.Portfolio{Username: "pub", Email: "a@example.com", IsPublic: true, Skills: domain.Skills{{Name: "Go"}}}))
	require.NoError(t, repos.Portfolios.Create(ctx, &domain.Portfolio{Username: "priv", Email: "b@example.com"}))

	uc := NewExploreUseCase(repos.Portfolios, repos.Projects, nil, logger.NewNop())
	page, err := uc.Portfolios(ctx, Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"pub"}, usernames(page.Items))

	skills, err := uc.Skills(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, skills)

	projects, err := uc.Projects(ctx, Query{})
	require.NoError(t, err)
	assert.Empty(t, projects.Items)
}
