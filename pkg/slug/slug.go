package slug

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
	"unicode"
)

const (
	// MaxAttempts bounds the random-suffix retries before falling back to a timestamp suffix
	MaxAttempts = 100

	fallbackBase = "member"
)

var (
	nonWordRe    = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	hyphenRunRe  = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe candidate from a display name.
// The result only contains [a-z0-9-], never starts or ends with a hyphen and
// never contains two hyphens in a row. It may be empty.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Generator resolves username collisions by appending a random 3-digit suffix.
type Generator struct {
	intN   func(n int) int
	now    func() time.Time
	maxLen int
}

// NewGenerator creates a generator backed by the global random source and wall clock
func NewGenerator() *Generator {
	return &Generator{
		intN: rand.IntN,
		now:  time.Now,
	}
}

// NewGeneratorWithSource creates a generator with an explicit randomness source and clock.
// Tests use it to make collision handling deterministic.
func NewGeneratorWithSource(src rand.Source, now func() time.Time) *Generator {
	r := rand.New(src)
	if now == nil {
		now = time.Now
	}
	return &Generator{
		intN: r.IntN,
		now:  now,
	}
}

// WithMaxLength returns a copy of g whose results never exceed n bytes.
// The base is shortened to make room for whichever suffix is appended. Zero means no limit.
func (g *Generator) WithMaxLength(n int) *Generator {
	cp := *g
	cp.maxLen = n
	return &cp
}

// Unique returns the slug of name, or the slug with a "-NNN" suffix when the
// plain slug is already in existing. After MaxAttempts collisions it falls back
// to a millisecond timestamp suffix so that it always terminates.
func (g *Generator) Unique(name string, existing []string) string {
	base := Slugify(name)
	if base == "" {
		base = fallbackBase
	}

	taken := make(map[string]struct{}, len(existing))
	for _, u := range existing {
		taken[u] = struct{}{}
	}

	username := g.fit(base, "")
	for attempt := 1; isTaken(taken, username); attempt++ {
		if attempt > MaxAttempts {
			return g.fit(base, fmt.Sprintf("-%d", g.now().UnixMilli()))
		}
		username = g.fit(base, fmt.Sprintf("-%d", 100+g.intN(900)))
	}

	return username
}

// fit joins base and suffix, cutting base so the result stays within maxLen
func (g *Generator) fit(base, suffix string) string {
	if g.maxLen > 0 && len(base)+len(suffix) > g.maxLen {
		keep := g.maxLen - len(suffix)
		if keep < 1 {
			keep = 1
		}
		if keep < len(base) {
			base = strings.TrimRight(base[:keep], "-")
		}
	}
	return base + suffix
}

func isTaken(taken map[string]struct{}, username string) bool {
	_, ok := taken[username]
	return ok
}
