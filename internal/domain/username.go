package domain

import (
	"regexp"
	"strings"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

var reservedUsernames = map[string]struct{}{}

func init() {
	for _, name := range []string{
		"admin", "api", "auth", "login", "logout", "signup", "register",
		"explore", "search", "user", "users", "portfolio", "portfolios",
		"settings", "profile", "dashboard", "app", "www", "mail", "ftp",
		"localhost", "test", "demo", "support", "help", "about", "contact",
		"terms", "privacy", "legal", "blog", "news", "careers", "jobs",
		"api-docs", "documentation", "docs", "status", "health", "ping",
		"robots", "sitemap", "favicon", "assets", "static", "public",
		"create", "edit", "delete", "new", "success", "cancel",
	} {
		reservedUsernames[name] = struct{}{}
	}
}

// MatchesUsernamePattern reports whether s only contains lowercase letters, digits and hyphens.
func MatchesUsernamePattern(s string) bool {
	return usernamePattern.MatchString(s)
}

// IsReservedUsername checks the deny-list case-insensitively
func IsReservedUsername(username string) bool {
	_, ok := reservedUsernames[strings.ToLower(username)]
	return ok
}

// ReservedUsernames returns the deny-list in no particular order
func ReservedUsernames() []string {
	out := make([]string, 0, len(reservedUsernames))
	for name := range reservedUsernames {
		out = append(out, name)
	}
	return out
}

// ValidateUsername applies the hard-reject policy used by portfolio creation.
// It checks presence, length, pattern and the reserved list, but not availability.
func ValidateUsername(username string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return ErrUsernameLength
	}
	if !MatchesUsernamePattern(username) {
		return ErrUsernameFormat
	}
	if IsReservedUsername(username) {
		return ErrUsernameReserved
	}
	return nil
}
