package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The repositories map unique violations by constraint name and call the view function.
func TestSchemaDeclaresNamesTheRepositoriesRelyOn(t *testing.T) {
	s := Schema()
	for _, want := range []string{
		"CONSTRAINT portfolios_username_key UNIQUE (username)",
		"portfolios_email_lower_idx ON portfolios (lower(email))",
		"FUNCTION increment_view_count(p_username TEXT)",
		"CREATE TABLE IF NOT EXISTS experiences",
		"CREATE TABLE IF NOT EXISTS contact_messages",
	} {
		assert.Contains(t, s, want)
	}
	assert.NotContains(t, strings.ToUpper(s), "DROP ")
}
