package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsernameBoundaries(t *testing.T) {
	assert.NoError(t, ValidateUsername("abc"))
	assert.NoError(t, ValidateUsername("a-1"))
	assert.NoError(t, ValidateUsername(strings.Repeat("a", MaxUsernameLength)))

	assert.ErrorIs(t, ValidateUsername(""), ErrUsernameRequired)
	assert.ErrorIs(t, ValidateUsername("ab"), ErrUsernameLength)
	assert.ErrorIs(t, ValidateUsername(strings.Repeat("a", MaxUsernameLength+1)), ErrUsernameLength)
	assert.ErrorIs(t, ValidateUsername("Abc"), ErrUsernameFormat)
	assert.ErrorIs(t, ValidateUsername("ab_c"), ErrUsernameFormat)
	assert.ErrorIs(t, ValidateUsername("ab c"), ErrUsernameFormat)
	assert.ErrorIs(t, ValidateUsername("abc!"), ErrUsernameFormat)
}

func TestReservedUsernames(t *testing.T) {
	reserved := ReservedUsernames()
	require.Len(t, reserved, 52)

	for _, name := range reserved {
		assert.True(t, IsReservedUsername(name), name)
		assert.True(t, IsReservedUsername(strings.ToUpper(name)), name)
		if len(name) >= MinUsernameLength {
			assert.ErrorIs(t, ValidateUsername(name), ErrUsernameReserved, name)
		}
	}
	assert.False(t, IsReservedUsername("alex-rivera"))
}

func TestNormalizeTemplate(t *testing.T) {
	assert.Equal(t, TemplateProfessional, NormalizeTemplate("pastel"))
	assert.Equal(t, TemplateMinimal, NormalizeTemplate("minimal"))
	assert.Equal(t, TemplateProfessional, NormalizeTemplate("professional"))
	assert.Equal(t, "unknown", NormalizeTemplate("unknown"))
	assert.False(t, ValidTemplate("pastel"))
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords("   "))
	assert.Equal(t, 3, CountWords(" one\ttwo\n three "))
	assert.Equal(t, MaxBioWords, CountWords(strings.Repeat("word ", MaxBioWords)))
}

func TestSkillsScanAndValue(t *testing.T) {
	in := Skills{{Name: "Go", Category: "Languages"}, {Name: "Docker", Category: "Tools"}}
	raw, err := in.Value()
	require.NoError(t, err)

	var out Skills
	require.NoError(t, out.Scan(raw))
	assert.Equal(t, in, out)

	require.NoError(t, out.Scan(nil))
	assert.Empty(t, out)

	var empty Skills
	v, err := empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	assert.Error(t, out.Scan(42))
}

func TestPortfolioOwnership(t *testing.T) {
	p := &Portfolio{Email: "Alex@Example.com"}
	assert.True(t, p.OwnedBy("alex@example.com"))
	assert.False(t, p.OwnedBy(""))
	assert.False(t, p.OwnedBy("someone@example.com"))
}

func TestIsAvailable(t *testing.T) {
	assert.True(t, (&Portfolio{AvailabilityStatus: AvailabilityFreelance}).IsAvailable())
	assert.True(t, (&Portfolio{AvailabilityStatus: AvailabilityNotLooking, OpenToWork: true}).IsAvailable())
	assert.False(t, (&Portfolio{AvailabilityStatus: AvailabilityNotLooking}).IsAvailable())
}

func TestFeaturedProject(t *testing.T) {
	agg := &PortfolioAggregate{}
	assert.Nil(t, agg.FeaturedProject())

	agg.Projects = []*Project{{Name: "a"}, {Name: "b", IsFeatured: true}}
	assert.Equal(t, "b", agg.FeaturedProject().Name)

	agg.Projects[1].IsFeatured = false
	assert.Equal(t, "a", agg.FeaturedProject().Name)
}

func TestObjectPath(t *testing.T) {
	now := time.UnixMilli(1712345678901)
	assert.Equal(t, "1712345678901-my_photo__1_.png", ObjectPath("my photo (1).png", now))
	assert.Equal(t, "1712345678901-r_sum_.pdf", ObjectPath("résumé.pdf", now))

	assert.True(t, ValidObjectPath(ObjectPath("cv.pdf", now)))
	assert.False(t, ValidObjectPath("../etc/passwd"))
	assert.False(t, ValidObjectPath("a/b.png"))
	assert.False(t, ValidObjectPath(""))
}

func TestParseBucket(t *testing.T) {
	b, err := ParseBucket("resumes")
	require.NoError(t, err)
	assert.Equal(t, BucketResumes, b)

	_, err = ParseBucket("secrets")
	assert.ErrorIs(t, err, ErrInvalidBucket)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Username must be between 3 and 30 characters", UserMessage(ValidateUsername("ab")))
	assert.Equal(t, "This username is reserved and cannot be used", UserMessage(ValidateUsername("admin")))
	assert.Equal(t, "Cannot upload empty file.", UserMessage(fmt.Errorf("stat cv.pdf: %w", ErrEmptyFile)))
	assert.Empty(t, UserMessage(errors.New("boom")))

	for _, err := range []error{ErrUsernameFormat, ErrInvalidBucket, ErrFileTooLarge} {
		msg := err.Error()
		assert.Equal(t, strings.ToLower(msg[:1]), msg[:1], msg)
		assert.False(t, strings.HasSuffix(msg, "."), msg)
	}
}
