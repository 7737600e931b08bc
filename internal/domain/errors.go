package domain

import "errors"

var (
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrUsernameTaken     = errors.New("username is already taken")
	ErrEmailHasPortfolio = errors.New("email already has a portfolio")

	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameLength   = errors.New("username length out of range")
	ErrUsernameFormat   = errors.New("username has invalid characters")
	ErrUsernameReserved = errors.New("username is reserved")

	ErrInvalidBucket = errors.New("invalid bucket")
	ErrInvalidPath   = errors.New("invalid object path")
	ErrEmptyFile     = errors.New("empty file")
	ErrFileTooLarge  = errors.New("file too large")
)

var userMessages = []struct {
	err error
	msg string
}{
	{ErrPortfolioNotFound, "Portfolio not found"},
	{ErrUsernameTaken, "Username is already taken"},
	{ErrUsernameRequired, "Username is required"},
	{ErrUsernameLength, "Username must be between 3 and 30 characters"},
	{ErrUsernameFormat, "Username can only contain lowercase letters, numbers, and hyphens"},
	{ErrUsernameReserved, "This username is reserved and cannot be used"},
	{ErrInvalidBucket, "Invalid bucket"},
	{ErrInvalidPath, "Invalid path"},
	{ErrEmptyFile, "Cannot upload empty file."},
	{ErrFileTooLarge, "File is too large"},
}

// UserMessage returns the wording shown to API clients for a domain error.
// It returns "" when err wraps none of the sentinels above.
func UserMessage(err error) string {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return ""
}
