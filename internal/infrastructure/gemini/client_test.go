package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDrafts(t *testing.T) {
	drafts, err := parseDrafts("```json\n[\"I build APIs.\", \" \", \"I ship things.\"]\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"I build APIs.", "I ship things."}, drafts)

	drafts, err = parseDrafts("First draft\n\nSecond draft")
	require.NoError(t, err)
	assert.Equal(t, []string{"First draft", "Second draft"}, drafts)

	_, err = parseDrafts("   ")
	assert.Error(t, err)
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(BioPrompt{FullName: "Alex", JobTitle: "Engineer", Count: 3, MaxWords: 400})
	assert.Contains(t, prompt, "Write 3 distinct")
	assert.Contains(t, prompt, "Skills: not specified")
	assert.Contains(t, prompt, "at most 400 words")
}
