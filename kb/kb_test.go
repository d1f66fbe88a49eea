package kb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/asha/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	kb := Default()

	assert.Len(t, kb.Jobs, 4)
	assert.Len(t, kb.Events, 3)
	assert.Len(t, kb.Mentorships, 3)
	assert.Len(t, kb.FAQs, 4)
	assert.Equal(t, DefaultOrganization, kb.Info.Name)
	assert.Contains(t, kb.Info.Text, "JobsForHer Foundation is dedicated")

	t.Run("returns independent copies", func(t *testing.T) {
		other := Default()
		other.Jobs[0].Title = "changed"
		assert.Equal(t, "Software Engineer", Default().Jobs[0].Title)
	})
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.yaml")

	original := Default()
	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original.Jobs, loaded.Jobs)
	assert.Equal(t, original.FAQs, loaded.FAQs)
	assert.Equal(t, original.Info, loaded.Info)
}

func TestLoad(t *testing.T) {
	t.Run("hand written file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kb.yaml")
		content := `
jobs:
  - id: 7
    title: Backend Engineer
    company: Acme
    location: Pune
    description: Build services.
faqs:
  - question: Is it free?
    answer: Yes.
info:
  text: Acme helps people.
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		kb, err := Load(path)
		require.NoError(t, err)
		require.Len(t, kb.Jobs, 1)
		assert.Equal(t, core.Job{ID: 7, Title: "Backend Engineer", Company: "Acme", Location: "Pune", Description: "Build services."}, kb.Jobs[0])
		assert.Empty(t, kb.Events)
		assert.Equal(t, "Acme helps people.", kb.Info.Text)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := Load("")
		assert.ErrorIs(t, err, ErrPathRequired)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("jobs: [unterminated"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
