package resumeModel

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultResume(t *testing.T) {
	doc, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Swastik Bhoja Moolya", doc.Resume.Name)
	assert.Len(t, doc.Resume.Projects, 3)
	assert.Contains(t, doc.Resume.Languages, "Kannada")
	assert.Contains(t, doc.Resume.Skills["devops_infra_tools"], "Docker")

	// rendered text keeps the source key order
	rendered := doc.Rendered()
	assert.True(t, strings.HasPrefix(rendered, "{\n  \"name\": \"Swastik Bhoja Moolya\",\n  \"title\":"))
	assert.Less(t, strings.Index(rendered, "\"programming\""), strings.Index(rendered, "\"web_backend_frameworks\""))
	assert.True(t, json.Valid([]byte(rendered)))
}

func TestLoad_RenderedIsStable(t *testing.T) {
	first, err := Load("")
	require.NoError(t, err)
	second, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, first.Rendered(), second.Rendered())
	assert.Equal(t, first.Rendered(), first.Rendered())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.yaml")
	content := `name: Jane Doe
title: Platform Engineer
contact:
  email: jane@example.com
skills:
  languages: [Go, Rust]
experience:
  - company: Acme
    role: SRE
    duration: 2021 - 2024
    achievements:
      - Cut deploy time in half
languages: [English]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", doc.Resume.Name)
	assert.Equal(t, []string{"Go", "Rust"}, doc.Resume.Skills["languages"])
	assert.Contains(t, doc.Rendered(), "\"company\": \"Acme\"")
	assert.False(t, strings.HasSuffix(doc.Rendered(), "\n"))
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Jane","title":"<Dev> & Ops"}`), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"Jane\",\n  \"title\": \"<Dev> & Ops\"\n}", doc.Rendered())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	noName := filepath.Join(dir, "noname.json")
	require.NoError(t, os.WriteFile(noName, []byte(`{"title":"x"}`), 0o600))
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"name":`), 0o600))
	csv := filepath.Join(dir, "resume.csv")
	require.NoError(t, os.WriteFile(csv, []byte(`name`), 0o600))
	blank := filepath.Join(dir, "blank.txt")
	require.NoError(t, os.WriteFile(blank, []byte(" \n\n "), 0o600))

	for _, path := range []string{noName, broken, csv, blank} {
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidResume, path)
	}

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PlainTextDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("  Jane Doe  \r\n\nBackend engineer\nGo, Redis\n"), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", doc.Resume.Name)
	assert.Equal(t, "Jane Doe\nBackend engineer\nGo, Redis", doc.Resume.RawText)
	assert.Equal(t, "{\n  \"name\": \"Jane Doe\",\n  \"raw_text\": \"Jane Doe\\nBackend engineer\\nGo, Redis\"\n}", doc.Rendered())
}
