package candidate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestDiscover_MissingDirIsEmpty(t *testing.T) {
	recs, err := Discover(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestDiscover_MarkdownFrontmatter(t *testing.T) {
	dir := t.TempDir()
	content := "---\nname: Jane Doe\ntitle: Senior Engineer\nskills: [Python, Go]\nlocation: Austin, TX\nexperience_years: 7\n---\n\n# Jane\n\nBuilds data pipelines.\nLikes Go.\n\nSecond paragraph.\n"
	writeFile(t, dir, "jane.md", content)

	recs, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	c := recs[0]
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, []string{"Python", "Go"}, c.Skills)
	assert.Equal(t, "Builds data pipelines. Likes Go.", c.Summary)
	assert.Equal(t, 7.0, c.ExperienceYears)
	assert.Equal(t, "jane.md", c.Source)
	assert.Equal(t, DeriveID(c), c.ID)
}

func TestDiscover_YAMLListAndJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/team.yaml", "- name: Ann\n  title: Designer\n- id: fixed-id\n  name: Bob\n  title: Engineer\n")
	writeFile(t, dir, "b.json", `{"name": "Cara", "title": "Recruiter", "skills": ["Sourcing"], "experience_years": 1}`)
	writeFile(t, dir, ".hidden/skip.yaml", "name: Hidden\n")
	writeFile(t, dir, "notes.txt", "not a candidate")
	writeFile(t, dir, "b.conflict-old.json", `{"name": "Old Cara"}`)

	recs, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "Ann", recs[0].Name)
	assert.Equal(t, "a/team.yaml", recs[0].Source)
	assert.Equal(t, "fixed-id", recs[1].ID)
	assert.Equal(t, "Cara", recs[2].Name)
	assert.Equal(t, []string{"Sourcing"}, recs[2].Skills)
}

func TestDiscover_MultiDocumentYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "many.yml", "name: One\n---\nname: Two\n")

	recs, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Two", recs[1].Name)
}

func TestLoadFile_ValidationErrorNamesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "title: Nameless\nexperience_years: -2\n")

	_, err := LoadFile(filepath.Join(dir, "bad.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "bad.yaml")
	assert.Contains(t, err.Error(), "Name")
	assert.Contains(t, err.Error(), "ExperienceYears")
}

func TestLoadFile_MarkdownWithoutFrontmatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plain.md", "# Just a heading\n")

	_, err := LoadFile(filepath.Join(dir, "plain.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frontmatter")
}

func TestLoadFile_ScalarDocumentRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scalar.yaml", "just text\n")

	_, err := LoadFile(filepath.Join(dir, "scalar.yaml"))
	require.Error(t, err)
}

func TestDeriveID_Stable(t *testing.T) {
	a := Candidate{Name: "Jane", Title: "Engineer", Location: "Austin"}
	b := Candidate{Name: " Jane ", Title: "Engineer", Location: "Austin", Summary: "different"}
	assert.Equal(t, DeriveID(a), DeriveID(b))
	assert.NotEqual(t, DeriveID(a), DeriveID(Candidate{Name: "Jane", Title: "Manager"}))
}

func TestScan_InvalidFileDoesNotHideValidRecords(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "name: Jane Doe\ntitle: Engineer\n")
	writeFile(t, dir, "b.yaml", "title: No Name\n")
	writeFile(t, dir, "c.md", "# no frontmatter\n")

	recs, invalid, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Jane Doe", recs[0].Name)

	require.Len(t, invalid, 2)
	assert.Equal(t, filepath.Join(dir, "b.yaml"), invalid[0].Path)
	assert.ErrorIs(t, invalid[0].Err, ErrInvalid)
	assert.Equal(t, filepath.Join(dir, "c.md"), invalid[1].Path)

	recs, err = Discover(dir)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Jane Doe", recs[0].Name)
}
