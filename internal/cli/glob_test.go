package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestExpandGlobs_MatchesAndSorts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.md"))
	writeFile(t, filepath.Join(root, "a.md"))
	writeFile(t, filepath.Join(root, "docs", "c.md"))

	files, err := ExpandGlobs(root, []string{"**/*.md"})
	require.NoError(t, err)
	require.Equal(t, []string{"a.md", "b.md", filepath.Join("docs", "c.md")}, files)
}

func TestExpandGlobs_ExclusionPatternRemovesMatches(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.md"))
	writeFile(t, filepath.Join(root, "skip.md"))

	files, err := ExpandGlobs(root, []string{"*.md", "!skip.md"})
	require.NoError(t, err)
	require.Equal(t, []string{"keep.md"}, files)
}

func TestExpandGlobs_NoPatternsReturnsNil(t *testing.T) {
	files, err := ExpandGlobs(t.TempDir(), nil)
	require.NoError(t, err)
	require.Nil(t, files)
}

func TestExpandGlobs_RejectsMatchOutsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "project")
	require.NoError(t, os.Mkdir(root, 0755))
	writeFile(t, filepath.Join(parent, "outside.md"))

	_, err := ExpandGlobs(root, []string{"../*.md"})
	require.Error(t, err)
}
