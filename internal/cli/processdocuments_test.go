package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fluxdoc/fluxdoc/internal/config"
)

func TestProcessDocuments_ProcessesEveryFileInOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.md"))
	writeFile(t, filepath.Join(root, "b.md"))

	cfg := config.Default()
	cfg.Strategy = "paragraph"
	cfg.CacheEnabled = false

	results, err := processDocuments(context.Background(), root, &cfg, []string{"a.md", "b.md"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "a.md", results[0].sourceName)
	require.Equal(t, "b.md", results[1].sourceName)
}

func TestProcessDocuments_MissingFileReturnsInputNotFound(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()

	_, err := processDocuments(context.Background(), root, &cfg, []string{"missing.md"})
	require.Error(t, err)
}

func TestProcessDocuments_RespectsExplicitParallelism(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		writeFile(t, filepath.Join(root, name))
	}

	cfg := config.Default()
	cfg.Parallelism = 1
	cfg.CacheEnabled = false

	results, err := processDocuments(context.Background(), root, &cfg, []string{"a.md", "b.md", "c.md"})
	require.NoError(t, err)
	require.Len(t, results, 3)
}

func TestProcessDocuments_EmptyFileListReturnsEmptySlice(t *testing.T) {
	root := t.TempDir()
	_ = os.Mkdir(filepath.Join(root, "unused"), 0755)

	cfg := config.Default()
	results, err := processDocuments(context.Background(), root, &cfg, nil)
	require.NoError(t, err)
	require.Empty(t, results)
}
