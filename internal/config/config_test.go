package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_RejectsOverlapAtOrAboveMaxChunkSize(t *testing.T) {
	c := Default()
	c.OverlapSize = c.MaxChunkSize
	require.Error(t, c.Validate())
}

func TestValidate_RejectsUnknownFormat(t *testing.T) {
	c := Default()
	c.Format = "xml"
	require.Error(t, c.Validate())
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
}

func TestFindProjectRoot_WalksUpToAncestorWithConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("outDir: out\n"), 0644))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))

	oldwd, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(oldwd)
	require.NoError(t, os.Chdir(nested))

	found, ok, err := FindProjectRoot()
	require.NoError(t, err)
	require.True(t, ok)

	resolvedRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	resolvedFound, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	require.Equal(t, resolvedRoot, resolvedFound)
}

func TestFindProjectRoot_NoConfigReturnsCwdAndFalse(t *testing.T) {
	dir := t.TempDir()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(oldwd)
	require.NoError(t, os.Chdir(dir))

	found, ok, err := FindProjectRoot()
	require.NoError(t, err)
	require.False(t, ok)

	resolvedDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	resolvedFound, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	require.Equal(t, resolvedDir, resolvedFound)
}

func TestSaveAndLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.OutDir = "build/out"
	cfg.MaxChunkSize = 777

	require.NoError(t, Save(dir, &cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, "build/out", loaded.OutDir)
	require.Equal(t, 777, loaded.MaxChunkSize)
}

func TestLoad_MissingFileReturnsNilNil(t *testing.T) {
	dir := t.TempDir()
	loaded, err := Load(dir)
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestMerge_CliOverridesFileOverridesDefault(t *testing.T) {
	file := &Config{OutDir: "from-file", MaxChunkSize: 300}
	cli := &Config{OutDir: Default().OutDir, MaxChunkSize: 900} // OutDir left at default, not "set"

	merged := Merge(file, cli)
	require.Equal(t, "from-file", merged.OutDir)
	require.Equal(t, 900, merged.MaxChunkSize)
}

func TestMerge_FilesUnionInFileThenCliOrder(t *testing.T) {
	file := &Config{Files: []string{"a.md"}}
	cli := &Config{Files: []string{"b.md"}}

	merged := Merge(file, cli)
	require.Equal(t, []string{"a.md", "b.md"}, merged.Files)
}

func TestMerge_NilInputsFallBackToDefaults(t *testing.T) {
	merged := Merge(nil, nil)
	require.Equal(t, Default().Strategy, merged.Strategy)
}

func TestChunkingOptions_ProjectsRelevantFields(t *testing.T) {
	c := Default()
	c.Strategy = "sliding"
	c.MaxChunkSize = 256
	c.OverlapSize = 32

	opts := c.ChunkingOptions()
	require.Equal(t, "sliding", opts.StrategyName)
	require.Equal(t, 256, opts.MaxChunkSize)
	require.Equal(t, 32, opts.OverlapSize)
}
