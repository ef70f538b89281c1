package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/dupfind/internal/dupfind"
)

const sampleINI = `
[scan]
min_depth   = 1
max_depth   = 3
min_size    = 1KB
max_size    = 2MiB
omit_hidden = true
workers     = 2

[hash]
algorithm = sha256

[output]
format        = json
sort_by_count = true
full_path     = false
`

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "config.ini")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), sampleINI)

	s, err := LoadFile(path)
	require.NoError(t, err)

	require.NotNil(t, s.MinDepth)
	assert.Equal(t, uint(1), *s.MinDepth)
	require.NotNil(t, s.MaxDepth)
	assert.Equal(t, uint(3), *s.MaxDepth)
	require.NotNil(t, s.MinSize)
	assert.Equal(t, uint64(1000), *s.MinSize)
	require.NotNil(t, s.MaxSize)
	assert.Equal(t, uint64(2*1024*1024), *s.MaxSize)
	require.NotNil(t, s.OmitHidden)
	assert.True(t, *s.OmitHidden)
	require.NotNil(t, s.Workers)
	assert.Equal(t, 2, *s.Workers)
	require.NotNil(t, s.Algorithm)
	assert.Equal(t, "sha256", *s.Algorithm)
	require.NotNil(t, s.ResultFormat)
	assert.Equal(t, "json", *s.ResultFormat)
	require.NotNil(t, s.SortByCount)
	assert.True(t, *s.SortByCount)
	require.NotNil(t, s.FullPath)
	assert.False(t, *s.FullPath)
}

func TestLoadFilePartial(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "[hash]\nalgorithm = murmur3\n")

	s, err := LoadFile(path)
	require.NoError(t, err)

	assert.Nil(t, s.MinDepth)
	assert.Nil(t, s.MinSize)
	assert.Nil(t, s.OmitHidden)
	assert.Nil(t, s.ResultFormat)
	require.NotNil(t, s.Algorithm)
	assert.Equal(t, "murmur3", *s.Algorithm)
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.ini"))
	require.ErrorIs(t, err, os.ErrNotExist)

	tests := map[string]string{
		"bad depth": "[scan]\nmin_depth = -1\n",
		"bad size":  "[scan]\nmin_size = lots\n",
		"bad bool":  "[output]\nsort_by_count = maybe\n",
		"bad int":   "[scan]\nworkers = many\n",
	}

	for name, content := range tests {
		path := writeConfig(t, filepath.Join(dir, name), content)

		_, err := LoadFile(path)
		assert.Error(t, err, name)
	}
}

func TestLoadDefaultLocation(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honored on linux")
	}

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s, "a missing default file is not an error")

	writeConfig(t, filepath.Join(home, "dupfind"), "[hash]\nalgorithm = blake2b\n")

	s, err = Load("")
	require.NoError(t, err)
	require.NotNil(t, s.Algorithm)
	assert.Equal(t, "blake2b", *s.Algorithm)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DUPFIND_MIN_DEPTH", "2")
	t.Setenv("DUPFIND_MIN_SIZE", "4KiB")
	t.Setenv("DUPFIND_OMIT_HIDDEN", "true")
	t.Setenv("DUPFIND_ALGORITHM", "sha512")
	t.Setenv("DUPFIND_RESULT_FORMAT", "yaml")
	t.Setenv("DUPFIND_SORT_BY_COUNT", "false")

	s, err := FromEnv()
	require.NoError(t, err)

	require.NotNil(t, s.MinDepth)
	assert.Equal(t, uint(2), *s.MinDepth)
	assert.Nil(t, s.MaxDepth)
	require.NotNil(t, s.MinSize)
	assert.Equal(t, uint64(4096), *s.MinSize)
	assert.Nil(t, s.MaxSize)
	require.NotNil(t, s.OmitHidden)
	assert.True(t, *s.OmitHidden)
	require.NotNil(t, s.Algorithm)
	assert.Equal(t, "sha512", *s.Algorithm)
	require.NotNil(t, s.ResultFormat)
	assert.Equal(t, "yaml", *s.ResultFormat)
	require.NotNil(t, s.SortByCount)
	assert.False(t, *s.SortByCount)
	assert.Nil(t, s.Workers)
	assert.Nil(t, s.FullPath)
}

func TestFromEnvErrors(t *testing.T) {
	t.Setenv("DUPFIND_MAX_SIZE", "huge")

	_, err := FromEnv()
	require.Error(t, err)
}

func TestMergeAndApply(t *testing.T) {
	t.Parallel()

	one, two := uint(1), uint(2)
	size := uint64(100)
	yes, no := true, false
	sha, murmur := "sha256", "MURMUR3"

	file := Settings{MinDepth: &one, MinSize: &size, OmitHidden: &yes, Algorithm: &sha}
	env := Settings{MinDepth: &two, Algorithm: &murmur}
	flags := Settings{OmitHidden: &no}

	merged := file.Merge(env).Merge(flags)

	opt := dupfind.DefaultOptions()
	require.NoError(t, merged.Apply(&opt))

	require.NotNil(t, opt.MinDepth)
	assert.Equal(t, uint(2), *opt.MinDepth)
	assert.Nil(t, opt.MaxDepth)
	assert.Equal(t, uint64(100), opt.MinSize)
	assert.Equal(t, dupfind.MaxSize, opt.MaxSize)
	assert.False(t, opt.OmitHidden)
	assert.Equal(t, dupfind.Murmur3, opt.Algorithm)
}

func TestApplyUnknownAlgorithm(t *testing.T) {
	t.Parallel()

	bad := "crc"
	opt := dupfind.DefaultOptions()

	err := Settings{Algorithm: &bad}.Apply(&opt)
	require.ErrorIs(t, err, dupfind.ErrUnknownAlgorithm)
}
