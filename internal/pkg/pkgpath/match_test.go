package pkgpath

import (
	"testing"

	"github.com/shandysiswandi/goident/internal/pkg/pkgglob"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, name := range []string{"/data/a.json", "/data/b.yaml", "/data/c.json", "/extra/d.json"} {
		require.NoError(t, afero.WriteFile(fs, name, []byte("{}"), 0o644))
	}
	return fs
}

func TestMatch(t *testing.T) {
	fs := newTestFs(t)
	paths := NewPaths("/data", "/missing", "/extra")
	require.NoError(t, paths.SetPlatform(Unix))

	got, err := Match(fs, "*.json", paths)
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/a.json", "/data/c.json", "/extra/d.json"}, got)

	got, err = Match(fs, "[ab].*", paths)
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/a.json", "/data/b.yaml"}, got)

	_, err = Match(fs, "[a", paths)
	assert.ErrorIs(t, err, pkgglob.ErrBadPattern)
}

func TestGlob(t *testing.T) {
	fs := newTestFs(t)

	got, err := Glob(fs, "/data/*.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/b.yaml"}, got)

	got, err = Glob(fs, "/nowhere/*")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWalk(t *testing.T) {
	fs := newTestFs(t)
	paths := NewPaths("/extra", "/data/*.json")
	require.NoError(t, paths.SetPlatform(Unix))

	got, err := Walk(fs, paths, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"/extra/d.json", "/data/a.json", "/data/c.json"}, got)

	got, err = Walk(fs, paths, "a*")
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/a.json"}, got)

	_, err = Walk(fs, NewPaths("/data/[x"), "")
	assert.ErrorIs(t, err, pkgglob.ErrBadPattern)
}
