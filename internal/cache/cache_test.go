package cache

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	// initial load should return empty DB and error
	db, err := Load(dir)
	assert.Error(t, err)
	require.NotNil(t, db.Entries)

	db.Record("a.png", []byte("pixels"), []byte("recipe-1"))
	require.NoError(t, Save(dir, db))
	_, err = os.Stat(filepath.Join(dir, ".shotredactcache.json"))
	require.NoError(t, err)

	db2, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, db2.Lookup("a.png", []byte("pixels"), []byte("recipe-1")))
	assert.False(t, db2.Lookup("a.png", []byte("other"), []byte("recipe-1")))
	assert.False(t, db2.Lookup("a.png", []byte("pixels"), []byte("recipe-2")))
	assert.False(t, db2.Lookup("b.png", []byte("pixels"), []byte("recipe-1")))
}

func TestStateDir_InsideRepo(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)
	shots := filepath.Join(root, "screenshots")
	require.NoError(t, os.MkdirAll(shots, 0o755))

	assert.Equal(t, filepath.Join(root, ".git"), StateDir(shots))

	db := DB{Entries: map[string]string{}}
	db.Record("x.png", []byte{1}, nil)
	require.NoError(t, Save(shots, db))
	_, err = os.Stat(filepath.Join(root, ".git", "shotredactcache.json"))
	require.NoError(t, err)
}

func TestSaveNil(t *testing.T) {
	assert.Error(t, Save(t.TempDir(), DB{}))
}

func TestSumStable(t *testing.T) {
	assert.Equal(t, Sum([]byte("abc"), []byte("r")), Sum([]byte("abc"), []byte("r")))
	assert.NotEqual(t, Sum([]byte("abc"), []byte("r")), Sum([]byte("ab"), []byte("cr")))
	assert.Len(t, Sum(nil, nil), 16)
}

func TestLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".shotredactcache.json"), []byte("{not json"), 0o644))
	db, err := Load(dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, fs.ErrNotExist)
	assert.NotNil(t, db.Entries)

	_, err = Load(t.TempDir())
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
