package recordstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todo/internal/model"
)

func setupTestDir(t *testing.T) *Dir {
	t.Helper()
	return New(filepath.Join(t.TempDir(), ".todo"), "")
}

func TestNew_Defaults(t *testing.T) {
	d := New("", "")
	assert.Equal(t, DefaultDir, d.Root())
	assert.Equal(t, filepath.Join(".todo", "x.todo"), d.Path("x"))

	d = New("records", "txt")
	assert.Equal(t, filepath.Join("records", "x.txt"), d.Path("x"))
}

func TestLoad_MissingDirIsEmpty(t *testing.T) {
	d := setupTestDir(t)
	s, err := d.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestWrite_CreatesDirLazily(t *testing.T) {
	d := setupTestDir(t)
	_, err := os.Stat(d.Root())
	require.ErrorIs(t, err, os.ErrNotExist)

	it := model.Item{ID: "abc123", Title: "first", Priority: 0.5, Description: "body"}
	require.NoError(t, d.Write(it))

	assert.True(t, d.Exists("abc123"))
	b, err := os.ReadFile(d.Path("abc123"))
	require.NoError(t, err)
	assert.Equal(t, "title: first\ndate: \ntags: \npriority: 0.5\nstatus: open\n\nbody", string(b))

	info, err := os.Stat(d.Path("abc123"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerms), info.Mode().Perm())
}

func TestWrite_Overwrites(t *testing.T) {
	d := setupTestDir(t)
	it := model.Item{ID: "abc", Title: "v1"}
	require.NoError(t, d.Write(it))
	it.Title = "v2"
	require.NoError(t, d.Write(it))

	s, err := d.Load(nil)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	got, _ := s.Get("abc")
	assert.Equal(t, "v2", got.Title)
}

func TestWrite_RejectsInvalidItem(t *testing.T) {
	d := setupTestDir(t)
	err := d.Write(model.Item{ID: "abc", Title: "two\nlines"})
	require.Error(t, err)
	assert.False(t, d.Exists("abc"))
}

func TestLoad_RoundTripsAndIgnoresOtherFiles(t *testing.T) {
	d := setupTestDir(t)
	items := []model.Item{
		{ID: "bbb", Title: "second", Priority: 0.2, Status: model.Resolved, Description: "x\n\ny"},
		{ID: "aaa", Title: "first", Priority: 0.5},
	}
	for _, it := range items {
		require.NoError(t, d.Write(it))
	}
	require.NoError(t, os.WriteFile(filepath.Join(d.Root(), "config.yaml"), []byte("theme: mono\n"), 0o644))

	s, err := d.Load(nil)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	loaded := s.Items()
	assert.Equal(t, items[1], loaded[0])
	assert.Equal(t, items[0], loaded[1])
}

func TestLoad_MalformedRecordStillLoads(t *testing.T) {
	d := setupTestDir(t)
	require.NoError(t, os.MkdirAll(d.Root(), 0o755))
	raw := "title: hand edited\nfoo: bar\nno separator here\nstatus: resolved\n\nnotes"
	require.NoError(t, os.WriteFile(d.Path("hand"), []byte(raw), 0o644))

	s, err := d.Load(nil)
	require.NoError(t, err)
	it, ok := s.Get("hand")
	require.True(t, ok)
	assert.Equal(t, "hand edited", it.Title)
	assert.Equal(t, model.Resolved, it.Status)
	assert.Equal(t, "notes", it.Description)
}

func TestLoad_UnreadableRecordFails(t *testing.T) {
	d := setupTestDir(t)
	// a directory named like a record cannot be read as a file
	require.NoError(t, os.MkdirAll(d.Path("broken"), 0o755))

	_, err := d.Load(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
}

func TestRemove(t *testing.T) {
	d := setupTestDir(t)
	require.NoError(t, d.Write(model.Item{ID: "gone"}))
	require.NoError(t, d.Remove("gone"))
	assert.False(t, d.Exists("gone"))

	err := d.Remove("gone")
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MultiDotExtension(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "notes"), ".todo.txt")
	require.NoError(t, d.Write(model.Item{ID: "abc", Title: "v1"}))

	s, err := d.Load(nil)
	require.NoError(t, err)
	it, ok := s.Get("abc")
	require.True(t, ok)

	it.Title = "v2"
	require.NoError(t, d.Write(it))

	files, err := filepath.Glob(filepath.Join(d.Root(), "*"))
	require.NoError(t, err)
	assert.Equal(t, []string{d.Path("abc")}, files)
}
