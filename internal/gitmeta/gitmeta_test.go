package gitmeta

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitFile(t *testing.T, wt *git.Worktree, dir, name, content string, when time.Time) {
	t.Helper()
	full := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	_, err := wt.Add(name)
	require.NoError(t, err)
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: when}
	_, err = wt.Commit("update "+name, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
}

func TestLastModified(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	first := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	second := time.Date(2024, 2, 20, 8, 30, 0, 0, time.UTC)
	commitFile(t, wt, dir, "content/posts/hello.md", "v1", first)
	commitFile(t, wt, dir, "content/posts/hello.md", "v2", second)
	commitFile(t, wt, dir, "content/about.md", "about", first)

	r, err := Open(filepath.Join(dir, "content"))
	require.NoError(t, err)
	require.NotNil(t, r)

	got, err := r.LastModified(context.Background(), "posts/hello.md")
	require.NoError(t, err)
	assert.Equal(t, second, got)

	got, err = r.LastModified(context.Background(), "about.md")
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestLastModifiedUntracked(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	commitFile(t, wt, dir, "tracked.md", "x", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	r, err := Open(dir)
	require.NoError(t, err)
	require.NotNil(t, r)

	got, err := r.LastModified(context.Background(), "never-committed.md")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestOpenOutsideRepo(t *testing.T) {
	r, err := Open(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, r)

	// Nil resolver answers safely.
	got, err := r.LastModified(context.Background(), "a.md")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}
