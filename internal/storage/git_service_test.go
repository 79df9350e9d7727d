package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maruel/unicorn/internal/item"
)

func TestGitServiceCommit(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	gs, err := NewGitService(dir, Author{Name: "builder", Email: "builder@example.com"})
	require.NoError(t, err)

	fs := NewFileStore()
	path := filepath.Join(dir, "Assets", "test.yml")
	it := &item.Item{ID: "aaa", Path: "/content/Assets/test", DB: "master"}
	require.NoError(t, fs.WriteItem(path, it))
	require.NoError(t, gs.Stage(path))
	assert.Equal(t, []string{"Assets/test.yml"}, gs.Staged())

	hash, err := gs.Commit(ctx, "Update items")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.Empty(t, gs.Staged())

	// Same content again: nothing to commit.
	require.NoError(t, fs.WriteItem(path, it))
	require.NoError(t, gs.Stage(path))
	hash2, err := gs.Commit(ctx, "Update items")
	require.NoError(t, err)
	assert.Empty(t, hash2)

	// Nothing staged at all.
	hash3, err := gs.Commit(ctx, "Update items")
	require.NoError(t, err)
	assert.Empty(t, hash3)

	repo, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, hash, commit.Hash.String())
	assert.Equal(t, "Update items", strings.TrimSpace(commit.Message))
	assert.Equal(t, "builder", commit.Author.Name)
}

func TestGitServiceFindsEnclosingRepo(t *testing.T) {
	root := t.TempDir()
	_, err := gogit.PlainInit(root, false)
	require.NoError(t, err)

	sub := filepath.Join(root, "serialization", "Assets")
	gs, err := NewGitService(sub, Author{})
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(gs.Root())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = os.Stat(filepath.Join(sub, ".git"))
	assert.True(t, os.IsNotExist(err), "must not create a nested repository")
}

func TestGitServiceRefusesUnrelatedStagedChanges(t *testing.T) {
	root := t.TempDir()
	repo, err := gogit.PlainInit(root, false)
	require.NoError(t, err)
	w, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("wip"), 0o644))
	_, err = w.Add("secret.txt")
	require.NoError(t, err)

	gs, err := NewGitService(filepath.Join(root, "serialization"), Author{})
	require.NoError(t, err)
	path := filepath.Join(root, "serialization", "a.yml")
	require.NoError(t, NewFileStore().WriteItem(path, &item.Item{ID: "aaa"}))
	require.NoError(t, gs.Stage(path))

	hash, err := gs.Commit(context.Background(), "Update items")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret.txt")
	assert.Empty(t, hash)
	_, err = repo.Head()
	assert.Error(t, err, "nothing must be committed")

	// The developer's change is still staged.
	status, err := w.Status()
	require.NoError(t, err)
	assert.Equal(t, gogit.Added, status.File("secret.txt").Staging)
}

func TestGitServiceCommitsOnlyRecords(t *testing.T) {
	root := t.TempDir()
	repo, err := gogit.PlainInit(root, false)
	require.NoError(t, err)
	w, err := repo.Worktree()
	require.NoError(t, err)
	secret := filepath.Join(root, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("v1"), 0o644))
	_, err = w.Add("secret.txt")
	require.NoError(t, err)
	sig := &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Now()}
	_, err = w.Commit("initial", &gogit.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
	// Modified in the worktree only.
	require.NoError(t, os.WriteFile(secret, []byte("v2"), 0o644))

	gs, err := NewGitService(filepath.Join(root, "serialization"), Author{})
	require.NoError(t, err)
	path := filepath.Join(root, "serialization", "a.yml")
	require.NoError(t, NewFileStore().WriteItem(path, &item.Item{ID: "aaa"}))
	require.NoError(t, gs.Stage(path))
	hash, err := gs.Commit(context.Background(), "Update items")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	commit, err := repo.CommitObject(plumbing.NewHash(hash))
	require.NoError(t, err)
	_, err = commit.File("serialization/a.yml")
	assert.NoError(t, err)
	f, err := commit.File("secret.txt")
	require.NoError(t, err)
	content, err := f.Contents()
	require.NoError(t, err)
	assert.Equal(t, "v1", content)
}

func TestGitServiceStageOutsideRepo(t *testing.T) {
	gs, err := NewGitService(t.TempDir(), Author{})
	require.NoError(t, err)
	other := filepath.Join(t.TempDir(), "x.yml")
	require.NoError(t, os.WriteFile(other, []byte("---\n"), 0o644))
	assert.Error(t, gs.Stage(other))
}
